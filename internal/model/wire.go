package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// wireItem is the on-disk shape of one content item. Both variants share it;
// the "type" field selects which fields are meaningful.
type wireItem struct {
	ID          string  `json:"id"`
	Type        Kind    `json:"type"`
	Title       string  `json:"title"`
	Content     *string `json:"content,omitempty"`
	Description *string `json:"description,omitempty"`
	IsCollapsed bool    `json:"isCollapsed"`
	Color       Color   `json:"color,omitempty"`
	Items       []Entry `json:"items,omitempty"`
}

type wireDocument struct {
	Content []json.RawMessage `json:"content"`
}

func (d Document) MarshalJSON() ([]byte, error) {
	items := make([]any, 0, len(d.Content))
	for _, it := range d.Content {
		v, err := wireValue(it)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return json.Marshal(struct {
		Content []any `json:"content"`
	}{Content: items})
}

// MarshalItem encodes a single item in its stored shape.
func MarshalItem(it Item) ([]byte, error) {
	v, err := wireValue(it)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func wireValue(it Item) (any, error) {
	switch x := it.(type) {
	case *Note:
		content := x.Content
		return wireItem{
			ID:          x.ID,
			Type:        KindNote,
			Title:       x.Title,
			Content:     &content,
			IsCollapsed: x.IsCollapsed,
			Color:       x.Color,
		}, nil
	case *Checklist:
		desc := x.Description
		entries := x.Items
		if entries == nil {
			entries = []Entry{}
		}
		// items is always present for checklists, even when empty.
		return struct {
			wireItem
			Items []Entry `json:"items"`
		}{
			wireItem: wireItem{
				ID:          x.ID,
				Type:        KindChecklist,
				Title:       x.Title,
				Description: &desc,
				IsCollapsed: x.IsCollapsed,
				Color:       x.Color,
			},
			Items: entries,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported item type %T", it)
	}
}

func (d *Document) UnmarshalJSON(b []byte) error {
	var w wireDocument
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	out := make([]Item, 0, len(w.Content))
	for i, raw := range w.Content {
		it, err := decodeItem(raw)
		if err != nil {
			return fmt.Errorf("content[%d]: %w", i, err)
		}
		out = append(out, it)
	}
	d.Content = out
	return nil
}

func decodeItem(raw json.RawMessage) (Item, error) {
	var w wireItem
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&w); err != nil {
		return nil, err
	}
	color := w.Color
	if !color.Valid() {
		color = ColorNone
	}
	switch w.Type {
	case KindNote:
		n := &Note{ID: w.ID, Title: w.Title, IsCollapsed: w.IsCollapsed, Color: color}
		if w.Content != nil {
			n.Content = *w.Content
		}
		return n, nil
	case KindChecklist:
		c := &Checklist{ID: w.ID, Title: w.Title, IsCollapsed: w.IsCollapsed, Color: color, Items: w.Items}
		if w.Description != nil {
			c.Description = *w.Description
		}
		if c.Items == nil {
			c.Items = []Entry{}
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown item type %q", w.Type)
	}
}

// EncodeDocument serializes the whole document for storage.
func EncodeDocument(d *Document) ([]byte, error) {
	if d == nil {
		d = NewDocument()
	}
	return json.Marshal(d)
}

// DecodeDocument parses a stored document. A missing or null content list
// decodes to an empty one.
func DecodeDocument(b []byte) (*Document, error) {
	d := NewDocument()
	if len(bytes.TrimSpace(b)) == 0 {
		return d, nil
	}
	if err := json.Unmarshal(b, d); err != nil {
		return nil, err
	}
	if d.Content == nil {
		d.Content = []Item{}
	}
	return d, nil
}
