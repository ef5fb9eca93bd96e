package mutate

import (
	"fmt"
	"strings"

	"quicknotes-cli/internal/model"
)

// Render tells the caller how much of the view a mutation invalidated.
type Render int

const (
	// RenderNone: text edits. The view keeps its layout and the active editor keeps focus.
	RenderNone Render = iota
	// RenderBlock: only the block of Result.ItemID needs repainting.
	RenderBlock
	// RenderFull: structural change; rebuild the whole list.
	RenderFull
)

func (r Render) String() string {
	switch r {
	case RenderBlock:
		return "block"
	case RenderFull:
		return "full"
	default:
		return "none"
	}
}

// Result describes the outcome of a mutation. Callers schedule a save when Changed is true.
type Result struct {
	Changed bool
	Render  Render
	ItemID  string
	EntryID string
}

const (
	defaultNoteTitle      = "New Note"
	defaultChecklistTitle = "My Checklist"
)

// IndexOf returns the position of id in doc.Content, or -1.
func IndexOf(doc *model.Document, id string) int {
	if doc == nil {
		return -1
	}
	for i, it := range doc.Content {
		if it.ItemID() == id {
			return i
		}
	}
	return -1
}

func FindItem(doc *model.Document, id string) (model.Item, bool) {
	i := IndexOf(doc, id)
	if i < 0 {
		return nil, false
	}
	return doc.Content[i], true
}

func FindNote(doc *model.Document, id string) (*model.Note, bool) {
	it, ok := FindItem(doc, id)
	if !ok {
		return nil, false
	}
	n, ok := it.(*model.Note)
	return n, ok
}

func FindChecklist(doc *model.Document, id string) (*model.Checklist, bool) {
	it, ok := FindItem(doc, id)
	if !ok {
		return nil, false
	}
	c, ok := it.(*model.Checklist)
	return c, ok
}

// Lookup is the strict variant of FindItem used by the CLI.
func Lookup(doc *model.Document, id string) (model.Item, error) {
	id = strings.TrimSpace(id)
	it, ok := FindItem(doc, id)
	if !ok {
		return nil, NotFoundError{Kind: "item", ID: id}
	}
	return it, nil
}

// NewItem builds a default-initialized item of kind with fresh ids. It does not
// add it to doc; doc is only consulted for id uniqueness.
func NewItem(doc *model.Document, kind model.Kind) (model.Item, error) {
	switch kind {
	case model.KindNote:
		id, err := uniqueID(prefixNote, itemIDExists(doc))
		if err != nil {
			return nil, err
		}
		return &model.Note{ID: id, Title: defaultNoteTitle}, nil
	case model.KindChecklist:
		id, err := uniqueID(prefixChecklist, itemIDExists(doc))
		if err != nil {
			return nil, err
		}
		c := &model.Checklist{ID: id, Title: defaultChecklistTitle, Items: []model.Entry{}}
		entryID, err := uniqueID(prefixEntry, entryIDExists(c))
		if err != nil {
			return nil, err
		}
		c.Items = append(c.Items, model.Entry{ID: entryID})
		return c, nil
	default:
		return nil, fmt.Errorf("unknown item kind %q", kind)
	}
}

// AddItem appends a new default item of kind to the end of the list.
func AddItem(doc *model.Document, kind model.Kind) (Result, error) {
	if doc == nil {
		return Result{}, fmt.Errorf("nil document")
	}
	it, err := NewItem(doc, kind)
	if err != nil {
		return Result{}, err
	}
	doc.Content = append(doc.Content, it)
	return Result{Changed: true, Render: RenderFull, ItemID: it.ItemID()}, nil
}

// AppendItem adds a pre-built item (e.g. from an import). Items whose id is
// empty or already present get a fresh id.
func AppendItem(doc *model.Document, it model.Item) (Result, error) {
	if doc == nil || it == nil {
		return Result{}, fmt.Errorf("nil document or item")
	}
	id := strings.TrimSpace(it.ItemID())
	if id == "" || IndexOf(doc, id) >= 0 {
		prefix := prefixNote
		if it.Kind() == model.KindChecklist {
			prefix = prefixChecklist
		}
		fresh, err := uniqueID(prefix, itemIDExists(doc))
		if err != nil {
			return Result{}, err
		}
		switch x := it.(type) {
		case *model.Note:
			x.ID = fresh
		case *model.Checklist:
			x.ID = fresh
		}
	}
	if c, ok := it.(*model.Checklist); ok {
		if c.Items == nil {
			c.Items = []model.Entry{}
		}
		if err := ensureEntryIDs(c); err != nil {
			return Result{}, err
		}
	}
	doc.Content = append(doc.Content, it)
	return Result{Changed: true, Render: RenderFull, ItemID: it.ItemID()}, nil
}

func ensureEntryIDs(c *model.Checklist) error {
	seen := map[string]bool{}
	for i := range c.Items {
		id := strings.TrimSpace(c.Items[i].ID)
		if id != "" && !seen[id] {
			seen[id] = true
			continue
		}
		fresh, err := uniqueID(prefixEntry, func(s string) bool { return seen[s] || c.FindEntry(s) != nil })
		if err != nil {
			return err
		}
		c.Items[i].ID = fresh
		seen[fresh] = true
	}
	return nil
}

// DeleteItem removes the item with id. Unknown ids are a no-op.
func DeleteItem(doc *model.Document, id string) Result {
	i := IndexOf(doc, id)
	if i < 0 {
		return Result{}
	}
	doc.Content = append(doc.Content[:i], doc.Content[i+1:]...)
	return Result{Changed: true, Render: RenderFull, ItemID: id}
}

// AddChecklistEntry appends an empty, unchecked entry to the checklist.
func AddChecklistEntry(doc *model.Document, checklistID string) (Result, error) {
	c, ok := FindChecklist(doc, checklistID)
	if !ok {
		return Result{}, nil
	}
	id, err := uniqueID(prefixEntry, entryIDExists(c))
	if err != nil {
		return Result{}, err
	}
	c.Items = append(c.Items, model.Entry{ID: id})
	return Result{Changed: true, Render: RenderFull, ItemID: c.ID, EntryID: id}, nil
}

// DeleteChecklistEntry removes one entry. Unknown checklist or entry ids are a no-op.
func DeleteChecklistEntry(doc *model.Document, checklistID, entryID string) Result {
	c, ok := FindChecklist(doc, checklistID)
	if !ok {
		return Result{}
	}
	for i := range c.Items {
		if c.Items[i].ID == entryID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return Result{Changed: true, Render: RenderFull, ItemID: c.ID, EntryID: entryID}
		}
	}
	return Result{}
}

// MoveItem splices fromID out and back in at toID's index (both indexes taken
// before removal). Moving forward lands the item just after the target; moving
// backward lands it just before. Using the post-removal index instead would put
// a forward move one slot short, before the target it was dropped on.
func MoveItem(doc *model.Document, fromID, toID string) Result {
	if fromID == toID {
		return Result{}
	}
	from := IndexOf(doc, fromID)
	to := IndexOf(doc, toID)
	if from < 0 || to < 0 {
		return Result{}
	}
	it := doc.Content[from]
	rest := append(doc.Content[:from:from], doc.Content[from+1:]...)
	out := make([]model.Item, 0, len(doc.Content))
	out = append(out, rest[:to]...)
	out = append(out, it)
	out = append(out, rest[to:]...)
	doc.Content = out
	return Result{Changed: true, Render: RenderFull, ItemID: fromID}
}

// ClearAll empties the document.
func ClearAll(doc *model.Document) Result {
	if doc == nil {
		return Result{}
	}
	changed := len(doc.Content) > 0
	doc.Content = []model.Item{}
	return Result{Changed: changed, Render: RenderFull}
}
