package model

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func sampleDocument() *Document {
	return &Document{Content: []Item{
		&Note{ID: "note-a", Title: "Groceries", Content: "milk\neggs", Color: ColorGreen},
		&Checklist{
			ID:          "list-b",
			Title:       "Release",
			Description: "cut the tag",
			IsCollapsed: true,
			Items: []Entry{
				{ID: "entry-1", Text: "bump version", Done: true},
				{ID: "entry-2", Text: "write notes"},
			},
		},
		&Checklist{ID: "list-c", Title: "Empty", Items: []Entry{}},
	}}
}

func TestDocument_RoundTrip(t *testing.T) {
	want := sampleDocument()
	b, err := EncodeDocument(want)
	if err != nil {
		t.Fatalf("EncodeDocument: %v", err)
	}
	got, err := DecodeDocument(b)
	if err != nil {
		t.Fatalf("DecodeDocument: %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("roundtrip mismatch:\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestDocument_WireShape(t *testing.T) {
	b, err := EncodeDocument(sampleDocument())
	if err != nil {
		t.Fatalf("EncodeDocument: %v", err)
	}
	var raw struct {
		Content []map[string]any `json:"content"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(raw.Content) != 3 {
		t.Fatalf("expected 3 items; got %d", len(raw.Content))
	}
	note := raw.Content[0]
	if note["type"] != "note" || note["content"] != "milk\neggs" || note["color"] != "green" {
		t.Fatalf("unexpected note wire shape: %v", note)
	}
	if _, ok := note["items"]; ok {
		t.Fatalf("note must not carry items: %v", note)
	}
	empty := raw.Content[2]
	items, ok := empty["items"].([]any)
	if !ok || len(items) != 0 {
		t.Fatalf("expected empty items array on checklist; got %v", empty["items"])
	}
	if _, ok := empty["color"]; ok {
		t.Fatalf("unset color must be omitted: %v", empty)
	}
}

func TestEncodeDocument_EmptyContentIsArray(t *testing.T) {
	b, err := EncodeDocument(NewDocument())
	if err != nil {
		t.Fatalf("EncodeDocument: %v", err)
	}
	if got := string(b); got != `{"content":[]}` {
		t.Fatalf("unexpected encoding: %s", got)
	}
}

func TestDecodeDocument_EmptyAndNull(t *testing.T) {
	for _, in := range []string{"", "{}", `{"content":null}`} {
		d, err := DecodeDocument([]byte(in))
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if d.Content == nil || len(d.Content) != 0 {
			t.Fatalf("%q: expected empty content; got %#v", in, d.Content)
		}
	}
}

func TestDecodeDocument_UnknownTypeFails(t *testing.T) {
	_, err := DecodeDocument([]byte(`{"content":[{"id":"x","type":"table"}]}`))
	if err == nil || !strings.Contains(err.Error(), "unknown item type") {
		t.Fatalf("expected unknown type error; got %v", err)
	}
}

func TestDecodeDocument_DropsUnknownColor(t *testing.T) {
	d, err := DecodeDocument([]byte(`{"content":[{"id":"n","type":"note","title":"t","content":"","color":"magenta"}]}`))
	if err != nil {
		t.Fatalf("DecodeDocument: %v", err)
	}
	if c := ItemColor(d.Content[0]); c != ColorNone {
		t.Fatalf("expected unknown color to be dropped; got %q", c)
	}
}

func TestDecodeDocument_ChecklistWithoutItems(t *testing.T) {
	d, err := DecodeDocument([]byte(`{"content":[{"id":"c","type":"checklist","title":"t"}]}`))
	if err != nil {
		t.Fatalf("DecodeDocument: %v", err)
	}
	c, ok := d.Content[0].(*Checklist)
	if !ok {
		t.Fatalf("expected checklist; got %T", d.Content[0])
	}
	if c.Items == nil {
		t.Fatalf("expected non-nil items")
	}
}

func TestColor_NextCyclesThroughNone(t *testing.T) {
	c := ColorNone
	seen := 0
	for {
		c = c.Next()
		if c == ColorNone {
			break
		}
		if !c.Valid() {
			t.Fatalf("invalid color in cycle: %q", c)
		}
		seen++
		if seen > len(Palette) {
			t.Fatalf("cycle did not return to none")
		}
	}
	if seen != len(Palette) {
		t.Fatalf("expected %d colors in cycle; got %d", len(Palette), seen)
	}
}
