package tui

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"

	"quicknotes-cli/internal/model"
	"quicknotes-cli/internal/store"
)

func TestGlyphPreference(t *testing.T) {
	t.Cleanup(func() { setGlyphs(glyphSetUnicode) })

	applyGlyphPreference("ascii")
	if glyphCheckboxOn() != "[x]" || glyphTwistyCollapsed() != ">" {
		t.Fatalf("expected ascii glyphs; got %q %q", glyphCheckboxOn(), glyphTwistyCollapsed())
	}
	applyGlyphPreference("wingdings")
	if glyphs() != glyphSetASCII {
		t.Fatalf("expected unknown value to be ignored")
	}
	applyGlyphPreference("unicode")
	if glyphCheckboxOn() != "☑" {
		t.Fatalf("expected unicode glyphs; got %q", glyphCheckboxOn())
	}
}

func TestProgressBar(t *testing.T) {
	t.Cleanup(func() { setGlyphs(glyphSetUnicode) })
	setGlyphs(glyphSetASCII)

	got := progressBar(model.Progress{Completed: 2, Total: 3, Percentage: 67})
	if !strings.Contains(got, "2/3 #######--- 67%") {
		t.Fatalf("unexpected bar: %q", got)
	}
	if got := progressBar(model.Progress{}); !strings.Contains(got, "0/0 ---------- 0%") {
		t.Fatalf("unexpected empty bar: %q", got)
	}
	if got := progressBar(model.Progress{Completed: 1, Total: 1, Percentage: 100}); !strings.Contains(got, "##########") {
		t.Fatalf("unexpected full bar: %q", got)
	}
}

func TestNormalizePane(t *testing.T) {
	out := normalizePane("abc\nthis line is too long", 8, 3)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines; got %d", len(lines))
	}
	for i, ln := range lines {
		if w := xansi.StringWidth(ln); w != 8 {
			t.Fatalf("line %d: expected width 8; got %d (%q)", i, w, ln)
		}
	}
	if !strings.HasSuffix(lines[1], "…") {
		t.Fatalf("expected truncation marker; got %q", lines[1])
	}
}

func TestBuildRows(t *testing.T) {
	doc := &model.Document{Content: []model.Item{
		&model.Note{ID: "note-a"},
		&model.Checklist{ID: "list-b", IsCollapsed: true},
		&model.Checklist{ID: "list-c", Items: []model.Entry{{ID: "e1"}}},
	}}
	got := buildRows(doc)
	want := []row{
		{kind: rowHeader, itemID: "note-a"},
		{kind: rowBody, itemID: "note-a"},
		{kind: rowHeader, itemID: "list-b"},
		{kind: rowHeader, itemID: "list-c"},
		{kind: rowBody, itemID: "list-c"},
		{kind: rowEntry, itemID: "list-c", entryID: "e1"},
		{kind: rowAddEntry, itemID: "list-c"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d rows; got %+v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: expected %+v; got %+v", i, want[i], got[i])
		}
		if r := rowFromKey(got[i].itemID, got[i].key()); r != got[i] {
			t.Fatalf("row %d: key round trip gave %+v", i, r)
		}
	}
}

func TestBlocks_AreAlignedWithHitMap(t *testing.T) {
	m := newTestModel(t, newMemKV(), store.Store{}, note("note-a", "A"), checklist("list-b", "Trip", "passport", "charger"))

	if len(m.listLines) != len(m.hits) {
		t.Fatalf("expected one hit line per list line; got %d vs %d", len(m.listLines), len(m.hits))
	}
	for i, ln := range m.listLines {
		h := m.hits[i]
		if !h.hasRow {
			continue
		}
		if h.row.kind == rowEntry && h.row.entryID == "list-b-e2" && !strings.Contains(ln, "charger") {
			t.Fatalf("line %d should render entry charger; got %q", i, ln)
		}
	}
}
