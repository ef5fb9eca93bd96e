package mutate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quicknotes-cli/internal/model"
)

func ids(doc *model.Document) []string {
	out := make([]string, 0, len(doc.Content))
	for _, it := range doc.Content {
		out = append(out, it.ItemID())
	}
	return out
}

func docWith(idList ...string) *model.Document {
	doc := model.NewDocument()
	for _, id := range idList {
		doc.Content = append(doc.Content, &model.Note{ID: id, Title: id})
	}
	return doc
}

func TestAddItem_Defaults(t *testing.T) {
	doc := model.NewDocument()

	res, err := AddItem(doc, model.KindNote)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, RenderFull, res.Render)

	n, ok := FindNote(doc, res.ItemID)
	require.True(t, ok)
	assert.Equal(t, "New Note", n.Title)
	assert.Empty(t, n.Content)
	assert.False(t, n.IsCollapsed)
	assert.Equal(t, model.ColorNone, n.Color)

	res, err = AddItem(doc, model.KindChecklist)
	require.NoError(t, err)
	c, ok := FindChecklist(doc, res.ItemID)
	require.True(t, ok)
	assert.Equal(t, "My Checklist", c.Title)
	require.Len(t, c.Items, 1)
	assert.Empty(t, c.Items[0].Text)
	assert.False(t, c.Items[0].Done)
	assert.NotEmpty(t, c.Items[0].ID)

	assert.Equal(t, []string{n.ID, c.ID}, ids(doc))
}

func TestAddItem_UnknownKind(t *testing.T) {
	_, err := AddItem(model.NewDocument(), model.Kind("table"))
	assert.Error(t, err)
}

func TestAddDelete_IDsStayUniqueAndOrdered(t *testing.T) {
	doc := model.NewDocument()
	var added []string
	for i := 0; i < 40; i++ {
		kind := model.KindNote
		if i%3 == 0 {
			kind = model.KindChecklist
		}
		res, err := AddItem(doc, kind)
		require.NoError(t, err)
		added = append(added, res.ItemID)
		if i%5 == 4 {
			DeleteItem(doc, added[0])
			added = added[1:]
		}
	}
	assert.Equal(t, added, ids(doc))

	seen := map[string]bool{}
	for _, id := range ids(doc) {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestDeleteItem_MissingIsNoop(t *testing.T) {
	doc := docWith("a", "b")
	res := DeleteItem(doc, "zzz")
	assert.False(t, res.Changed)
	assert.Equal(t, []string{"a", "b"}, ids(doc))
}

func TestChecklistEntries_AddDelete(t *testing.T) {
	doc := model.NewDocument()
	res, err := AddItem(doc, model.KindChecklist)
	require.NoError(t, err)
	listID := res.ItemID

	res, err = AddChecklistEntry(doc, listID)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	c, _ := FindChecklist(doc, listID)
	require.Len(t, c.Items, 2)
	assert.Equal(t, res.EntryID, c.Items[1].ID)
	assert.NotEqual(t, c.Items[0].ID, c.Items[1].ID)

	first := c.Items[0].ID
	res = DeleteChecklistEntry(doc, listID, first)
	assert.True(t, res.Changed)
	require.Len(t, c.Items, 1)
	assert.Nil(t, c.FindEntry(first))

	assert.False(t, DeleteChecklistEntry(doc, listID, "entry-missing").Changed)
	assert.False(t, DeleteChecklistEntry(doc, "list-missing", c.Items[0].ID).Changed)
	require.Len(t, c.Items, 1)

	res, err = AddChecklistEntry(doc, "list-missing")
	require.NoError(t, err)
	assert.False(t, res.Changed)
}

func TestChecklistEntries_NoteIDIsNoop(t *testing.T) {
	doc := docWith("a")
	res, err := AddChecklistEntry(doc, "a")
	require.NoError(t, err)
	assert.False(t, res.Changed)
}

func TestMoveItem(t *testing.T) {
	cases := []struct {
		name     string
		from, to string
		want     []string
		changed  bool
	}{
		{"forward lands after target", "a", "b", []string{"b", "a", "c"}, true},
		{"forward across two", "a", "c", []string{"b", "c", "a"}, true},
		{"backward lands before target", "c", "a", []string{"c", "a", "b"}, true},
		{"backward by one", "c", "b", []string{"a", "c", "b"}, true},
		{"self", "b", "b", []string{"a", "b", "c"}, false},
		{"missing from", "x", "b", []string{"a", "b", "c"}, false},
		{"missing to", "a", "x", []string{"a", "b", "c"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := docWith("a", "b", "c")
			res := MoveItem(doc, tc.from, tc.to)
			assert.Equal(t, tc.changed, res.Changed)
			assert.Equal(t, tc.want, ids(doc))
		})
	}
}

func TestMoveItem_ThenAdjacent(t *testing.T) {
	doc := docWith("a", "b", "c", "d")
	MoveItem(doc, "b", "d")
	got := ids(doc)
	assert.Equal(t, IndexOf(doc, "d")+1, IndexOf(doc, "b"), "order %v", got)

	MoveItem(doc, "b", "a")
	assert.Equal(t, IndexOf(doc, "a")-1, IndexOf(doc, "b"))
}

func TestClearAll(t *testing.T) {
	doc := docWith("a", "b")
	res := ClearAll(doc)
	assert.True(t, res.Changed)
	assert.NotNil(t, doc.Content)
	assert.Empty(t, doc.Content)

	assert.False(t, ClearAll(doc).Changed)
}

func TestLookup(t *testing.T) {
	doc := docWith("a")
	it, err := Lookup(doc, " a ")
	require.NoError(t, err)
	assert.Equal(t, "a", it.ItemID())

	_, err = Lookup(doc, "b")
	var nf NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "b", nf.ID)
	assert.Equal(t, "item not found: b", err.Error())
}

func TestAppendItem_ReassignsCollidingIDs(t *testing.T) {
	doc := docWith("a")
	c := &model.Checklist{ID: "a", Title: "imported", Items: []model.Entry{{Text: "x"}, {ID: "e", Text: "y"}, {ID: "e", Text: "z"}}}
	res, err := AppendItem(doc, c)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.NotEqual(t, "a", c.ID)
	assert.Len(t, doc.Content, 2)

	seen := map[string]bool{}
	for _, e := range c.Items {
		require.NotEmpty(t, e.ID)
		assert.False(t, seen[e.ID])
		seen[e.ID] = true
	}
}
