package mutate

import (
	"quicknotes-cli/internal/model"
)

func SetTitle(doc *model.Document, id, title string) Result {
	it, ok := FindItem(doc, id)
	if !ok {
		return Result{}
	}
	switch x := it.(type) {
	case *model.Note:
		if x.Title == title {
			return Result{}
		}
		x.Title = title
	case *model.Checklist:
		if x.Title == title {
			return Result{}
		}
		x.Title = title
	}
	return Result{Changed: true, Render: RenderNone, ItemID: id}
}

// SetContent sets a note's body. Checklist ids are ignored.
func SetContent(doc *model.Document, noteID, content string) Result {
	n, ok := FindNote(doc, noteID)
	if !ok || n.Content == content {
		return Result{}
	}
	n.Content = content
	return Result{Changed: true, Render: RenderNone, ItemID: noteID}
}

// SetDescription sets a checklist's description. Note ids are ignored.
func SetDescription(doc *model.Document, checklistID, desc string) Result {
	c, ok := FindChecklist(doc, checklistID)
	if !ok || c.Description == desc {
		return Result{}
	}
	c.Description = desc
	return Result{Changed: true, Render: RenderNone, ItemID: checklistID}
}

func SetEntryText(doc *model.Document, checklistID, entryID, text string) Result {
	e := findEntry(doc, checklistID, entryID)
	if e == nil || e.Text == text {
		return Result{}
	}
	e.Text = text
	return Result{Changed: true, Render: RenderNone, ItemID: checklistID, EntryID: entryID}
}

// SetEntryDone patches only the owning block: the progress header and the
// entry row are the only things that change.
func SetEntryDone(doc *model.Document, checklistID, entryID string, done bool) Result {
	e := findEntry(doc, checklistID, entryID)
	if e == nil || e.Done == done {
		return Result{}
	}
	e.Done = done
	return Result{Changed: true, Render: RenderBlock, ItemID: checklistID, EntryID: entryID}
}

func ToggleEntryDone(doc *model.Document, checklistID, entryID string) Result {
	e := findEntry(doc, checklistID, entryID)
	if e == nil {
		return Result{}
	}
	return SetEntryDone(doc, checklistID, entryID, !e.Done)
}

// SetColor tags an item with a palette color; model.ColorNone clears it.
func SetColor(doc *model.Document, id string, c model.Color) (Result, error) {
	if !c.Valid() {
		return Result{}, InvalidColorError{Color: string(c)}
	}
	it, ok := FindItem(doc, id)
	if !ok || model.ItemColor(it) == c {
		return Result{}, nil
	}
	switch x := it.(type) {
	case *model.Note:
		x.Color = c
	case *model.Checklist:
		x.Color = c
	}
	return Result{Changed: true, Render: RenderFull, ItemID: id}, nil
}

// CycleColor advances the item's color through the palette and back to none.
func CycleColor(doc *model.Document, id string) Result {
	it, ok := FindItem(doc, id)
	if !ok {
		return Result{}
	}
	res, _ := SetColor(doc, id, model.ItemColor(it).Next())
	return res
}

func SetCollapsed(doc *model.Document, id string, collapsed bool) Result {
	it, ok := FindItem(doc, id)
	if !ok || model.Collapsed(it) == collapsed {
		return Result{}
	}
	switch x := it.(type) {
	case *model.Note:
		x.IsCollapsed = collapsed
	case *model.Checklist:
		x.IsCollapsed = collapsed
	}
	return Result{Changed: true, Render: RenderFull, ItemID: id}
}

func ToggleCollapsed(doc *model.Document, id string) Result {
	it, ok := FindItem(doc, id)
	if !ok {
		return Result{}
	}
	return SetCollapsed(doc, id, !model.Collapsed(it))
}

func findEntry(doc *model.Document, checklistID, entryID string) *model.Entry {
	c, ok := FindChecklist(doc, checklistID)
	if !ok {
		return nil
	}
	return c.FindEntry(entryID)
}
