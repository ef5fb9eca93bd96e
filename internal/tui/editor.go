package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quicknotes-cli/internal/model"
	"quicknotes-cli/internal/mutate"
)

type fieldKind int

const (
	fieldTitle fieldKind = iota
	fieldContent
	fieldDescription
	fieldEntry
)

const (
	areaMinHeight = 3
	areaMaxHeight = 10
)

// fieldEditor is the one active input. Every keystroke is written straight
// into the Document; there is no separate commit step.
type fieldEditor struct {
	itemID  string
	entryID string
	field   fieldKind

	input textinput.Model
	area  textarea.Model
}

func (e *fieldEditor) multiline() bool {
	return e.field == fieldContent || e.field == fieldDescription
}

func (e *fieldEditor) row() row {
	switch e.field {
	case fieldContent, fieldDescription:
		return row{kind: rowBody, itemID: e.itemID}
	case fieldEntry:
		return row{kind: rowEntry, itemID: e.itemID, entryID: e.entryID}
	default:
		return row{kind: rowHeader, itemID: e.itemID}
	}
}

func (e *fieldEditor) value() string {
	if e.multiline() {
		return e.area.Value()
	}
	return e.input.Value()
}

func (e *fieldEditor) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if e.multiline() {
		e.area, cmd = e.area.Update(msg)
		e.area.SetHeight(areaHeight(e.area.Value()))
		return cmd
	}
	e.input, cmd = e.input.Update(msg)
	return cmd
}

// apply writes the editor's value into doc.
func (e *fieldEditor) apply(doc *model.Document) mutate.Result {
	v := e.value()
	switch e.field {
	case fieldContent:
		return mutate.SetContent(doc, e.itemID, v)
	case fieldDescription:
		return mutate.SetDescription(doc, e.itemID, v)
	case fieldEntry:
		return mutate.SetEntryText(doc, e.itemID, e.entryID, v)
	default:
		return mutate.SetTitle(doc, e.itemID, v)
	}
}

func (e *fieldEditor) setWidth(w int) {
	if w < 4 {
		w = 4
	}
	if e.multiline() {
		e.area.SetWidth(w)
		return
	}
	e.input.Width = w
}

func (e *fieldEditor) view() string {
	if e.multiline() {
		return e.area.View()
	}
	return e.input.View()
}

func areaHeight(v string) int {
	h := strings.Count(v, "\n") + 2
	if h < areaMinHeight {
		return areaMinHeight
	}
	if h > areaMaxHeight {
		return areaMaxHeight
	}
	return h
}

// newFieldEditor opens an editor on r's field. ok is false for rows without a
// text field (the add-entry row) or missing items.
func newFieldEditor(doc *model.Document, r row) (*fieldEditor, tea.Cmd, bool) {
	it, found := mutate.FindItem(doc, r.itemID)
	if !found {
		return nil, nil, false
	}
	e := &fieldEditor{itemID: r.itemID, entryID: r.entryID}

	var value, placeholder string
	switch x := it.(type) {
	case *model.Note:
		switch r.kind {
		case rowHeader:
			e.field, value, placeholder = fieldTitle, x.Title, "Note Title"
		case rowBody:
			e.field, value, placeholder = fieldContent, x.Content, "Start typing your note..."
		default:
			return nil, nil, false
		}
	case *model.Checklist:
		switch r.kind {
		case rowHeader:
			e.field, value, placeholder = fieldTitle, x.Title, "Checklist Title"
		case rowBody:
			e.field, value, placeholder = fieldDescription, x.Description, "Add a description..."
		case rowEntry:
			entry := x.FindEntry(r.entryID)
			if entry == nil {
				return nil, nil, false
			}
			e.field, value, placeholder = fieldEntry, entry.Text, "New item..."
		default:
			return nil, nil, false
		}
	default:
		return nil, nil, false
	}

	if e.multiline() {
		ta := textarea.New()
		ta.Prompt = ""
		ta.ShowLineNumbers = false
		ta.CharLimit = 0
		ta.Placeholder = placeholder
		ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
		ta.SetValue(value)
		ta.SetHeight(areaHeight(value))
		cmd := ta.Focus()
		e.area = ta
		return e, cmd, true
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.CursorEnd()
	cmd := ti.Focus()
	e.input = ti
	return e, cmd, true
}
