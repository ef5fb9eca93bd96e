package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	AddNote      key.Binding
	AddChecklist key.Binding
	ClearAll     key.Binding
	SaveNow      key.Binding

	Up       key.Binding
	Down     key.Binding
	Edit     key.Binding
	Done     key.Binding
	Toggle   key.Binding
	Collapse key.Binding
	Color    key.Binding
	Grab     key.Binding
	Delete   key.Binding
	AddEntry key.Binding
	Copy     key.Binding

	Help key.Binding
	Quit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		AddNote:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "add note")),
		AddChecklist: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "add checklist")),
		ClearAll:     key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "clear all")),
		SaveNow:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save now")),

		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Edit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		Done:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "done/cancel")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "check")),
		Collapse: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "collapse")),
		Color:    key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "color")),
		Grab:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		Delete:   key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		AddEntry: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add item")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy markdown")),

		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.AddNote, k.AddChecklist, k.Edit, k.Toggle, k.Grab, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.AddNote, k.AddChecklist, k.ClearAll, k.SaveNow},
		{k.Up, k.Down, k.Edit, k.Done},
		{k.Toggle, k.Collapse, k.Color, k.AddEntry},
		{k.Grab, k.Delete, k.Copy, k.Help, k.Quit},
	}
}
