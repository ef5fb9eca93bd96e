package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"quicknotes-cli/internal/autosave"
	"quicknotes-cli/internal/store"
)

type Options struct {
	// Docs is the Document's persistence; required.
	Docs *store.DocumentStore
	// Store holds tui_state.json. A zero Store disables selection restore.
	Store    store.Store
	Autosave autosave.Options
	Glyphs   string
	Log      *zap.Logger
}

func Run(opts Options) error {
	applyColorProfilePreference()
	applyGlyphPreference(opts.Glyphs)

	m := newAppModel(opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
