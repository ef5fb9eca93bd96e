package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

// confirmModal guards a destructive action. Focus starts on Cancel.
type confirmModal struct {
	title        string
	body         string
	confirmLabel string
	cancelLabel  string
	focus        confirmModalFocus
}

func newClearAllModal() *confirmModal {
	return &confirmModal{
		title:        "Clear all",
		body:         "Delete every note and checklist? This cannot be undone.",
		confirmLabel: "Delete everything",
		cancelLabel:  "Cancel",
		focus:        confirmFocusCancel,
	}
}

func (c *confirmModal) toggleFocus() {
	if c.focus == confirmFocusConfirm {
		c.focus = confirmFocusCancel
	} else {
		c.focus = confirmFocusConfirm
	}
}

func modalBodyWidth(width int) int {
	w := width - 10
	if w > 60 {
		w = 60
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (c *confirmModal) render(width int) string {
	// No borders on the buttons: some terminals show background artifacts
	// when nesting bordered components inside a bordered box.
	btnBase := styleButton()
	btnActive := btnBase.
		Foreground(colorAccentFg).
		Background(colorAccent).
		Bold(true)

	confirm := btnBase.Render(c.confirmLabel)
	cancel := btnBase.Render(c.cancelLabel)
	if c.focus == confirmFocusConfirm {
		confirm = btnActive.Render(c.confirmLabel)
	} else {
		cancel = btnActive.Render(c.cancelLabel)
	}
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, " ", cancel)

	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("tab: focus   enter: select   y/n   esc: cancel")

	content := strings.Join([]string{
		lipgloss.NewStyle().Bold(true).Render(c.title),
		"",
		lipgloss.NewStyle().Width(bodyW).Render(c.body),
		"",
		controls,
		"",
		help,
	}, "\n")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorSelectedBorder).
		Padding(0, 1).
		Render(content)
}
