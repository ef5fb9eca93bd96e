package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"quicknotes-cli/internal/model"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds.
// AdaptiveColor is used throughout; faint styling only applies on dark
// backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted          lipgloss.TerminalColor = ac("240", "243")
	colorChromeMutedFg  lipgloss.TerminalColor = ac("240", "245")
	colorSelectedBg     lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg     lipgloss.TerminalColor = ac("235", "255")
	colorCardBorder     lipgloss.TerminalColor = ac("250", "243")
	colorSelectedBorder lipgloss.TerminalColor = ac("232", "255")
	colorSurfaceFg      lipgloss.TerminalColor = ac("235", "252")
	colorControlBg      lipgloss.TerminalColor = ac("252", "235")
	colorAccent         lipgloss.TerminalColor = ac("27", "62")
	colorAccentFg       lipgloss.TerminalColor = ac("255", "235")
	colorError          lipgloss.TerminalColor = ac("160", "203")
	colorSuccess        lipgloss.TerminalColor = ac("28", "78")
)

// itemColors maps color tags to the block's left border.
var itemColors = map[model.Color]lipgloss.TerminalColor{
	model.ColorRed:    ac("160", "203"),
	model.ColorOrange: ac("166", "215"),
	model.ColorYellow: ac("136", "221"),
	model.ColorGreen:  ac("28", "78"),
	model.ColorBlue:   ac("25", "75"),
	model.ColorPurple: ac("91", "141"),
	model.ColorGray:   ac("244", "246"),
}

func colorFor(c model.Color) (lipgloss.TerminalColor, bool) {
	tc, ok := itemColors[c]
	return tc, ok
}

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleTitleBar() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg)
}

func styleButton() lipgloss.Style {
	return lipgloss.NewStyle().Padding(0, 1).Foreground(colorSurfaceFg).Background(colorControlBg)
}

func styleCursor() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
}

func styleStatus(ok bool, failed bool) lipgloss.Style {
	switch {
	case failed:
		return lipgloss.NewStyle().Foreground(colorError).Bold(true)
	case ok:
		return lipgloss.NewStyle().Foreground(colorSuccess)
	default:
		return lipgloss.NewStyle().Foreground(colorChromeMutedFg)
	}
}

// applyColorProfilePreference sets Lip Gloss's color profile for the TUI.
//
// termenv.EnvColorProfile also honors CLICOLOR, which can disable colors in a
// TUI by accident. Only NO_COLOR is honored here.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && (profile == termenv.Ascii || profile == termenv.ANSI) {
		profile = termenv.ANSI256
	}
	lipgloss.SetColorProfile(profile)
}

// markdownStyle picks the glamour style matching the terminal background.
func markdownStyle() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("QUICKNOTES_TUI_MD_STYLE"))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return "notty"
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
