package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and
// height lines tall.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i := range lines {
		lines[i] = fitLine(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

// fitLine truncates or pads one line to exactly width columns.
func fitLine(ln string, width int) string {
	if width <= 0 {
		return ""
	}
	// Huge lines are cut early so width computations stay bounded.
	if len(ln) > 8192 {
		ln = xansi.Cut(ln, 0, width)
	}
	w := xansi.StringWidth(ln)
	if w > width {
		ln = truncate(ln, width)
		w = xansi.StringWidth(ln)
	}
	if w < width {
		ln += strings.Repeat(" ", width-w)
	}
	return ln
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return xansi.Cut(s, 0, 1)
	}
	return xansi.Truncate(s, width, "…")
}

func textWidth(s string) int { return xansi.StringWidth(s) }
