package tui

import (
	"strings"
	"sync"
)

// Terminal apps can't change the user's font. Instead we choose between
// Unicode and ASCII glyph sets for affordances (twisties, checkboxes, bars).

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference accepts the tui.glyphs config value.
func applyGlyphPreference(v string) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	default:
		// Unknown value: ignore.
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func pick(unicode, ascii string) string {
	if glyphs() == glyphSetASCII {
		return ascii
	}
	return unicode
}

func glyphTwistyCollapsed() string { return pick("▸", ">") }
func glyphTwistyExpanded() string  { return pick("▾", "v") }
func glyphCheckboxOn() string      { return pick("☑", "[x]") }
func glyphCheckboxOff() string     { return pick("☐", "[ ]") }
func glyphDelete() string          { return pick("×", "x") }
func glyphBarFull() string         { return pick("█", "#") }
func glyphBarEmpty() string        { return pick("░", "-") }
func glyphCursor() string          { return pick("›", ">") }
func glyphDropMarker() string      { return pick("▶", ">>") }
func glyphHRule() string           { return pick("─", "-") }
func glyphArrow() string           { return pick("→", "->") }
