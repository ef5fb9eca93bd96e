package tui

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

var (
	mdRendererMu sync.Mutex
	// Renderers are cached by style and wrap width. WithAutoStyle can block on
	// terminal queries, so a fixed style is used instead.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

// renderMarkdownCompact renders a note body without block margins so it sits
// flush inside its block.
func renderMarkdownCompact(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	styleName := markdownStyle()
	key := styleName + ":compact:" + strconv.Itoa(width)

	mdRendererMu.Lock()
	r := mdRenderers[key]
	mdRendererMu.Unlock()

	if r == nil {
		cfg := markdownStyleConfig(styleName)
		zero := uint(0)
		cfg.Document.Margin = &zero
		cfg.Paragraph.Margin = &zero
		cfg.BlockQuote.Margin = &zero
		cfg.List.Margin = &zero
		cfg.Heading.Margin = &zero
		cfg.Code.Margin = &zero
		cfg.CodeBlock.Margin = &zero

		rr, err := glamour.NewTermRenderer(
			glamour.WithStyles(cfg),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRendererMu.Lock()
		if existing := mdRenderers[key]; existing != nil {
			r = existing
		} else {
			mdRenderers[key] = rr
			r = rr
		}
		mdRendererMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

func markdownStyleConfig(styleName string) ansi.StyleConfig {
	switch styleName {
	case "light":
		return styles.LightStyleConfig
	case "notty":
		return styles.ASCIIStyleConfig
	default:
		return styles.DarkStyleConfig
	}
}
