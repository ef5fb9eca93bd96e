package publish

import (
	"bytes"
	"fmt"
	"strings"

	"quicknotes-cli/internal/model"
)

type RenderOptions struct {
	// Progress adds a "Progress: done/total (pct%)" line to checklists.
	Progress bool
	// Color adds a "Color: <name>" line to tagged items.
	Color bool
}

// RenderItemMarkdown renders one item as a level-1 section. Checklists become
// GitHub task lists, which ParseMarkdown reads back.
func RenderItemMarkdown(it model.Item, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	title := strings.TrimSpace(model.Title(it))
	if title == "" {
		title = "Untitled"
	}
	writeLn("# " + title)
	writeLn("")

	if c := model.ItemColor(it); opt.Color && c != model.ColorNone {
		writeLn("Color: " + string(c))
		writeLn("")
	}

	switch x := it.(type) {
	case *model.Note:
		if body := strings.TrimRight(x.Content, "\n"); strings.TrimSpace(body) != "" {
			writeLn(body)
			writeLn("")
		}
	case *model.Checklist:
		if opt.Progress {
			p := model.ComputeProgress(x)
			writeLn(fmt.Sprintf("Progress: %d/%d (%d%%)", p.Completed, p.Total, p.Percentage))
			writeLn("")
		}
		if desc := strings.TrimSpace(x.Description); desc != "" {
			writeLn(desc)
			writeLn("")
		}
		for _, e := range x.Items {
			box := "[ ]"
			if e.Done {
				box = "[x]"
			}
			writeLn("- " + box + " " + oneLine(e.Text))
		}
		if len(x.Items) > 0 {
			writeLn("")
		}
	}
	return buf.String()
}

// RenderDocumentMarkdown concatenates every item in list order.
func RenderDocumentMarkdown(doc *model.Document, opt RenderOptions) string {
	if doc == nil || len(doc.Content) == 0 {
		return ""
	}
	parts := make([]string, 0, len(doc.Content))
	for _, it := range doc.Content {
		parts = append(parts, strings.TrimRight(RenderItemMarkdown(it, opt), "\n"))
	}
	return strings.Join(parts, "\n\n") + "\n"
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
