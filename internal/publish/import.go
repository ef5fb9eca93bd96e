package publish

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"quicknotes-cli/internal/model"
)

const (
	importedNoteTitle      = "New Note"
	importedChecklistTitle = "My Checklist"
)

var (
	taskMarker   = regexp.MustCompile(`^\s*\[[ xX]\]\s?`)
	colorLine    = regexp.MustCompile(`^Color: ([a-z]+)$`)
	progressLine = regexp.MustCompile(`^Progress: \d+/\d+ \(\d+%\)$`)
)

// section accumulates one heading's worth of blocks.
type section struct {
	title   string
	body    []string
	entries []model.Entry
	tasks   bool
	color   model.Color
}

func (s *section) empty() bool {
	return s.title == "" && len(s.body) == 0 && len(s.entries) == 0
}

func (s *section) item() model.Item {
	body := strings.Join(s.body, "\n\n")
	if s.tasks {
		title := s.title
		if title == "" {
			title = importedChecklistTitle
		}
		return &model.Checklist{Title: title, Description: body, Color: s.color, Items: s.entries}
	}
	title := s.title
	if title == "" {
		title = importedNoteTitle
	}
	return &model.Note{Title: title, Content: body, Color: s.color}
}

// ParseMarkdown splits source into items at every heading. A section holding a
// task list becomes a checklist (its other text becomes the description);
// anything else becomes a note. Returned items carry no ids.
func ParseMarkdown(source []byte) []model.Item {
	md := goldmark.New(goldmark.WithExtensions(extension.TaskList))
	root := md.Parser().Parse(text.NewReader(source))

	var out []model.Item
	cur := &section{}
	flush := func() {
		if !cur.empty() {
			out = append(out, cur.item())
		}
		cur = &section{}
	}

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch b := n.(type) {
		case *ast.Heading:
			flush()
			cur.title = strings.TrimSpace(blockText(b, source))
		case *ast.List:
			var plain []string
			for li := b.FirstChild(); li != nil; li = li.NextSibling() {
				line := strings.TrimSpace(listItemText(li, source))
				if cb := taskCheckBox(li); cb != nil {
					cur.tasks = true
					cur.entries = append(cur.entries, model.Entry{
						Text: strings.TrimSpace(taskMarker.ReplaceAllString(line, "")),
						Done: cb.IsChecked,
					})
					continue
				}
				plain = append(plain, "- "+line)
			}
			if len(plain) > 0 {
				cur.body = append(cur.body, strings.Join(plain, "\n"))
			}
		case *ast.FencedCodeBlock:
			fence := "```"
			if lang := b.Language(source); len(lang) > 0 {
				fence += string(lang)
			}
			cur.body = append(cur.body, fence+"\n"+strings.TrimRight(blockText(b, source), "\n")+"\n```")
		case *ast.ThematicBreak:
			// Horizontal rules only separate sections visually.
		case *ast.Paragraph:
			t := strings.TrimSpace(blockText(b, source))
			// Metadata lines written by RenderItemMarkdown.
			if m := colorLine.FindStringSubmatch(t); m != nil && model.Color(m[1]).Valid() {
				cur.color = model.Color(m[1])
				continue
			}
			if progressLine.MatchString(t) {
				continue
			}
			if t != "" {
				cur.body = append(cur.body, t)
			}
		default:
			if t := strings.TrimSpace(blockText(n, source)); t != "" {
				cur.body = append(cur.body, t)
			}
		}
	}
	flush()
	return out
}

func taskCheckBox(li ast.Node) *extast.TaskCheckBox {
	block := li.FirstChild()
	if block == nil {
		return nil
	}
	cb, _ := block.FirstChild().(*extast.TaskCheckBox)
	return cb
}

func listItemText(li ast.Node, source []byte) string {
	var parts []string
	for c := li.FirstChild(); c != nil; c = c.NextSibling() {
		if t := strings.TrimSpace(blockText(c, source)); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// blockText joins the raw source lines of a block, recursing into containers
// (blockquotes, nested lists) that carry no lines of their own.
func blockText(n ast.Node, source []byte) string {
	if n.Type() == ast.TypeBlock {
		if lines := n.Lines(); lines != nil && lines.Len() > 0 {
			var buf bytes.Buffer
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				buf.Write(seg.Value(source))
			}
			return buf.String()
		}
	}
	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Type() != ast.TypeBlock {
			continue
		}
		if t := strings.TrimSpace(blockText(c, source)); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}
