package publish

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"quicknotes-cli/internal/model"
)

// Raw HTML in note bodies is not passed through (no html.WithUnsafe).
var htmlRenderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		emoji.Emoji,
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
	),
)

var pageTmpl = template.Must(template.New("page").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{range .Items}}<section id="{{.ID}}"{{if .Color}} data-color="{{.Color}}"{{end}}>
{{.Body}}</section>
{{end}}</body>
</html>
`))

type htmlItem struct {
	ID    string
	Color string
	Body  template.HTML
}

// RenderItemHTML converts the item's markdown form to an HTML fragment.
func RenderItemHTML(it model.Item, opt RenderOptions) (template.HTML, error) {
	var b bytes.Buffer
	if err := htmlRenderer.Convert([]byte(RenderItemMarkdown(it, opt)), &b); err != nil {
		return "", fmt.Errorf("render %s: %w", it.ItemID(), err)
	}
	return template.HTML(b.String()), nil
}

// RenderDocumentHTML renders a standalone page with one <section> per item.
func RenderDocumentHTML(doc *model.Document, title string, opt RenderOptions) (string, error) {
	if strings.TrimSpace(title) == "" {
		title = "Quick Notes"
	}
	data := struct {
		Title string
		Items []htmlItem
	}{Title: title}
	if doc != nil {
		for _, it := range doc.Content {
			body, err := RenderItemHTML(it, opt)
			if err != nil {
				return "", err
			}
			c := ""
			if ic := model.ItemColor(it); ic != model.ColorNone {
				c = string(ic)
			}
			data.Items = append(data.Items, htmlItem{ID: it.ItemID(), Color: c, Body: body})
		}
	}
	var b bytes.Buffer
	if err := pageTmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
