package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quicknotes-cli/internal/autosave"
	"quicknotes-cli/internal/model"
	"quicknotes-cli/internal/mutate"
)

// blockInset is the column where block content starts: border, padding and
// the two-column cursor gutter.
const blockInset = 4

const progressBarWidth = 10

const welcomeText = "It's a bit empty here. Add a note or a checklist to get started!"

type hitAction int

const (
	actNone hitAction = iota
	actCollapse
	actEditTitle
	actDelete
	actEditBody
	actToggleDone
	actEditEntry
	actDeleteEntry
	actAddEntry

	actAddNote
	actAddChecklist
	actClearAll
)

// hitSpan is a clickable column range. Columns outside every span are the
// block's non-interactive surface, where drags start.
type hitSpan struct {
	x0, x1 int
	act    hitAction
}

type hitLine struct {
	itemID string
	row    row
	hasRow bool
	spans  []hitSpan
}

func (h hitLine) actionAt(x int) hitAction {
	for _, s := range h.spans {
		if x >= s.x0 && x < s.x1 {
			return s.act
		}
	}
	return actNone
}

type renderedBlock struct {
	lines []string
	hits  []hitLine
}

// blockCache holds one rendered block per item id. renderFull rebuilds all of
// them; renderBlock patches one in place.
type blockCache struct {
	blocks map[string]renderedBlock

	fullRenders  int
	blockRenders int
}

func (m *appModel) innerWidth() int {
	w := m.viewWidth() - blockInset - 1
	if w < 16 {
		w = 16
	}
	return w
}

func (m *appModel) listHeight() int {
	h := m.viewHeight() - listTop - 1 - lipgloss.Height(m.help.View(m.keys))
	if h < 1 {
		h = 1
	}
	return h
}

// renderFull rebuilds rows, every block and the hit map.
func (m *appModel) renderFull() {
	prev, hadPrev := m.currentRow()
	m.rows = buildRows(m.doc)
	if i := m.indexOfRow(prev); hadPrev && i >= 0 {
		m.cursor = i
	} else if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	// An editor whose row was deleted or collapsed away has nothing to edit.
	if m.editing != nil && m.indexOfRow(m.editing.row()) < 0 {
		m.editing = nil
	}

	m.cache.blocks = make(map[string]renderedBlock, len(m.doc.Content))
	for _, it := range m.doc.Content {
		m.cache.blocks[it.ItemID()] = m.renderItem(it)
	}
	m.cache.fullRenders++
	m.refreshLayout()
}

// renderBlock repaints one block. Drag state and the active editor are untouched.
func (m *appModel) renderBlock(id string) {
	if m.doc == nil || id == "" {
		return
	}
	it, ok := mutate.FindItem(m.doc, id)
	if !ok {
		return
	}
	m.cache.blocks[id] = m.renderItem(it)
	m.cache.blockRenders++
	m.refreshLayout()
}

// refreshLayout stacks the cached blocks into the list and its hit map. The
// block holding the active editor is repainted every time so typed text shows.
func (m *appModel) refreshLayout() {
	if m.doc == nil {
		return
	}
	if m.editing != nil {
		if it, ok := mutate.FindItem(m.doc, m.editing.itemID); ok {
			m.cache.blocks[it.ItemID()] = m.renderItem(it)
		}
	}

	m.listLines = m.listLines[:0]
	m.hits = m.hits[:0]
	for i, it := range m.doc.Content {
		if i > 0 {
			m.listLines = append(m.listLines, "")
			m.hits = append(m.hits, hitLine{})
		}
		b, ok := m.cache.blocks[it.ItemID()]
		if !ok {
			b = m.renderItem(it)
			m.cache.blocks[it.ItemID()] = b
		}
		m.listLines = append(m.listLines, b.lines...)
		m.hits = append(m.hits, b.hits...)
	}
	m.ensureCursorVisible()
}

func (m *appModel) ensureCursorVisible() {
	r, ok := m.currentRow()
	if ok {
		first, last := -1, -1
		for i, h := range m.hits {
			if h.hasRow && h.row == r {
				if first < 0 {
					first = i
				}
				last = i
			}
		}
		listH := m.listHeight()
		if first >= 0 {
			if first < m.scroll {
				m.scroll = first
			}
			if last >= m.scroll+listH {
				m.scroll = last - listH + 1
			}
		}
	}
	m.clampScroll()
}

func (m *appModel) clampScroll() {
	maxScroll := len(m.listLines) - m.listHeight()
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

func (m *appModel) scrollBy(d int) {
	m.scroll += d
	m.clampScroll()
}

// hitAt maps a screen line to the list's hit map.
func (m *appModel) hitAt(y int) (hitLine, bool) {
	if y < listTop || y >= listTop+m.listHeight() {
		return hitLine{}, false
	}
	i := y - listTop + m.scroll
	if i < 0 || i >= len(m.hits) {
		return hitLine{}, false
	}
	return m.hits[i], true
}

func (m *appModel) itemAt(y int) string {
	h, _ := m.hitAt(y)
	return h.itemID
}

// Blocks.

type blockBuilder struct {
	m      *appModel
	itemID string
	width  int
	lines  []string
	hits   []hitLine
}

func (b *blockBuilder) add(content string, r row, spans []hitSpan) {
	gutter := "  "
	if b.m.isCursor(r) {
		gutter = styleCursor().Render(glyphCursor()) + " "
	}
	b.lines = append(b.lines, gutter+fitLine(content, b.width))
	b.hits = append(b.hits, hitLine{itemID: b.itemID, row: r, hasRow: true, spans: spans})
}

func (m *appModel) renderItem(it model.Item) renderedBlock {
	b := &blockBuilder{m: m, itemID: it.ItemID(), width: m.innerWidth()}
	switch x := it.(type) {
	case *model.Note:
		m.renderNote(b, x)
	case *model.Checklist:
		m.renderChecklist(b, x)
	}

	id := it.ItemID()
	border := lipgloss.Border{Left: "│"}
	if glyphs() == glyphSetASCII {
		border = lipgloss.Border{Left: "|"}
	}
	var borderColor lipgloss.TerminalColor = colorCardBorder
	if c, ok := colorFor(model.ItemColor(it)); ok {
		border = lipgloss.Border{Left: "┃"}
		if glyphs() == glyphSetASCII {
			border = lipgloss.Border{Left: "#"}
		}
		borderColor = c
	} else if cur, ok := m.currentRow(); ok && cur.itemID == id {
		borderColor = colorSelectedBorder
	}
	if m.drag.Dragging() && m.drag.DropTarget() == id {
		border = lipgloss.Border{Left: glyphDropMarker()}
		if textWidth(border.Left) > 1 {
			border.Left = ">"
		}
		borderColor = colorAccent
	}

	st := lipgloss.NewStyle().
		BorderStyle(border).
		BorderLeft(true).
		BorderForeground(borderColor).
		PaddingLeft(1)
	if m.drag.Dragging() && m.drag.DraggedID() == id {
		st = st.Faint(true)
	}
	out := st.Render(strings.Join(b.lines, "\n"))
	return renderedBlock{lines: strings.Split(out, "\n"), hits: b.hits}
}

// header renders twisty, title and a right-aligned suffix ending in the
// delete affordance.
func (m *appModel) header(b *blockBuilder, it model.Item, placeholder string, suffix string) {
	r := row{kind: rowHeader, itemID: it.ItemID()}

	twisty := glyphTwistyExpanded()
	if model.Collapsed(it) {
		twisty = glyphTwistyCollapsed()
	}
	del := styleMuted().Render(glyphDelete())
	right := del
	if suffix != "" {
		right = suffix + "  " + del
	}
	tw, rw := textWidth(twisty), textWidth(right)
	titleMax := b.width - tw - 1 - rw - 1
	if titleMax < 1 {
		titleMax = 1
	}

	var title string
	if m.editing != nil && m.editing.row() == r {
		m.editing.setWidth(titleMax)
		title = m.editing.view()
	} else if t := model.Title(it); strings.TrimSpace(t) != "" {
		st := lipgloss.NewStyle().Bold(true)
		if m.drag.Dragging() && m.drag.DraggedID() == it.ItemID() {
			st = styleMuted()
		}
		title = st.Render(truncate(t, titleMax))
	} else {
		title = styleMuted().Render(placeholder)
	}
	title = truncate(title, titleMax)

	left := twisty + " " + title
	pad := b.width - textWidth(left) - rw
	if pad < 1 {
		pad = 1
	}
	titleW := textWidth(title)
	if m.editing != nil && m.editing.row() == r {
		titleW = titleMax
	}
	spans := []hitSpan{
		{x0: 0, x1: tw, act: actCollapse},
		{x0: tw + 1, x1: tw + 1 + titleW, act: actEditTitle},
		{x0: b.width - textWidth(del), x1: b.width, act: actDelete},
	}
	b.add(left+strings.Repeat(" ", pad)+right, r, spans)
}

func (m *appModel) renderNote(b *blockBuilder, n *model.Note) {
	m.header(b, n, "Note Title", "")
	if n.IsCollapsed {
		return
	}
	r := row{kind: rowBody, itemID: n.ID}
	m.body(b, r, n.Content, "Start typing your note...", true)
}

// body renders a multi-line field. Notes render as markdown when not editing.
func (m *appModel) body(b *blockBuilder, r row, text string, placeholder string, markdown bool) {
	spans := []hitSpan{{x0: 0, x1: b.width, act: actEditBody}}

	var rendered string
	switch {
	case m.editing != nil && m.editing.row() == r:
		m.editing.setWidth(b.width)
		rendered = m.editing.view()
	case strings.TrimSpace(text) == "":
		rendered = styleMuted().Render(placeholder)
	case markdown:
		rendered = renderMarkdownCompact(text, b.width)
	default:
		rendered = lipgloss.NewStyle().Width(b.width).Render(text)
	}
	for _, ln := range strings.Split(rendered, "\n") {
		b.add(ln, r, spans)
	}
}

func (m *appModel) renderChecklist(b *blockBuilder, c *model.Checklist) {
	p := model.ComputeProgress(c)
	m.header(b, c, "Checklist Title", progressBar(p))
	if c.IsCollapsed {
		return
	}
	m.body(b, row{kind: rowBody, itemID: c.ID}, c.Description, "Add a description...", false)

	for _, e := range c.Items {
		r := row{kind: rowEntry, itemID: c.ID, entryID: e.ID}
		box := glyphCheckboxOff()
		if e.Done {
			box = glyphCheckboxOn()
		}
		del := styleMuted().Render(glyphDelete())
		bw, dw := textWidth(box), textWidth(del)
		textMax := b.width - bw - 1 - dw - 1
		if textMax < 1 {
			textMax = 1
		}

		var text string
		textW := 0
		switch {
		case m.editing != nil && m.editing.row() == r:
			m.editing.setWidth(textMax)
			text = truncate(m.editing.view(), textMax)
			textW = textMax
		case e.Text == "":
			text = styleMuted().Render("New item...")
			textW = textWidth(text)
		case e.Done:
			text = styleMuted().Strikethrough(true).Render(truncate(e.Text, textMax))
			textW = textWidth(text)
		default:
			text = truncate(e.Text, textMax)
			textW = textWidth(text)
		}

		left := box + " " + text
		pad := b.width - textWidth(left) - dw
		if pad < 1 {
			pad = 1
		}
		spans := []hitSpan{
			{x0: 0, x1: bw, act: actToggleDone},
			{x0: bw + 1, x1: bw + 1 + textW, act: actEditEntry},
			{x0: b.width - dw, x1: b.width, act: actDeleteEntry},
		}
		b.add(left+strings.Repeat(" ", pad)+del, r, spans)
	}

	add := "+ Add item"
	b.add(lipgloss.NewStyle().Foreground(colorAccent).Render(add), row{kind: rowAddEntry, itemID: c.ID},
		[]hitSpan{{x0: 0, x1: textWidth(add), act: actAddEntry}})
}

// progressBar renders "done/total [bar] pct%". A complete checklist gets the
// success color.
func progressBar(p model.Progress) string {
	filled := (p.Percentage*progressBarWidth + 50) / 100
	bar := strings.Repeat(glyphBarFull(), filled) + strings.Repeat(glyphBarEmpty(), progressBarWidth-filled)
	text := fmt.Sprintf("%d/%d %s %d%%", p.Completed, p.Total, bar, p.Percentage)
	if p.Complete() {
		return lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render(text)
	}
	return styleMuted().Render(text)
}

// Chrome.

// toolbar renders the title bar and its clickable buttons.
func (m *appModel) toolbar(width int) (string, []hitSpan) {
	title := styleTitleBar().Render("Quick Notes")
	buttons := []struct {
		label string
		act   hitAction
	}{
		{"+ Note", actAddNote},
		{"+ Checklist", actAddChecklist},
		{"Clear all", actClearAll},
	}

	var parts []string
	var spans []hitSpan
	x := textWidth(title) + 2
	for _, btn := range buttons {
		s := styleButton().Render(btn.label)
		w := textWidth(s)
		spans = append(spans, hitSpan{x0: x, x1: x + w, act: btn.act})
		parts = append(parts, s)
		x += w + 1
	}
	line := title + "  " + strings.Join(parts, " ")
	return fitLine(line, width), spans
}

func (m *appModel) statusLine(width int) string {
	var left string
	switch {
	case m.drag.Dragging():
		from := m.titleOf(m.drag.DraggedID())
		to := "(pick a block)"
		if t := m.drag.DropTarget(); t != "" {
			to = m.titleOf(t)
		}
		left = styleCursor().Render(fmt.Sprintf("Moving %q %s %s", from, glyphArrow(), to)) +
			styleMuted().Render("  m/enter: drop  esc: cancel")
	case m.flash != "":
		left = styleStatus(true, false).Render(m.flash)
	default:
		st := m.sched.Status()
		failed := st == autosave.StatusSaveFailed || st == autosave.StatusLoadFailed
		left = styleStatus(st == autosave.StatusSaved, failed).Render(st.String())
		if m.editing != nil {
			left += styleMuted().Render("  editing, esc: done")
		}
	}
	right := styleMuted().Render("key: " + m.docs.Key)
	pad := width - textWidth(left) - textWidth(right)
	if pad < 1 {
		return fitLine(left, width)
	}
	return left + strings.Repeat(" ", pad) + right
}

func (m *appModel) titleOf(id string) string {
	it, ok := mutate.FindItem(m.doc, id)
	if !ok {
		return ""
	}
	if t := strings.TrimSpace(model.Title(it)); t != "" {
		return t
	}
	return "Untitled"
}

func (m *appModel) View() string {
	w, h := m.viewWidth(), m.viewHeight()
	if !m.loaded {
		return normalizePane(styleMuted().Render("Loading..."), w, h)
	}
	m.help.Width = w

	top, _ := m.toolbar(w)
	rule := styleMuted().Render(strings.Repeat(glyphHRule(), w))
	listH := m.listHeight()

	var body string
	switch {
	case m.confirm != nil:
		body = lipgloss.Place(w, listH, lipgloss.Center, lipgloss.Center, m.confirm.render(w))
	case len(m.doc.Content) == 0:
		body = lipgloss.Place(w, listH, lipgloss.Center, lipgloss.Center,
			styleMuted().Width(modalBodyWidth(w)).Align(lipgloss.Center).Render(welcomeText))
	default:
		end := m.scroll + listH
		if end > len(m.listLines) {
			end = len(m.listLines)
		}
		body = strings.Join(m.listLines[m.scroll:end], "\n")
	}

	return strings.Join([]string{
		top,
		rule,
		normalizePane(body, w, listH),
		m.statusLine(w),
		m.help.View(m.keys),
	}, "\n")
}
