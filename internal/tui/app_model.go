package tui

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"quicknotes-cli/internal/autosave"
	"quicknotes-cli/internal/model"
	"quicknotes-cli/internal/mutate"
	"quicknotes-cli/internal/reorder"
	"quicknotes-cli/internal/store"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// listTop is the first screen line of the item list (title bar + rule).
	listTop = 2

	flashDuration = 2 * time.Second
)

type rowKind int

const (
	rowHeader rowKind = iota
	rowBody
	rowEntry
	rowAddEntry
)

// row is one focusable line group inside a block.
type row struct {
	kind    rowKind
	itemID  string
	entryID string
}

// key is the persisted form of the row inside its block.
func (r row) key() string {
	switch r.kind {
	case rowBody:
		return "body"
	case rowAddEntry:
		return "add"
	case rowEntry:
		return r.entryID
	default:
		return "header"
	}
}

func rowFromKey(itemID, k string) row {
	switch k {
	case "", "header":
		return row{kind: rowHeader, itemID: itemID}
	case "body":
		return row{kind: rowBody, itemID: itemID}
	case "add":
		return row{kind: rowAddEntry, itemID: itemID}
	default:
		return row{kind: rowEntry, itemID: itemID, entryID: k}
	}
}

func buildRows(doc *model.Document) []row {
	if doc == nil {
		return nil
	}
	var out []row
	for _, it := range doc.Content {
		id := it.ItemID()
		out = append(out, row{kind: rowHeader, itemID: id})
		if model.Collapsed(it) {
			continue
		}
		out = append(out, row{kind: rowBody, itemID: id})
		if c, ok := it.(*model.Checklist); ok {
			for _, e := range c.Items {
				out = append(out, row{kind: rowEntry, itemID: id, entryID: e.ID})
			}
			out = append(out, row{kind: rowAddEntry, itemID: id})
		}
	}
	return out
}

type (
	docLoadedMsg struct {
		doc *model.Document
		err error
	}
	saveTickMsg    struct{ gen int }
	saveDoneMsg    struct {
		err     error
		cleared bool
	}
	statusResetMsg struct{ gen int }
	flashClearMsg  struct{ seq int }
)

// docWriter serializes writes. A write older than one already on disk is
// dropped so overlapping commands keep last-write-wins order.
type docWriter struct {
	docs *store.DocumentStore

	seq int // event loop only

	mu      sync.Mutex
	written int
}

func (w *docWriter) next() int {
	w.seq++
	return w.seq
}

func (w *docWriter) write(ctx context.Context, seq int, b []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if seq <= w.written {
		return nil
	}
	if err := w.docs.SaveRaw(ctx, b); err != nil {
		return err
	}
	w.written = seq
	return nil
}

type appModel struct {
	docs  *store.DocumentStore
	store store.Store
	log   *zap.Logger

	doc    *model.Document
	loaded bool

	sched       *autosave.Scheduler
	lastTicket  autosave.Ticket
	writer      *docWriter
	drag        reorder.Controller
	dragByMouse bool

	width  int
	height int
	scroll int

	rows   []row
	cursor int

	cache     blockCache
	listLines []string
	hits      []hitLine

	editing *fieldEditor
	confirm *confirmModal

	keys keyMap
	help help.Model

	flash    string
	flashSeq int

	restore *store.TUIState
}

func newAppModel(opts Options) *appModel {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	m := &appModel{
		docs:   opts.Docs,
		store:  opts.Store,
		log:    log,
		sched:  autosave.New(opts.Autosave),
		writer: &docWriter{docs: opts.Docs},
		keys:   newKeyMap(),
		help:   help.New(),
		cache:  blockCache{blocks: map[string]renderedBlock{}},
	}
	if st, err := opts.Store.LoadTUIState(); err == nil {
		m.restore = st
	}
	return m
}

func (m *appModel) Init() tea.Cmd {
	docs := m.docs
	return func() tea.Msg {
		doc, err := docs.Load(context.Background())
		return docLoadedMsg{doc: doc, err: err}
	}
}

func (m *appModel) onLoaded(msg docLoadedMsg) {
	m.doc = msg.doc
	if msg.err != nil || m.doc == nil {
		// The session keeps working on an empty Document; nothing is written
		// until the user changes something.
		m.log.Error("load failed", zap.Error(msg.err), zap.String("key", m.docs.Key))
		m.doc = model.NewDocument()
		m.sched.LoadFailed()
	} else {
		m.log.Info("loaded", zap.Int("items", len(m.doc.Content)), zap.String("key", m.docs.Key))
	}
	m.loaded = true
	m.renderFull()
	m.restoreSelection()
}

func (m *appModel) restoreSelection() {
	st := m.restore
	m.restore = nil
	if st == nil || st.SelectedItemID == "" || st.Key != m.docs.Key {
		return
	}
	if _, ok := mutate.FindItem(m.doc, st.SelectedItemID); !ok {
		return
	}
	if !m.selectRow(rowFromKey(st.SelectedItemID, st.Row)) {
		m.selectRow(row{kind: rowHeader, itemID: st.SelectedItemID})
	}
}

func (m *appModel) saveTUIState() {
	r, ok := m.currentRow()
	st := &store.TUIState{Key: m.docs.Key}
	if ok {
		st.SelectedItemID = r.itemID
		st.Row = r.key()
	}
	if err := m.store.SaveTUIState(st); err != nil {
		m.log.Warn("save tui state failed", zap.Error(err))
	}
}

// Rows and selection.

func (m *appModel) currentRow() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

func (m *appModel) isCursor(r row) bool {
	cur, ok := m.currentRow()
	return ok && cur == r
}

func (m *appModel) indexOfRow(r row) int {
	for i := range m.rows {
		if m.rows[i] == r {
			return i
		}
	}
	return -1
}

// selectRow moves the cursor and repaints the blocks it left and entered.
func (m *appModel) selectRow(r row) bool {
	i := m.indexOfRow(r)
	if i < 0 {
		return false
	}
	m.setCursor(i)
	return true
}

func (m *appModel) setCursor(i int) {
	if len(m.rows) == 0 {
		m.cursor = 0
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= len(m.rows) {
		i = len(m.rows) - 1
	}
	if i == m.cursor {
		return
	}
	prev, hadPrev := m.currentRow()
	m.cursor = i
	next := m.rows[i]
	if hadPrev && prev.itemID != next.itemID {
		m.renderBlock(prev.itemID)
	}
	m.renderBlock(next.itemID)
}

func (m *appModel) moveCursor(delta int) {
	m.setCursor(m.cursor + delta)
}

// Saving.

func (m *appModel) scheduleSave() tea.Cmd {
	t := m.sched.Schedule()
	m.lastTicket = t
	return tea.Tick(t.Delay, func(time.Time) tea.Msg { return saveTickMsg{gen: t.Gen} })
}

// writeCurrent encodes the Document on the event loop and writes the bytes
// from a command.
func (m *appModel) writeCurrent(cleared bool) tea.Cmd {
	b, err := model.EncodeDocument(m.doc)
	if err != nil {
		m.log.Error("encode failed", zap.Error(err))
		m.sched.Failed()
		return nil
	}
	w := m.writer
	seq := w.next()
	return func() tea.Msg {
		return saveDoneMsg{err: w.write(context.Background(), seq, b), cleared: cleared}
	}
}

func (m *appModel) saveNow(cleared bool) tea.Cmd {
	m.sched.SaveNow()
	return m.writeCurrent(cleared)
}

func (m *appModel) onSaved(msg saveDoneMsg) tea.Cmd {
	if msg.err != nil {
		m.log.Error("save failed", zap.Error(msg.err), zap.String("key", m.docs.Key))
		m.sched.Failed()
		return nil
	}
	m.log.Debug("saved", zap.Int("items", len(m.doc.Content)))
	if msg.cleared {
		m.sched.Cleared()
		return nil
	}
	t := m.sched.Saved()
	if t.Gen == 0 {
		return nil
	}
	return tea.Tick(t.Delay, func(time.Time) tea.Msg { return statusResetMsg{gen: t.Gen} })
}

// apply repaints what a mutation invalidated and schedules a save.
func (m *appModel) apply(res mutate.Result) tea.Cmd {
	if !res.Changed {
		return nil
	}
	switch res.Render {
	case mutate.RenderFull:
		m.renderFull()
	case mutate.RenderBlock:
		m.renderBlock(res.ItemID)
	}
	return m.scheduleSave()
}

func (m *appModel) setFlash(s string) tea.Cmd {
	m.flashSeq++
	seq := m.flashSeq
	m.flash = s
	return tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashClearMsg{seq: seq} })
}

func (m *appModel) quit() tea.Cmd {
	m.saveTUIState()
	if m.sched.Pending() {
		return tea.Sequence(m.saveNow(false), tea.Quit)
	}
	return tea.Quit
}

func (m *appModel) viewWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

func (m *appModel) viewHeight() int {
	if m.height <= 0 {
		return defaultHeight
	}
	return m.height
}
