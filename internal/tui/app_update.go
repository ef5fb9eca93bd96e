package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"quicknotes-cli/internal/model"
	"quicknotes-cli/internal/mutate"
	"quicknotes-cli/internal/publish"
	"quicknotes-cli/internal/reorder"
)

const wheelStep = 3

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.loaded {
			m.renderFull()
		}
		return m, nil

	case docLoadedMsg:
		m.onLoaded(msg)
		return m, nil

	case saveTickMsg:
		if m.sched.Fire(msg.gen) {
			return m, m.writeCurrent(false)
		}
		return m, nil

	case saveDoneMsg:
		return m, m.onSaved(msg)

	case statusResetMsg:
		m.sched.ResetStatus(msg.gen)
		return m, nil

	case flashClearMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil

	case tea.MouseMsg:
		return m, m.updateMouse(msg)

	case tea.KeyMsg:
		return m, m.updateKey(msg)
	}

	// Cursor blink and other editor internals.
	if m.editing != nil {
		cmd := m.editing.update(msg)
		m.refreshLayout()
		return m, cmd
	}
	return m, nil
}

func (m *appModel) updateKey(msg tea.KeyMsg) tea.Cmd {
	if !m.loaded {
		if key.Matches(msg, m.keys.Quit) {
			return tea.Quit
		}
		return nil
	}
	if m.confirm != nil {
		return m.updateConfirmKey(msg)
	}
	if m.editing != nil {
		return m.updateEditorKey(msg)
	}
	if m.drag.Dragging() {
		return m.updateDragKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.refreshLayout()
		return nil
	case key.Matches(msg, m.keys.SaveNow):
		return m.saveNow(false)
	case key.Matches(msg, m.keys.AddNote):
		return m.addItem(model.KindNote)
	case key.Matches(msg, m.keys.AddChecklist):
		return m.addItem(model.KindChecklist)
	case key.Matches(msg, m.keys.ClearAll):
		m.confirm = newClearAllModal()
		return nil
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return nil
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return nil
	}

	r, ok := m.currentRow()
	if !ok {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Edit):
		return m.activate(r)
	case key.Matches(msg, m.keys.Toggle):
		if r.kind == rowEntry {
			return m.apply(mutate.ToggleEntryDone(m.doc, r.itemID, r.entryID))
		}
	case key.Matches(msg, m.keys.Collapse):
		return m.toggleCollapsed(r.itemID)
	case key.Matches(msg, m.keys.Color):
		return m.apply(mutate.CycleColor(m.doc, r.itemID))
	case key.Matches(msg, m.keys.Grab):
		if m.drag.Start(r.itemID, reorder.RegionBlock) {
			m.dragByMouse = false
			m.renderBlock(r.itemID)
		}
	case key.Matches(msg, m.keys.Delete):
		return m.deleteRow(r)
	case key.Matches(msg, m.keys.AddEntry):
		return m.addEntry(r.itemID)
	case key.Matches(msg, m.keys.Copy):
		return m.copyItem(r.itemID)
	}
	return nil
}

func (m *appModel) updateConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "shift+tab", "left", "right", "h", "l":
		m.confirm.toggleFocus()
	case "y", "Y":
		return m.confirmClearAll()
	case "n", "N", "esc", "ctrl+g", "q":
		m.confirm = nil
	case "enter":
		if m.confirm.focus == confirmFocusConfirm {
			return m.confirmClearAll()
		}
		m.confirm = nil
	case "ctrl+c":
		m.confirm = nil
		return m.quit()
	}
	return nil
}

// confirmClearAll empties the Document and writes it immediately.
func (m *appModel) confirmClearAll() tea.Cmd {
	m.confirm = nil
	m.editing = nil
	m.drag.Cancel()
	mutate.ClearAll(m.doc)
	m.cursor = 0
	m.renderFull()
	return m.saveNow(true)
}

func (m *appModel) updateEditorKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyEsc:
		m.finishEdit()
		return nil
	case msg.Type == tea.KeyCtrlC:
		m.finishEdit()
		return m.quit()
	case key.Matches(msg, m.keys.SaveNow):
		return m.saveNow(false)
	case msg.Type == tea.KeyEnter && !m.editing.multiline():
		m.finishEdit()
		return nil
	}

	cmd := m.editing.update(msg)
	save := m.apply(m.editing.apply(m.doc))
	m.refreshLayout()
	return tea.Batch(cmd, save)
}

func (m *appModel) startEdit(r row) tea.Cmd {
	if m.editing != nil {
		m.finishEdit()
	}
	e, cmd, ok := newFieldEditor(m.doc, r)
	if !ok {
		return nil
	}
	m.selectRow(r)
	m.editing = e
	m.renderBlock(r.itemID)
	return cmd
}

func (m *appModel) finishEdit() {
	if m.editing == nil {
		return
	}
	id := m.editing.itemID
	m.editing = nil
	m.renderBlock(id)
}

// activate is enter on a row: edit its field, or add an entry on the add row.
func (m *appModel) activate(r row) tea.Cmd {
	if r.kind == rowAddEntry {
		return m.addEntry(r.itemID)
	}
	return m.startEdit(r)
}

func (m *appModel) addItem(kind model.Kind) tea.Cmd {
	res, err := mutate.AddItem(m.doc, kind)
	if err != nil {
		m.log.Error("add item failed", zap.Error(err))
		return m.setFlash("Add failed: " + err.Error())
	}
	cmd := m.apply(res)
	m.selectRow(row{kind: rowHeader, itemID: res.ItemID})
	return cmd
}

// addEntry appends an entry to the checklist and opens it for editing.
func (m *appModel) addEntry(itemID string) tea.Cmd {
	if _, ok := mutate.FindChecklist(m.doc, itemID); !ok {
		return nil
	}
	res, err := mutate.AddChecklistEntry(m.doc, itemID)
	if err != nil {
		m.log.Error("add entry failed", zap.Error(err))
		return m.setFlash("Add failed: " + err.Error())
	}
	save := m.apply(res)
	edit := m.startEdit(row{kind: rowEntry, itemID: itemID, entryID: res.EntryID})
	return tea.Batch(save, edit)
}

func (m *appModel) deleteRow(r row) tea.Cmd {
	if r.kind == rowEntry {
		return m.apply(mutate.DeleteChecklistEntry(m.doc, r.itemID, r.entryID))
	}
	return m.apply(mutate.DeleteItem(m.doc, r.itemID))
}

func (m *appModel) toggleCollapsed(itemID string) tea.Cmd {
	m.selectRow(row{kind: rowHeader, itemID: itemID})
	return m.apply(mutate.ToggleCollapsed(m.doc, itemID))
}

func (m *appModel) copyItem(itemID string) tea.Cmd {
	it, ok := mutate.FindItem(m.doc, itemID)
	if !ok {
		return nil
	}
	md := publish.RenderItemMarkdown(it, publish.RenderOptions{Progress: true})
	if err := copyToClipboard(md); err != nil {
		m.log.Warn("clipboard copy failed", zap.Error(err))
		return m.setFlash("Copy failed: " + err.Error())
	}
	return m.setFlash("Copied as markdown")
}

// Dragging.

func (m *appModel) updateDragKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.dragStep(-1)
	case key.Matches(msg, m.keys.Down):
		m.dragStep(1)
	case key.Matches(msg, m.keys.Grab), key.Matches(msg, m.keys.Edit):
		return m.dropOn(m.drag.DropTarget())
	case key.Matches(msg, m.keys.Done):
		m.cancelDrag()
	case key.Matches(msg, m.keys.Quit):
		m.cancelDrag()
		return m.quit()
	}
	return nil
}

// dragStep moves the drop marker to the next item in direction d, skipping
// the dragged item.
func (m *appModel) dragStep(d int) {
	cur := m.drag.DropTarget()
	if cur == "" {
		cur = m.drag.DraggedID()
	}
	i := mutate.IndexOf(m.doc, cur) + d
	if i >= 0 && i < len(m.doc.Content) && m.doc.Content[i].ItemID() == m.drag.DraggedID() {
		i += d
	}
	if i < 0 || i >= len(m.doc.Content) {
		return
	}
	m.dragOver(m.doc.Content[i].ItemID())
}

// dragOver moves the drop marker onto id ("" clears it).
func (m *appModel) dragOver(id string) {
	prev := m.drag.DropTarget()
	if id == "" {
		m.drag.Leave(prev)
	} else {
		m.drag.Over(id)
	}
	if next := m.drag.DropTarget(); next != prev {
		m.renderBlock(prev)
		m.renderBlock(next)
	}
}

func (m *appModel) dropOn(target string) tea.Cmd {
	prev := m.drag.DropTarget()
	dragged := m.drag.DraggedID()
	mv, ok := m.drag.Drop(target)
	m.dragByMouse = false
	m.renderBlock(prev)
	m.renderBlock(dragged)
	if !ok {
		return nil
	}
	cmd := m.apply(mutate.MoveItem(m.doc, mv.FromID, mv.ToID))
	m.selectRow(row{kind: rowHeader, itemID: mv.FromID})
	return cmd
}

func (m *appModel) cancelDrag() {
	prev := m.drag.DropTarget()
	dragged := m.drag.DraggedID()
	m.drag.Cancel()
	m.dragByMouse = false
	m.renderBlock(prev)
	m.renderBlock(dragged)
}

// Mouse.

func (m *appModel) updateMouse(msg tea.MouseMsg) tea.Cmd {
	if !m.loaded || m.confirm != nil {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollBy(-wheelStep)
		return nil
	case tea.MouseButtonWheelDown:
		m.scrollBy(wheelStep)
		return nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		return m.mousePress(msg.X, msg.Y)
	case tea.MouseActionMotion:
		if m.drag.Dragging() && m.dragByMouse {
			m.dragOver(m.itemAt(msg.Y))
		}
	case tea.MouseActionRelease:
		if m.drag.Dragging() && m.dragByMouse {
			return m.dropOn(m.itemAt(msg.Y))
		}
	}
	return nil
}

func (m *appModel) mousePress(x, y int) tea.Cmd {
	if y == 0 {
		m.finishEdit()
		_, spans := m.toolbar(m.viewWidth())
		return m.runAction(hitLine{spans: spans}.actionAt(x), hitLine{})
	}
	if m.drag.Dragging() {
		m.cancelDrag()
	}

	h, ok := m.hitAt(y)
	if !ok || h.itemID == "" {
		return nil
	}
	if m.editing != nil && (!h.hasRow || m.editing.row() != h.row) {
		m.finishEdit()
	}
	if h.hasRow {
		m.selectRow(h.row)
	}

	act := h.actionAt(x - blockInset)
	if act == actNone {
		if m.drag.Start(h.itemID, reorder.RegionBlock) {
			m.dragByMouse = true
			m.renderBlock(h.itemID)
		}
		return nil
	}
	return m.runAction(act, h)
}

func (m *appModel) runAction(act hitAction, h hitLine) tea.Cmd {
	switch act {
	case actAddNote:
		return m.addItem(model.KindNote)
	case actAddChecklist:
		return m.addItem(model.KindChecklist)
	case actClearAll:
		m.confirm = newClearAllModal()
	case actCollapse:
		return m.toggleCollapsed(h.itemID)
	case actDelete:
		return m.apply(mutate.DeleteItem(m.doc, h.itemID))
	case actEditTitle, actEditBody, actEditEntry:
		if m.editing != nil && m.editing.row() == h.row {
			return nil
		}
		return m.startEdit(h.row)
	case actToggleDone:
		return m.apply(mutate.ToggleEntryDone(m.doc, h.itemID, h.row.entryID))
	case actDeleteEntry:
		return m.apply(mutate.DeleteChecklistEntry(m.doc, h.itemID, h.row.entryID))
	case actAddEntry:
		return m.addEntry(h.itemID)
	}
	return nil
}
