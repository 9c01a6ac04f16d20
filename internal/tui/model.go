package tui

import (
	"context"
	"fmt"

	"github.com/Veraticus/paddy-ledger/internal/common"
	"github.com/Veraticus/paddy-ledger/internal/model"
	"github.com/Veraticus/paddy-ledger/internal/session"
	"github.com/Veraticus/paddy-ledger/internal/settlement"
	"github.com/Veraticus/paddy-ledger/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// slotKind says what a form input edits.
type slotKind int

const (
	slotField slotKind = iota
	slotAdjAmount
	slotAdjLabel
	slotAdjNote
)

// formSlot binds one text input to the session.
type formSlot struct {
	kind  slotKind
	field session.Field
	adjID string
}

var fieldLabels = map[session.Field]string{
	session.FieldCustomerName: "Customer",
	session.FieldDate:         "Date",
	session.FieldTotalWeight:  "Weight (kg)",
	session.FieldBags:         "Bags",
	session.FieldRate:         "Rate / qtl",
	session.FieldLabour:       "Labour / bag",
	session.FieldTare:         "Tare / bag",
}

// Model is the main TUI model for a settlement session.
type Model struct {
	ctx          context.Context
	ctrl         *session.Controller
	config       Config
	theme        themes.Theme
	keymap       KeyMap
	help         help.Model
	notice       string
	slots        []formSlot
	inputs       []textinput.Model
	focus        int
	cursor       int
	printing     int
	noticeLevel  noticeLevel
	width        int
	height       int
	confirmReset bool
	quitting     bool
}

// newModel creates a model bound to ctrl.
func newModel(ctx context.Context, ctrl *session.Controller, cfg Config) Model {
	h := help.New()
	h.ShowAll = cfg.ShowHelp

	m := Model{
		ctx:    ctx,
		ctrl:   ctrl,
		config: cfg,
		theme:  cfg.Theme,
		keymap: DefaultKeyMap(),
		help:   h,
		width:  cfg.Width,
		height: cfg.Height,
	}
	m.syncInputs()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case printStartedMsg:
		m.printing++
		m.setNotice(noticeInfo, fmt.Sprintf("Sending %d ledger(s) to the printer…", msg.slots))
		return m, waitForPrint(msg.results)

	case printDoneMsg:
		if m.printing > 0 {
			m.printing--
		}
		if msg.result.Err != nil {
			m.setNotice(noticeError, "Print failed: "+common.UserMessage(msg.result.Err))
		} else {
			m.setNotice(noticeSuccess, "Printed "+msg.result.JobID)
		}
		return m, nil

	case printFailedMsg:
		m.setNotice(noticeError, common.UserMessage(msg.err))
		return m, nil

	case tea.KeyMsg:
		if m.confirmReset {
			return m.handleResetConfirm(msg)
		}
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
		return m.updateFocused(msg)
	}

	return m.updateFocused(msg)
}

// updateFocused forwards msg to the focused input and writes any change
// through to the session.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if after := m.inputs[m.focus].Value(); after != before {
		m.write(m.slots[m.focus], after)
	}
	return m, cmd
}

func (m *Model) write(slot formSlot, value string) {
	switch slot.kind {
	case slotField:
		m.ctrl.SetField(m.ctx, slot.field, value)
	case slotAdjAmount:
		m.ctrl.UpdateAdjustment(m.ctx, slot.adjID, settlement.FieldAmount, value)
	case slotAdjLabel:
		m.ctrl.UpdateAdjustment(m.ctx, slot.adjID, settlement.FieldLabel, value)
	case slotAdjNote:
		m.ctrl.UpdateAdjustment(m.ctx, slot.adjID, settlement.FieldNote, value)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit):
		m.quitting = true
		return tea.Quit, true

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil, true

	case key.Matches(msg, m.keymap.NextField):
		return m.moveFocus(1), true

	case key.Matches(msg, m.keymap.PrevField):
		return m.moveFocus(-1), true

	case key.Matches(msg, m.keymap.AddBatch):
		if m.ctrl.AddBatch(m.ctx) {
			m.syncInputs()
			m.setNotice(noticeSuccess, "Batch added")
		} else {
			m.setNotice(noticeWarning, "Enter a weight or bag count first")
		}
		return nil, true

	case key.Matches(msg, m.keymap.RemoveBatch):
		batches := m.ctrl.Input().Batches
		if len(batches) == 0 {
			m.setNotice(noticeWarning, "No batches to remove")
			return nil, true
		}
		m.ctrl.RemoveBatch(m.ctx, batches[len(batches)-1].ID)
		m.setNotice(noticeInfo, "Last batch removed")
		return nil, true

	case key.Matches(msg, m.keymap.AddBorrow):
		id := m.ctrl.AddAdjustment(m.ctx)
		m.syncInputs()
		return m.focusSlot(formSlot{kind: slotAdjAmount, adjID: id}), true

	case key.Matches(msg, m.keymap.ToggleSign):
		adj, ok := m.focusedAdjustment()
		if !ok {
			m.setNotice(noticeWarning, "Move to an adjustment to change its sign")
			return nil, true
		}
		next := model.SignPlus
		if adj.Sign == model.SignPlus {
			next = model.SignMinus
		}
		m.ctrl.UpdateAdjustment(m.ctx, adj.ID, settlement.FieldSign, string(next))
		return nil, true

	case key.Matches(msg, m.keymap.RemoveAdjustment):
		adj, ok := m.focusedAdjustment()
		if !ok {
			m.setNotice(noticeWarning, "Move to an adjustment to remove it")
			return nil, true
		}
		m.ctrl.RemoveAdjustment(m.ctx, adj.ID)
		m.syncInputs()
		m.setNotice(noticeInfo, "Adjustment removed")
		return nil, true

	case key.Matches(msg, m.keymap.Enqueue):
		id := m.ctrl.Enqueue(m.ctx)
		if id == 0 {
			m.setNotice(noticeWarning, "Print queue is full")
			return nil, true
		}
		m.cursor = len(m.ctrl.Snapshots()) - 1
		m.setNotice(noticeSuccess, fmt.Sprintf("Queued #%d", id))
		return nil, true

	case key.Matches(msg, m.keymap.QueueUp):
		m.moveCursor(-1)
		return nil, true

	case key.Matches(msg, m.keymap.QueueDown):
		m.moveCursor(1)
		return nil, true

	case key.Matches(msg, m.keymap.Edit):
		snap, ok := m.selected()
		if !ok || !m.ctrl.Edit(m.ctx, snap.ID) {
			m.setNotice(noticeWarning, "Nothing queued to edit")
			return nil, true
		}
		m.syncInputs()
		m.setNotice(noticeInfo, fmt.Sprintf("Editing #%d", snap.ID))
		return nil, true

	case key.Matches(msg, m.keymap.Commit):
		id, editing := m.ctrl.Editing()
		if !editing || !m.ctrl.Commit(m.ctx) {
			m.setNotice(noticeWarning, "Not editing a queued ledger")
			return nil, true
		}
		m.setNotice(noticeSuccess, fmt.Sprintf("Saved #%d", id))
		return nil, true

	case key.Matches(msg, m.keymap.Cancel):
		if _, editing := m.ctrl.Editing(); editing {
			m.ctrl.Cancel()
			m.setNotice(noticeInfo, "Edit cancelled")
		}
		return nil, true

	case key.Matches(msg, m.keymap.RemoveSnapshot):
		snap, ok := m.selected()
		if !ok {
			return nil, true
		}
		m.ctrl.RemoveSnapshot(m.ctx, snap.ID)
		m.moveCursor(0)
		m.setNotice(noticeInfo, fmt.Sprintf("Removed #%d", snap.ID))
		return nil, true

	case key.Matches(msg, m.keymap.MoveUp):
		if m.ctrl.MoveSnapshot(m.ctx, m.cursor, -1) {
			m.cursor--
		}
		return nil, true

	case key.Matches(msg, m.keymap.MoveDown):
		if m.ctrl.MoveSnapshot(m.ctx, m.cursor, 1) {
			m.cursor++
		}
		return nil, true

	case key.Matches(msg, m.keymap.CyclePosition):
		pos := m.ctrl.CyclePosition(m.ctx)
		m.setNotice(noticeInfo, "Print position: "+string(pos))
		return nil, true

	case key.Matches(msg, m.keymap.Print):
		return m.print(), true

	case key.Matches(msg, m.keymap.Reset):
		m.confirmReset = true
		m.setNotice(noticeWarning, "Clear all inputs, queue and saved data? (y/n)")
		return nil, true
	}

	return nil, false
}

// handleResetConfirm waits for an answer to the reset prompt. Keys other
// than an answer leave the prompt open and do nothing.
func (m Model) handleResetConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit):
		m.confirmReset = false
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Deny):
		m.confirmReset = false
		m.setNotice(noticeInfo, "Reset cancelled")
		return m, nil

	case key.Matches(msg, m.keymap.Confirm):
		m.confirmReset = false
		m.ctrl.Reset(m.ctx)
		m.cursor = 0
		m.focus = 0
		m.syncInputs()
		m.setNotice(noticeSuccess, "Session cleared")
		return m, nil
	}

	return m, nil
}

// print composes the page now and hands it to the spooler.
func (m *Model) print() tea.Cmd {
	if m.config.Printer == nil {
		m.setNotice(noticeError, "No printer available")
		return nil
	}
	page := m.ctrl.ComposePage(m.config.Page, m.config.Metrics)
	if len(page.Filled()) == 0 {
		m.setNotice(noticeWarning, "Nothing to print")
		return nil
	}
	return printPage(m.ctx, m.config.Printer, page)
}

// syncInputs rebuilds the form from the session, keeping focus in range.
func (m *Model) syncInputs() {
	in := m.ctrl.Input()
	slots := make([]formSlot, 0, len(session.Fields)+3*len(in.Adjustments))
	for _, f := range session.Fields {
		slots = append(slots, formSlot{kind: slotField, field: f})
	}
	for _, a := range in.Adjustments {
		slots = append(slots,
			formSlot{kind: slotAdjAmount, adjID: a.ID},
			formSlot{kind: slotAdjLabel, adjID: a.ID},
			formSlot{kind: slotAdjNote, adjID: a.ID},
		)
	}

	inputs := make([]textinput.Model, len(slots))
	for i, s := range slots {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 64
		ti.Width = 20
		ti.SetValue(m.slotValue(in, s))
		ti.Placeholder = placeholder(s)
		inputs[i] = ti
	}

	m.slots = slots
	m.inputs = inputs
	if m.focus >= len(inputs) {
		m.focus = len(inputs) - 1
	}
	if m.focus < 0 {
		m.focus = 0
	}
	m.inputs[m.focus].Focus()
}

func (m *Model) slotValue(in model.TransactionInput, s formSlot) string {
	if s.kind == slotField {
		return m.ctrl.Field(s.field)
	}
	for _, a := range in.Adjustments {
		if a.ID != s.adjID {
			continue
		}
		switch s.kind {
		case slotAdjAmount:
			return a.Amount
		case slotAdjLabel:
			return a.Label
		case slotAdjNote:
			return a.Note
		}
	}
	return ""
}

func placeholder(s formSlot) string {
	switch s.kind {
	case slotAdjAmount:
		return "amount"
	case slotAdjLabel:
		return "label"
	case slotAdjNote:
		return "note"
	}
	switch s.field {
	case session.FieldCustomerName:
		return "name"
	case session.FieldDate:
		return session.DateLayout
	}
	return "0"
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	if len(m.inputs) == 0 {
		return nil
	}
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

func (m *Model) focusSlot(target formSlot) tea.Cmd {
	for i, s := range m.slots {
		if s == target {
			m.inputs[m.focus].Blur()
			m.focus = i
			return m.inputs[i].Focus()
		}
	}
	return nil
}

func (m Model) focusedAdjustment() (model.AdjustmentEntry, bool) {
	if len(m.slots) == 0 || m.slots[m.focus].kind == slotField {
		return model.AdjustmentEntry{}, false
	}
	id := m.slots[m.focus].adjID
	for _, a := range m.ctrl.Input().Adjustments {
		if a.ID == id {
			return a, true
		}
	}
	return model.AdjustmentEntry{}, false
}

func (m *Model) moveCursor(delta int) {
	n := len(m.ctrl.Snapshots())
	m.cursor += delta
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selected() (model.Snapshot, bool) {
	snaps := m.ctrl.Snapshots()
	if m.cursor < 0 || m.cursor >= len(snaps) {
		return model.Snapshot{}, false
	}
	return snaps[m.cursor], true
}

func (m *Model) setNotice(level noticeLevel, text string) {
	m.noticeLevel = level
	m.notice = text
}
