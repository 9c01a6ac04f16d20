package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Form
	NextField key.Binding
	PrevField key.Binding

	// Ledger
	AddBatch         key.Binding
	RemoveBatch      key.Binding
	AddBorrow        key.Binding
	ToggleSign       key.Binding
	RemoveAdjustment key.Binding

	// Queue
	Enqueue        key.Binding
	QueueUp        key.Binding
	QueueDown      key.Binding
	Edit           key.Binding
	Commit         key.Binding
	Cancel         key.Binding
	RemoveSnapshot key.Binding
	MoveUp         key.Binding
	MoveDown       key.Binding

	// Printing
	CyclePosition key.Binding
	Print         key.Binding

	// Application
	Reset     key.Binding
	Confirm   key.Binding
	Deny      key.Binding
	Help      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings. Field editing keys of
// textinput (ctrl+a/e/k/d/u/w and friends) are left to the focused input.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextField: key.NewBinding(
			key.WithKeys("tab", "down", "enter"),
			key.WithHelp("Tab/↓", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("S-Tab/↑", "previous field"),
		),

		AddBatch: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("Ctrl+N", "add batch"),
		),
		RemoveBatch: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("Ctrl+L", "remove last batch"),
		),
		AddBorrow: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("F2", "add borrow"),
		),
		ToggleSign: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("Ctrl+T", "toggle +/-"),
		),
		RemoveAdjustment: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("F3", "remove adjustment"),
		),

		Enqueue: key.NewBinding(
			key.WithKeys("ctrl+q"),
			key.WithHelp("Ctrl+Q", "add to queue"),
		),
		QueueUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "queue cursor up"),
		),
		QueueDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "queue cursor down"),
		),
		Edit: key.NewBinding(
			key.WithKeys("f4"),
			key.WithHelp("F4", "edit queued"),
		),
		Commit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("Ctrl+S", "save edit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "cancel edit"),
		),
		RemoveSnapshot: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("Ctrl+R", "remove queued"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("alt+up"),
			key.WithHelp("Alt+↑", "move queued up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("alt+down"),
			key.WithHelp("Alt+↓", "move queued down"),
		),

		CyclePosition: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("Ctrl+O", "print position"),
		),
		Print: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("Ctrl+P", "print"),
		),

		Reset: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("Ctrl+X", "clear all"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/Esc", "keep"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1", "ctrl+g"),
			key.WithHelp("F1", "help"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enqueue, k.Print, k.CyclePosition, k.Help, k.ForceQuit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField, k.AddBatch, k.RemoveBatch},
		{k.AddBorrow, k.ToggleSign, k.RemoveAdjustment},
		{k.Enqueue, k.QueueUp, k.QueueDown, k.Edit, k.Commit},
		{k.Cancel, k.RemoveSnapshot, k.MoveUp, k.MoveDown},
		{k.CyclePosition, k.Print, k.Reset, k.Help, k.ForceQuit},
	}
}
