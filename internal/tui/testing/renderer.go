// Package testing provides test utilities for TUI models.
package testing

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// TestRenderer drives a Bubble Tea model without a terminal and records
// what it produced.
type TestRenderer struct {
	// Output contains the last rendered view
	Output string

	// Commands contains all commands returned by Update calls
	Commands []tea.Cmd

	// UpdateCount tracks how many times Update was called
	UpdateCount int
}

// NewTestRenderer creates a new test renderer.
func NewTestRenderer() *TestRenderer {
	return &TestRenderer{}
}

// Render renders a model and captures its output.
func (r *TestRenderer) Render(model tea.Model) string {
	r.Output = model.View()
	return r.Output
}

// Update sends a message to the model and captures the result.
func (r *TestRenderer) Update(model tea.Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	r.UpdateCount++

	next, cmd := model.Update(msg)
	if cmd != nil {
		r.Commands = append(r.Commands, cmd)
	}
	r.Output = next.View()

	return next, cmd
}

// Run executes cmd and feeds every message it yields back into the model,
// following the chain until a command returns nil. Batch and blink
// messages are dropped.
func (r *TestRenderer) Run(model tea.Model, cmd tea.Cmd) tea.Model {
	for cmd != nil {
		msg := cmd()
		switch msg.(type) {
		case nil, tea.BatchMsg:
			return model
		}
		model, cmd = r.Update(model, msg)
	}
	return model
}

// LastCommand returns the most recent command, or nil if no commands were generated.
func (r *TestRenderer) LastCommand() tea.Cmd {
	if len(r.Commands) == 0 {
		return nil
	}
	return r.Commands[len(r.Commands)-1]
}

// StripANSI returns the last output without ANSI escape codes.
func (r *TestRenderer) StripANSI() string {
	return StripANSI(r.Output)
}

// Lines returns the stripped output split by newlines.
func (r *TestRenderer) Lines() []string {
	return strings.Split(r.StripANSI(), "\n")
}

// Reset clears all captured data.
func (r *TestRenderer) Reset() {
	r.Output = ""
	r.Commands = nil
	r.UpdateCount = 0
}
