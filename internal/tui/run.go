package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Veraticus/paddy-ledger/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive session and blocks until the user quits or
// ctx is cancelled.
func Run(ctx context.Context, ctrl *session.Controller, opts ...Option) error {
	if ctrl == nil {
		return fmt.Errorf("session controller is required")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := tea.NewProgram(newModel(ctx, ctrl, cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
