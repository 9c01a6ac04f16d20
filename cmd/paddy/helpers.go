package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Veraticus/paddy-ledger/internal/config"
	"github.com/Veraticus/paddy-ledger/internal/layout"
	"github.com/Veraticus/paddy-ledger/internal/printer"
	"github.com/Veraticus/paddy-ledger/internal/service"
	"github.com/Veraticus/paddy-ledger/internal/session"
	"github.com/Veraticus/paddy-ledger/internal/storage"
	"github.com/spf13/viper"
)

// loadSettings resolves the configuration held by the global viper.
func loadSettings() (config.Settings, error) {
	return config.Load(viper.GetViper())
}

// initStorage opens the state database and brings its schema up to date.
func initStorage(ctx context.Context, dbPath string) (service.Storage, error) {
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		closeStorage(store)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

func closeStorage(store service.Storage) {
	if err := store.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
	}
}

func sessionOptions(s config.Settings) session.Options {
	return session.Options{
		Key:            s.SessionKey,
		TarePerBag:     s.Defaults.TarePerBag,
		RatePerQuintal: s.Defaults.RatePerQuintal,
		LabourPerBag:   s.Defaults.LabourPerBag,
		Position:       s.Print.Position,
		Now:            time.Now,
	}
}

// withSession loads the persisted session, runs fn and closes storage.
func withSession(ctx context.Context, fn func(ctrl *session.Controller, s config.Settings) error) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx, s.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	return fn(session.Load(ctx, store, sessionOptions(s)), s)
}

// newSpooler builds the print spooler for the configured backend and format.
func newSpooler(s config.Settings) (*printer.Spooler, error) {
	var backend printer.Backend
	switch s.Print.Backend {
	case config.BackendDir:
		backend = printer.DirBackend{Dir: s.Print.Dir}
	default:
		backend = printer.CommandBackend{Command: s.Print.Command, Args: s.Print.Args}
	}

	encoder, err := printer.NewEncoder(s.Print.Format, s.Page.TextColumns, s.Page.TextRows)
	if err != nil {
		return nil, err
	}

	return printer.NewSpooler(backend, encoder, printer.SpoolerOptions{
		SettleDelay:   s.Print.SettleDelay,
		TeardownDelay: s.Print.TeardownDelay,
	}), nil
}

func metrics(s config.Settings) layout.Metrics {
	return layout.Metrics{FontSize: s.Page.FontSize}
}

// composePage lays out what a print would place on the page. An empty
// position keeps the session's own.
func composePage(ctrl *session.Controller, s config.Settings, position string) (layout.Page, error) {
	pos := ctrl.Position()
	if position != "" {
		p, err := layout.ParsePosition(position)
		if err != nil {
			return layout.Page{}, fmt.Errorf("invalid --position: %w", err)
		}
		pos = p
	}
	return layout.Compose(ctrl.PrintDocuments(), pos, s.Page.Size(), metrics(s)), nil
}

// writeln writes user-facing output; write failures are logged.
func writeln(w io.Writer, a ...any) {
	if _, err := fmt.Fprintln(w, a...); err != nil {
		slog.Error("failed to write output", "error", err)
	}
}
