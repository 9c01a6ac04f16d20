package printer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/Veraticus/paddy-ledger/internal/common"
	"github.com/Veraticus/paddy-ledger/internal/layout"
	"github.com/Veraticus/paddy-ledger/internal/service"
	"github.com/google/uuid"
)

// Default spool timings.
const (
	DefaultSettleDelay   = 120 * time.Millisecond
	DefaultTeardownDelay = 60 * time.Second
)

// SpoolerOptions configure a Spooler.
type SpoolerOptions struct {
	SettleDelay   time.Duration
	TeardownDelay time.Duration
	// TempDir holds spool files; empty means os.TempDir.
	TempDir string
	Retry   common.RetryOptions
}

// Spooler runs print jobs in the background. Print returns as soon as the
// job file is written; the backend runs after a short settle delay and the
// file is removed once the job finishes or the teardown deadline passes.
type Spooler struct {
	backend Backend
	encoder Encoder
	opts    SpoolerOptions
	wg      sync.WaitGroup
}

var _ service.Printer = (*Spooler)(nil)

// NewSpooler creates a spooler for backend and encoder.
func NewSpooler(backend Backend, encoder Encoder, opts SpoolerOptions) *Spooler {
	if opts.SettleDelay < 0 {
		opts.SettleDelay = 0
	}
	if opts.TeardownDelay <= 0 {
		opts.TeardownDelay = DefaultTeardownDelay
	}
	if opts.Retry.MaxAttempts <= 0 {
		opts.Retry = common.RetryOptions{MaxAttempts: 3, InitialDelay: 500 * time.Millisecond, MaxDelay: 5 * time.Second}
	}
	return &Spooler{backend: backend, encoder: encoder, opts: opts}
}

// Print implements service.Printer. An unusable backend is reported as a
// UserError before anything is written.
func (s *Spooler) Print(ctx context.Context, page layout.Page) (<-chan service.PrintResult, error) {
	if err := s.backend.Available(); err != nil {
		return nil, common.NewUserError("No printer available", err)
	}

	data, err := s.encoder.Encode(page)
	if err != nil {
		return nil, fmt.Errorf("failed to encode page: %w", err)
	}

	jobID := uuid.NewString()
	f, err := os.CreateTemp(s.opts.TempDir, "paddy-"+jobID+"-*"+s.encoder.Ext())
	if err != nil {
		return nil, fmt.Errorf("failed to create spool file: %w", err)
	}
	path := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to write spool file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to write spool file: %w", err)
	}

	slog.Debug("Spooled print job",
		"job", jobID,
		"backend", s.backend.Name(),
		"slots", len(page.Filled()),
		"position", page.Position)

	results := make(chan service.PrintResult, 1)
	s.wg.Add(1)
	go s.run(ctx, jobID, path, results)
	return results, nil
}

func (s *Spooler) run(ctx context.Context, jobID, path string, results chan<- service.PrintResult) {
	defer s.wg.Done()
	defer close(results)

	ctx, cancel := context.WithTimeout(ctx, s.opts.TeardownDelay)
	defer cancel()
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			slog.Warn("Failed to remove spool file", "path", path, "error", err)
		}
	}()

	res := service.PrintResult{JobID: jobID}

	select {
	case <-ctx.Done():
		res.Err = ctx.Err()
		results <- res
		return
	case <-time.After(s.opts.SettleDelay):
	}

	res.Err = common.WithRetry(ctx, func() error {
		dest, err := s.backend.Print(ctx, path)
		if err == nil {
			res.Path = dest
		}
		return err
	}, s.opts.Retry)

	if res.Err != nil {
		slog.Warn("Print job failed", "job", jobID, "error", res.Err)
	} else {
		slog.Info("Print job sent", "job", jobID, "backend", s.backend.Name(), "dest", res.Path)
	}
	results <- res
}

// Wait blocks until every submitted job has finished.
func (s *Spooler) Wait() {
	s.wg.Wait()
}
