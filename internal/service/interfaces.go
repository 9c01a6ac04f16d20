// Package service defines the interfaces shared between application layers.
package service

import (
	"context"

	"github.com/Veraticus/paddy-ledger/internal/layout"
)

// StateStore persists opaque session blobs under a string key.
type StateStore interface {
	// Get returns nil, nil when no value is stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, blob []byte) error
	// Remove succeeds when key is already absent.
	Remove(ctx context.Context, key string) error
}

// Storage is a StateStore with a managed lifecycle.
type Storage interface {
	StateStore
	Migrate(ctx context.Context) error
	Close() error
}

// PrintResult reports the outcome of one print job.
type PrintResult struct {
	JobID string
	Path  string
	Err   error
}

// Printer accepts composed pages. Print returns once the job is accepted;
// the channel yields exactly one result and is then closed.
type Printer interface {
	Print(ctx context.Context, page layout.Page) (<-chan PrintResult, error)
}
