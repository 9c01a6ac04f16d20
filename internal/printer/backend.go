package printer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Veraticus/paddy-ledger/internal/common"
)

// Backend delivers an encoded page file to a print target.
type Backend interface {
	Name() string
	// Available reports why the target cannot be used right now, or nil.
	Available() error
	// Print delivers the file at path and returns where it went.
	Print(ctx context.Context, path string) (string, error)
}

// CommandBackend hands files to a print command such as lp.
type CommandBackend struct {
	Command string
	Args    []string
}

// Name implements Backend.
func (b CommandBackend) Name() string { return b.Command }

// Available implements Backend.
func (b CommandBackend) Available() error {
	if strings.TrimSpace(b.Command) == "" {
		return fmt.Errorf("%w: no print command configured", common.ErrPrintUnavailable)
	}
	if _, err := exec.LookPath(b.Command); err != nil {
		return fmt.Errorf("%w: %s: %w", common.ErrPrintUnavailable, b.Command, err)
	}
	return nil
}

// Print implements Backend. A busy spool is reported as retryable.
func (b CommandBackend) Print(ctx context.Context, path string) (string, error) {
	args := append(append([]string{}, b.Args...), path)
	cmd := exec.CommandContext(ctx, b.Command, args...)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(out.String())
		if strings.Contains(strings.ToLower(msg), "busy") {
			return "", fmt.Errorf("%w: %s", common.ErrSpoolBusy, msg)
		}
		return "", common.Permanent(fmt.Errorf("%w: %s: %w: %s", common.ErrPrintFailed, b.Command, err, msg))
	}
	return strings.TrimSpace(out.String()), nil
}

// DirBackend copies page files into a directory, for print-to-file setups
// and machines without a spooler.
type DirBackend struct {
	Dir string
}

// Name implements Backend.
func (b DirBackend) Name() string { return "dir:" + b.Dir }

// Available implements Backend.
func (b DirBackend) Available() error {
	if strings.TrimSpace(b.Dir) == "" {
		return fmt.Errorf("%w: no print directory configured", common.ErrPrintUnavailable)
	}
	if err := os.MkdirAll(b.Dir, 0750); err != nil {
		return fmt.Errorf("%w: %w", common.ErrPrintUnavailable, err)
	}
	info, err := os.Stat(b.Dir)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrPrintUnavailable, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", common.ErrPrintUnavailable, b.Dir)
	}
	return nil
}

// Print implements Backend.
func (b DirBackend) Print(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is our own spool file
	if err != nil {
		return "", common.Permanent(fmt.Errorf("failed to read spool file: %w", err))
	}
	dest := filepath.Join(b.Dir, filepath.Base(path))
	if err := os.WriteFile(dest, data, 0600); err != nil {
		return "", common.Permanent(fmt.Errorf("%w: %w", common.ErrPrintFailed, err))
	}
	return dest, nil
}
