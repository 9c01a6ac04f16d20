package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/paddy-ledger/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// setupTestConfig points the global config at a temporary database and a
// directory print backend.
func setupTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	viper.Set("database.path", filepath.Join(dir, "paddy.db"))
	viper.Set("print.backend", config.BackendDir)
	viper.Set("print.dir", filepath.Join(dir, "prints"))
	viper.Set("print.format", config.FormatText)
	viper.Set("print.settle_delay", time.Duration(0))

	t.Cleanup(func() {
		viper.Reset()
		config.SetDefaults(viper.GetViper())
	})
	return dir
}

// execute runs cmd with args and returns everything it wrote.
func execute(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}
