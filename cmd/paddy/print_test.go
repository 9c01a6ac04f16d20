package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/paddy-ledger/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestPrintCommand_DryRun(t *testing.T) {
	setupTestConfig(t)
	enqueueCustomers(t, "Ravi", "Meena")

	out, err := execute(t, printCmd(), "", "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, out, "Ravi")
	assert.Contains(t, out, "Meena")
	assert.Contains(t, out, render.Terminator)
	assert.Contains(t, out, "Dry run: 2 ledger(s)")
}

func TestPrintCommand_DryRunLiveLedger(t *testing.T) {
	setupTestConfig(t)

	out, err := execute(t, printCmd(), "", "--dry-run", "--position", "full")
	require.NoError(t, err)

	assert.Contains(t, out, render.PlaceholderName)
}

func TestPrintCommand_InvalidPosition(t *testing.T) {
	setupTestConfig(t)

	_, err := execute(t, printCmd(), "", "--dry-run", "--position", "middle")
	assert.Error(t, err)
}

func TestPrintCommand_DirBackend(t *testing.T) {
	dir := setupTestConfig(t)
	enqueueCustomers(t, "Ravi")

	out, err := execute(t, printCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "Printed 1 ledger(s)")

	files, err := filepath.Glob(filepath.Join(dir, "prints", "*.txt"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "Ravi")
}

func TestExportCommand(t *testing.T) {
	dir := setupTestConfig(t)
	enqueueCustomers(t, "Ravi", "Meena")
	path := filepath.Join(dir, "page.xlsx")

	out, err := execute(t, exportCmd(), "", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 ledger(s)")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.Equal(t, []string{"Ledger"}, f.GetSheetList())
}

func TestExportCommand_RequiresOut(t *testing.T) {
	setupTestConfig(t)

	_, err := execute(t, exportCmd(), "")
	assert.Error(t, err)
}
