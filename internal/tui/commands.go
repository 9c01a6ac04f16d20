package tui

import (
	"context"

	"github.com/Veraticus/paddy-ledger/internal/layout"
	"github.com/Veraticus/paddy-ledger/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

// printPage submits a composed page. The page is built before the command
// runs so later edits cannot leak into it.
func printPage(ctx context.Context, p service.Printer, page layout.Page) tea.Cmd {
	return func() tea.Msg {
		results, err := p.Print(ctx, page)
		if err != nil {
			return printFailedMsg{err: err}
		}
		return printStartedMsg{results: results, slots: len(page.Filled())}
	}
}

// waitForPrint delivers the job result once the spooler finishes.
func waitForPrint(results <-chan service.PrintResult) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-results
		if !ok {
			return nil
		}
		return printDoneMsg{result: res}
	}
}
