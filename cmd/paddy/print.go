package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/paddy-ledger/internal/cli"
	"github.com/Veraticus/paddy-ledger/internal/common"
	"github.com/Veraticus/paddy-ledger/internal/config"
	"github.com/Veraticus/paddy-ledger/internal/printer"
	"github.com/Veraticus/paddy-ledger/internal/service"
	"github.com/Veraticus/paddy-ledger/internal/session"
	"github.com/spf13/cobra"
)

func printCmd() *cobra.Command {
	var (
		position string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the queued ledgers, or the live ledger when the queue is empty",
		Long: `Compose one page from the saved session and send it to the printer.

Two to four queued ledgers fill the quadrants in order. A single ledger goes
to the session's print position unless --position overrides it for this
print. --dry-run shows the page as text instead of printing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd.Context(), func(ctrl *session.Controller, s config.Settings) error {
				page, err := composePage(ctrl, s, position)
				if err != nil {
					return err
				}

				if dryRun {
					enc := printer.TextEncoder{Columns: s.Page.TextColumns, Rows: s.Page.TextRows}
					title := fmt.Sprintf("Dry run: %d ledger(s)", len(page.Filled()))
					writeln(cmd.OutOrStdout(), cli.RenderBox(title, enc.Render(page)))
					return nil
				}

				spooler, err := newSpooler(s)
				if err != nil {
					return err
				}

				handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
				ctx := handler.HandleInterrupts(cmd.Context(), "Printing", "The spool file is removed when the job stops.")

				results, err := spooler.Print(ctx, page)
				if err != nil {
					return err
				}
				res := waitForJob(ctx, cmd, results)
				spooler.Wait()

				if res.Err != nil {
					if handler.WasInterrupted() {
						return common.NewUserError("Print interrupted", res.Err)
					}
					return fmt.Errorf("print failed: %w", res.Err)
				}
				writeln(cmd.OutOrStdout(), cli.FormatSuccess(
					fmt.Sprintf("Printed %d ledger(s) to %s", len(page.Filled()), res.Path)))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&position, "position", "", "single-ledger position for this print (top-left, top-right, bottom-left, bottom-right, full)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show the composed page as text instead of printing")
	return cmd
}

// waitForJob spins until the spooler reports the job.
func waitForJob(ctx context.Context, cmd *cobra.Command, results <-chan service.PrintResult) service.PrintResult {
	spinner := cli.NewSpinner(cmd.ErrOrStderr(), "Waiting for printer")
	defer func() {
		if err := spinner.Finish(); err != nil {
			slog.Warn("Failed to finish spinner", "error", err)
		}
	}()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case res, ok := <-results:
			if !ok {
				return service.PrintResult{Err: ctx.Err()}
			}
			return res
		case <-ticker.C:
			if err := spinner.Add(1); err != nil {
				slog.Debug("Failed to update spinner", "error", err)
			}
		}
	}
}
