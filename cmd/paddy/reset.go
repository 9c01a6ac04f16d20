package main

import (
	"github.com/Veraticus/paddy-ledger/internal/cli"
	"github.com/Veraticus/paddy-ledger/internal/config"
	"github.com/Veraticus/paddy-ledger/internal/session"
	"github.com/spf13/cobra"
)

func resetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear the live ledger, the print queue and saved data",
		Long: `Reset discards the live ledger, its batches and adjustments, and every
queued ledger, then starts a fresh session with the configured defaults.

Ledger ids keep counting from where they were and the print position is kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if !force {
				reader := cli.NewNonBlockingReader(cmd.InOrStdin())
				ok, err := reader.Confirm(ctx, out, "Clear the live ledger, the print queue and saved data?")
				if err != nil {
					return err
				}
				if !ok {
					writeln(out, "Reset canceled.")
					return nil
				}
			}

			return withSession(ctx, func(ctrl *session.Controller, _ config.Settings) error {
				ctrl.Reset(ctx)
				writeln(out, cli.FormatSuccess("Session cleared"))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	return cmd
}
