package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/paddy-ledger/internal/cli"
	"github.com/Veraticus/paddy-ledger/internal/config"
	"github.com/Veraticus/paddy-ledger/internal/session"
	"github.com/Veraticus/paddy-ledger/internal/sheets"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var (
		outPath  string
		position string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the print page as an xlsx workbook",
		Long: `Write the page a print would produce to an A4 xlsx sheet, one block per
quadrant, with fonts scaled the way the printed page scales them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd.Context(), func(ctrl *session.Controller, s config.Settings) error {
				page, err := composePage(ctrl, s, position)
				if err != nil {
					return err
				}

				writer, err := sheets.NewWriter(sheets.DefaultConfig(), slog.Default())
				if err != nil {
					return err
				}
				if err := writer.Write(cmd.Context(), page, outPath); err != nil {
					return fmt.Errorf("failed to export page: %w", err)
				}

				writeln(cmd.OutOrStdout(), cli.FormatSuccess(
					fmt.Sprintf("Exported %d ledger(s) to %s", len(page.Filled()), outPath)))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output xlsx file")
	cmd.Flags().StringVar(&position, "position", "", "single-ledger position for this export")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
