package main

import (
	"github.com/Veraticus/paddy-ledger/internal/config"
	"github.com/Veraticus/paddy-ledger/internal/session"
	"github.com/Veraticus/paddy-ledger/internal/tui"
	"github.com/Veraticus/paddy-ledger/internal/tui/themes"
	"github.com/spf13/cobra"
)

func sessionCmd() *cobra.Command {
	var themeName string

	cmd := &cobra.Command{
		Use:     "session",
		Aliases: []string{"ui"},
		Short:   "Open the interactive settlement editor",
		Long: `Open the interactive editor. Every edit is saved as you type; the ledger
preview, print queue and totals update live. Press F1 for key bindings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withSession(ctx, func(ctrl *session.Controller, s config.Settings) error {
				spooler, err := newSpooler(s)
				if err != nil {
					return err
				}
				defer spooler.Wait()

				return tui.Run(ctx, ctrl,
					tui.WithPrinter(spooler),
					tui.WithPage(s.Page.Size(), metrics(s)),
					tui.WithTheme(themes.GetTheme(themeName)),
				)
			})
		},
	}

	cmd.Flags().StringVar(&themeName, "theme", "default", "color theme (default, catppuccin-mocha)")
	return cmd
}
