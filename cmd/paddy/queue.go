package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/paddy-ledger/internal/cli"
	"github.com/Veraticus/paddy-ledger/internal/common"
	"github.com/Veraticus/paddy-ledger/internal/config"
	"github.com/Veraticus/paddy-ledger/internal/model"
	"github.com/Veraticus/paddy-ledger/internal/queue"
	"github.com/Veraticus/paddy-ledger/internal/render"
	"github.com/Veraticus/paddy-ledger/internal/session"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// queueEntry is the listing form of a queued snapshot.
type queueEntry struct {
	ID        int64   `json:"id" yaml:"id"`
	Customer  string  `json:"customer" yaml:"customer"`
	Date      string  `json:"date" yaml:"date"`
	Bags      int     `json:"bags" yaml:"bags"`
	NetWeight float64 `json:"netWeightKg" yaml:"netWeightKg"`
	Final     string  `json:"final" yaml:"final"`
}

func newQueueEntry(s model.Snapshot) queueEntry {
	name := s.Input.CustomerName
	if strings.TrimSpace(name) == "" {
		name = render.PlaceholderName
	}
	return queueEntry{
		ID:        s.ID,
		Customer:  name,
		Date:      s.Input.Date,
		Bags:      s.Result.B,
		NetWeight: s.Result.NetWeight,
		Final:     render.Money(s.Result.Final),
	}
}

func queueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Manage the print queue",
		Long:  fmt.Sprintf("List, reorder and remove queued ledgers. The queue holds at most %d.", queue.Capacity),
	}

	cmd.AddCommand(queueListCmd())
	cmd.AddCommand(queueRemoveCmd())
	cmd.AddCommand(queueMoveCmd())
	cmd.AddCommand(queueClearCmd())
	return cmd
}

func queueListCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List queued ledgers in print order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd.Context(), func(ctrl *session.Controller, _ config.Settings) error {
				snaps := ctrl.Snapshots()
				entries := make([]queueEntry, len(snaps))
				for i, s := range snaps {
					entries[i] = newQueueEntry(s)
				}
				return writeQueue(cmd, entries, output)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format (table, json, yaml)")
	return cmd
}

func writeQueue(cmd *cobra.Command, entries []queueEntry, output string) error {
	out := cmd.OutOrStdout()

	switch output {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("failed to encode queue: %w", err)
		}
		return enc.Close()
	case "table":
	default:
		return fmt.Errorf("unknown output format %q", output)
	}

	if len(entries) == 0 {
		writeln(out, cli.InfoStyle.Render("Print queue is empty. A print uses the live ledger."))
		return nil
	}

	writeln(out, cli.FormatTitle(fmt.Sprintf("Print queue %d/%d", len(entries), queue.Capacity)))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer func() {
		if flushErr := w.Flush(); flushErr != nil {
			slog.Error("failed to flush table writer", "error", flushErr)
		}
	}()

	if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		cli.HeaderStyle.Render("#"),
		cli.HeaderStyle.Render("ID"),
		cli.HeaderStyle.Render("Customer"),
		cli.HeaderStyle.Render("Date"),
		cli.HeaderStyle.Render("Net kg"),
		cli.HeaderStyle.Render("Final")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, e := range entries {
		if _, err := fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\n",
			i+1, e.ID, e.Customer, e.Date, render.Number(e.NetWeight), e.Final); err != nil {
			return fmt.Errorf("failed to write queue row: %w", err)
		}
	}
	return nil
}

func parseSnapshotID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(raw, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid ledger id %q", raw)
	}
	return id, nil
}

func queueRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove a queued ledger",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSnapshotID(args[0])
			if err != nil {
				return err
			}
			return withSession(cmd.Context(), func(ctrl *session.Controller, _ config.Settings) error {
				if !ctrl.RemoveSnapshot(cmd.Context(), id) {
					return fmt.Errorf("%w: queued ledger #%d", common.ErrNotFound, id)
				}
				writeln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Removed #%d", id)))
				return nil
			})
		},
	}
}

func queueMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "move ID up|down",
		Short:     "Move a queued ledger one place earlier or later",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSnapshotID(args[0])
			if err != nil {
				return err
			}
			var delta int
			switch args[1] {
			case "up":
				delta = -1
			case "down":
				delta = 1
			default:
				return fmt.Errorf("direction must be up or down, got %q", args[1])
			}

			return withSession(cmd.Context(), func(ctrl *session.Controller, _ config.Settings) error {
				index := -1
				for i, s := range ctrl.Snapshots() {
					if s.ID == id {
						index = i
						break
					}
				}
				if index < 0 {
					return fmt.Errorf("%w: queued ledger #%d", common.ErrNotFound, id)
				}
				if !ctrl.MoveSnapshot(cmd.Context(), index, delta) {
					return fmt.Errorf("cannot move #%d %s", id, args[1])
				}
				writeln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Moved #%d %s", id, args[1])))
				return nil
			})
		},
	}
}

func queueClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the print queue, keeping the live ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd.Context(), func(ctrl *session.Controller, _ config.Settings) error {
				n := len(ctrl.Snapshots())
				ctrl.ClearQueue(cmd.Context())
				writeln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Cleared %d queued ledger(s)", n)))
				return nil
			})
		},
	}
}
