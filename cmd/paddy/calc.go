package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/paddy-ledger/internal/cli"
	"github.com/Veraticus/paddy-ledger/internal/config"
	"github.com/Veraticus/paddy-ledger/internal/model"
	"github.com/Veraticus/paddy-ledger/internal/render"
	"github.com/Veraticus/paddy-ledger/internal/session"
	"github.com/Veraticus/paddy-ledger/internal/settlement"
	"github.com/spf13/cobra"
)

var errQueueFull = errors.New("print queue is full")

type calcOptions struct {
	weight      string
	bags        string
	rate        string
	labour      string
	tare        string
	name        string
	date        string
	output      string
	batches     []string
	adjustments []string
	width       int
	enqueue     bool
}

func calcCmd() *cobra.Command {
	var opts calcOptions

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute a settlement from flags",
		Long: `Compute a settlement without opening the editor and print its ledger.

Rate, labour and tare fall back to the configured defaults. With --enqueue
the ledger is also added to the print queue of the saved session; the live
form of the session is left alone.`,
		Example: `  paddy calc --weight 1000 --bags 10 --rate 1500 --labour 20
  paddy calc --batch 500:5 --batch 520:5 --rate 1500 --adj "-500:Borrow:advance"
  paddy calc --name Ravi --weight 1000 --bags 10 --rate 1500 --enqueue`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCalc(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.weight, "weight", "", "total weight in kg")
	cmd.Flags().StringVar(&opts.bags, "bags", "", "bag count")
	cmd.Flags().StringVar(&opts.rate, "rate", "", "rate per quintal (default from config)")
	cmd.Flags().StringVar(&opts.labour, "labour", "", "labour charge per bag (default from config)")
	cmd.Flags().StringVar(&opts.tare, "tare", "", "tare per bag in kg (default from config)")
	cmd.Flags().StringVar(&opts.name, "name", "", "customer name")
	cmd.Flags().StringVar(&opts.date, "date", "", "ledger date, YYYY-MM-DD (default today)")
	cmd.Flags().StringArrayVar(&opts.batches, "batch", nil, "batch as WEIGHT:BAGS (repeatable)")
	cmd.Flags().StringArrayVar(&opts.adjustments, "adj", nil, "adjustment as SIGN AMOUNT[:LABEL[:NOTE]], e.g. -500:Borrow (repeatable)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "output format (text, json)")
	cmd.Flags().IntVar(&opts.width, "width", render.DefaultWidth, "ledger width in columns")
	cmd.Flags().BoolVar(&opts.enqueue, "enqueue", false, "add the ledger to the print queue")

	return cmd
}

func runCalc(cmd *cobra.Command, opts calcOptions) error {
	if opts.output != "text" && opts.output != "json" {
		return fmt.Errorf("unknown output format %q", opts.output)
	}

	s, err := loadSettings()
	if err != nil {
		return err
	}

	in, err := buildInput(opts, s.Defaults, time.Now())
	if err != nil {
		return err
	}
	result := settlement.Compute(in)
	doc := render.Render(in, result)

	out := cmd.OutOrStdout()
	switch opts.output {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		payload := struct {
			Input    model.TransactionInput `json:"input"`
			Result   model.SettlementResult `json:"computed"`
			Document render.Document        `json:"document"`
		}{in, result, doc}
		if err := enc.Encode(payload); err != nil {
			return fmt.Errorf("failed to encode settlement: %w", err)
		}
	default:
		writeln(out, render.PlainPresenter{Width: opts.width}.Present(doc))
	}

	if !opts.enqueue {
		return nil
	}

	return withSession(cmd.Context(), func(ctrl *session.Controller, _ config.Settings) error {
		id := ctrl.EnqueueInput(cmd.Context(), in)
		if id == 0 {
			return fmt.Errorf("%w: remove or print queued ledgers first", errQueueFull)
		}
		writeln(cmd.ErrOrStderr(), cli.FormatSuccess(fmt.Sprintf("Queued #%d", id)))
		return nil
	})
}

// buildInput assembles a transaction from calc flags.
func buildInput(opts calcOptions, defaults config.Defaults, now time.Time) (model.TransactionInput, error) {
	date := opts.date
	if date == "" {
		date = now.Format(session.DateLayout)
	}

	in := model.NewTransactionInput(date)
	in.CustomerName = opts.name
	in.TotalWeight = opts.weight
	in.Bags = opts.bags
	in.RatePerQuintal = firstNonEmpty(opts.rate, defaults.RatePerQuintal)
	in.LabourPerBag = firstNonEmpty(opts.labour, defaults.LabourPerBag)
	in.TarePerBag = firstNonEmpty(opts.tare, defaults.TarePerBag, model.DefaultTarePerBag)

	for _, raw := range opts.batches {
		weight, bags, err := parseBatch(raw)
		if err != nil {
			return model.TransactionInput{}, err
		}
		batches, ok := settlement.AddBatch(weight, bags, in.Batches)
		if !ok {
			return model.TransactionInput{}, fmt.Errorf("batch %q has neither weight nor bags", raw)
		}
		in.Batches = batches
	}

	for _, raw := range opts.adjustments {
		adj, err := parseAdjustment(raw)
		if err != nil {
			return model.TransactionInput{}, err
		}
		var id string
		in.Adjustments, id = settlement.AddAdjustment(in.Adjustments)
		in.Adjustments = settlement.UpdateAdjustment(in.Adjustments, id, settlement.FieldSign, string(adj.Sign))
		in.Adjustments = settlement.UpdateAdjustment(in.Adjustments, id, settlement.FieldAmount, adj.Amount)
		if adj.Label != "" {
			in.Adjustments = settlement.UpdateAdjustment(in.Adjustments, id, settlement.FieldLabel, adj.Label)
		}
		in.Adjustments = settlement.UpdateAdjustment(in.Adjustments, id, settlement.FieldNote, adj.Note)
	}

	return in, nil
}

// parseBatch splits WEIGHT:BAGS. Either side may be empty.
func parseBatch(raw string) (string, string, error) {
	weight, bags, ok := strings.Cut(raw, ":")
	if !ok {
		return "", "", fmt.Errorf("batch %q: expected WEIGHT:BAGS", raw)
	}
	return strings.TrimSpace(weight), strings.TrimSpace(bags), nil
}

// parseAdjustment reads SIGN AMOUNT[:LABEL[:NOTE]].
func parseAdjustment(raw string) (model.AdjustmentEntry, error) {
	s := strings.TrimSpace(raw)
	if s == "" || (s[0] != '+' && s[0] != '-') {
		return model.AdjustmentEntry{}, fmt.Errorf("adjustment %q: must start with + or -", raw)
	}

	parts := strings.SplitN(strings.TrimSpace(s[1:]), ":", 3)
	adj := model.AdjustmentEntry{
		Sign:   model.ParseSign(s[:1]),
		Amount: strings.TrimSpace(parts[0]),
	}
	if adj.Amount == "" {
		return model.AdjustmentEntry{}, fmt.Errorf("adjustment %q: missing amount", raw)
	}
	if len(parts) > 1 {
		adj.Label = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		adj.Note = strings.TrimSpace(parts[2])
	}
	return adj, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
