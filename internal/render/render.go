package render

import (
	"fmt"
	"strings"

	"github.com/Veraticus/paddy-ledger/internal/model"
	"github.com/Veraticus/paddy-ledger/internal/settlement"
)

// PlaceholderName is shown in the header when no customer is entered.
const PlaceholderName = "Customer Name"

// Render produces the ledger lines for a transaction and its computed result.
// The order is fixed:
//
//	header, batches, sep, weight, tare, sep, net x rate, sep, amount, labour,
//	sep, [subtotal, adjustments, sep], final, final, sep, terminator
func Render(in model.TransactionInput, r model.SettlementResult) Document {
	lines := make([]Line, 0, 16+len(in.Batches)+len(in.Adjustments))
	sep := Line{Role: RoleSeparator}

	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		name = PlaceholderName
	}
	lines = append(lines, Line{Role: RoleHeader, Left: name, Right: in.Date})

	for i, b := range in.Batches {
		lines = append(lines, Line{
			Role: RoleBatch,
			Left: fmt.Sprintf("#%d  %s kg - %s bags", i+1,
				Fixed2(settlement.Normalize(b.Weight)),
				Number(settlement.FloorCount(b.Bags))),
		})
	}
	lines = append(lines, sep)

	tare := settlement.Normalize(in.TarePerBag)
	lines = append(lines,
		Line{Role: RoleWeightSummary, Left: fmt.Sprintf("%s kg - %d bags", Fixed2(r.W), r.B)},
		Line{Role: RoleTare, Left: fmt.Sprintf("%s - %s KP (%d × %s)", Number(r.TotalTare), Number(tare), r.B, Number(tare))},
		sep,
		Line{Role: RoleNetTimesRate, Left: fmt.Sprintf("%s × %s Rate", Fixed2(r.NetWeight), Number(settlement.Normalize(in.RatePerQuintal)))},
		sep,
		Line{Role: RoleAmount, Left: Money(r.Amount)},
		Line{Role: RoleLabour, Left: fmt.Sprintf("%s - Labour charge (%d × %s)", Money(r.LabourCharge), r.B, Number(settlement.Normalize(in.LabourPerBag)))},
		sep,
	)

	if len(in.Adjustments) > 0 {
		lines = append(lines, adjustmentLines(in.Adjustments, r)...)
		lines = append(lines, sep)
	}

	final := Line{Role: RoleFinal, Left: Money(r.Final)}
	lines = append(lines, final, final, sep, Line{Role: RoleTerminator, Left: Terminator})

	return Document{Lines: lines}
}

// adjustmentLines renders the running subtotal and the ledger entries.
// The first entry's label sits beside the subtotal, so its own row carries
// only the note and amount; later rows show their label themselves.
func adjustmentLines(adjs []model.AdjustmentEntry, r model.SettlementResult) []Line {
	out := make([]Line, 0, len(adjs)+1)

	first := adjs[0]
	out = append(out, Line{
		Role:  RoleRunningSubtotal,
		Left:  Money(r.AfterLabour()),
		Right: signMark(first.Sign) + " " + first.Label,
	})

	for i, a := range adjs {
		amount := SignedMoney(signMark(a.Sign), settlement.Normalize(a.Amount))
		if i == 0 {
			out = append(out, Line{Role: RoleAdjustment, Left: a.Note, Right: amount})
			continue
		}

		left := signMark(a.Sign) + " " + a.Label
		if note := strings.TrimSpace(a.Note); note != "" {
			left += " (" + note + ")"
		}
		out = append(out, Line{Role: RoleAdjustment, Left: left, Right: amount})
	}
	return out
}

func signMark(s model.Sign) string {
	if s == model.SignPlus {
		return "+"
	}
	return "-"
}
