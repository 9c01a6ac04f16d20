package settlement

import (
	"math"

	"github.com/Veraticus/paddy-ledger/internal/model"
)

// QuintalKg is the pricing unit for the rate.
const QuintalKg = 100

// Compute derives the settlement figures for an input. It is pure: the same
// input always yields the same result and nothing is retained between calls.
func Compute(in model.TransactionInput) model.SettlementResult {
	weight, bags := Aggregate(in)
	b := int(math.Max(0, math.Floor(bags)))

	tare := Normalize(in.TarePerBag)
	totalTare := float64(b) * tare
	net := math.Max(0, weight-totalTare)

	amount := (net / QuintalKg) * Normalize(in.RatePerQuintal)
	labour := float64(b) * Normalize(in.LabourPerBag)

	var adj float64
	for _, a := range in.Adjustments {
		adj += SignedAmount(a)
	}

	return model.SettlementResult{
		W:            weight,
		B:            b,
		TotalTare:    totalTare,
		NetWeight:    net,
		Amount:       amount,
		LabourCharge: labour,
		AdjSigned:    adj,
		Final:        amount - labour + adj,
	}
}
