package settlement

import (
	"strings"

	"github.com/Veraticus/paddy-ledger/internal/model"
	"github.com/google/uuid"
)

// AddBatch captures the live weight and bag fields as a new batch entry.
// Nothing is added when both fields are blank; the second return reports
// whether the caller should clear its live fields.
func AddBatch(liveWeight, liveBags string, batches []model.BatchEntry) ([]model.BatchEntry, bool) {
	if strings.TrimSpace(liveWeight) == "" && strings.TrimSpace(liveBags) == "" {
		return batches, false
	}

	out := make([]model.BatchEntry, len(batches), len(batches)+1)
	copy(out, batches)
	out = append(out, model.BatchEntry{
		ID:     uuid.NewString(),
		Weight: liveWeight,
		Bags:   liveBags,
	})
	return out, true
}

// RemoveBatch drops the batch with the given id. Unknown ids are ignored.
func RemoveBatch(batches []model.BatchEntry, id string) []model.BatchEntry {
	out := make([]model.BatchEntry, 0, len(batches))
	for _, b := range batches {
		if b.ID != id {
			out = append(out, b)
		}
	}
	return out
}

// Aggregate sums the live fields with every batch. Each bag count is floored
// on its own before summation, so "2.5" + "2.5" bags is 4, not 5.
func Aggregate(in model.TransactionInput) (weight, bags float64) {
	weight = Normalize(in.TotalWeight)
	bags = FloorCount(in.Bags)

	for _, b := range in.Batches {
		weight += Normalize(b.Weight)
		bags += FloorCount(b.Bags)
	}
	return weight, bags
}
