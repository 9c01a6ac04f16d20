// Package session owns the live transaction, the print queue and the
// persisted state that ties them together across restarts.
package session

import (
	"github.com/Veraticus/paddy-ledger/internal/layout"
	"github.com/Veraticus/paddy-ledger/internal/model"
)

// DateLayout is the format of TransactionInput.Date.
const DateLayout = "2006-01-02"

// State is the persisted session blob.
type State struct {
	TotalWeight    string                  `json:"totalWeight"`
	Bags           string                  `json:"bags"`
	Batches        []model.BatchEntry      `json:"batches"`
	RatePerQuintal string                  `json:"ratePerQuintal"`
	LabourPerBag   string                  `json:"labourPerBag"`
	TarePerBag     string                  `json:"tarePerBag"`
	Adjustments    []model.AdjustmentEntry `json:"adjustments"`
	PrintQueue     []model.Snapshot        `json:"printQueue"`
	CustomerName   string                  `json:"customerName"`
	Date           string                  `json:"date"`
	PrintPosition  layout.Position         `json:"printPosition"`
	IDCounter      int64                   `json:"idCounter"`
}

// Input extracts the live transaction.
func (s State) Input() model.TransactionInput {
	in := model.TransactionInput{
		CustomerName:   s.CustomerName,
		Date:           s.Date,
		TotalWeight:    s.TotalWeight,
		Bags:           s.Bags,
		RatePerQuintal: s.RatePerQuintal,
		LabourPerBag:   s.LabourPerBag,
		TarePerBag:     s.TarePerBag,
		Batches:        s.Batches,
		Adjustments:    s.Adjustments,
	}
	return in.Clone()
}

func newState(in model.TransactionInput, queue []model.Snapshot, pos layout.Position, counter int64) State {
	in = in.Clone()
	if queue == nil {
		queue = []model.Snapshot{}
	}
	return State{
		TotalWeight:    in.TotalWeight,
		Bags:           in.Bags,
		Batches:        in.Batches,
		RatePerQuintal: in.RatePerQuintal,
		LabourPerBag:   in.LabourPerBag,
		TarePerBag:     in.TarePerBag,
		Adjustments:    in.Adjustments,
		PrintQueue:     queue,
		CustomerName:   in.CustomerName,
		Date:           in.Date,
		PrintPosition:  pos,
		IDCounter:      counter,
	}
}
