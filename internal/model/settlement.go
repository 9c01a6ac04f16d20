package model

// SettlementResult holds the figures derived from a TransactionInput.
// It is never persisted on its own; snapshots carry a copy for display.
type SettlementResult struct {
	W            float64 `json:"W"`
	B            int     `json:"B"`
	TotalTare    float64 `json:"totalTare"`
	NetWeight    float64 `json:"netWeight"`
	Amount       float64 `json:"amount"`
	LabourCharge float64 `json:"labourCharge"`
	AdjSigned    float64 `json:"adjSigned"`
	Final        float64 `json:"final"`
}

// AfterLabour is the running subtotal shown before the adjustment lines.
func (r SettlementResult) AfterLabour() float64 {
	return r.Amount - r.LabourCharge
}

// Snapshot is a queued copy of a transaction waiting to be printed.
type Snapshot struct {
	ID     int64            `json:"id"`
	Input  TransactionInput `json:"input"`
	Result SettlementResult `json:"computed"`
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		ID:     s.ID,
		Input:  s.Input.Clone(),
		Result: s.Result,
	}
}
