// Package model defines the core data types for paddy settlements.
package model

// Sign marks an adjustment as a credit or a deduction.
type Sign string

// Adjustment signs.
const (
	SignPlus  Sign = "+"
	SignMinus Sign = "-"
)

// ParseSign maps anything other than "+" to a deduction.
func ParseSign(s string) Sign {
	if s == string(SignPlus) {
		return SignPlus
	}
	return SignMinus
}

// DefaultTarePerBag is the tare seeded into a new transaction, in kg.
const DefaultTarePerBag = "2"

// BatchEntry is one truckload captured from the live weight/bags fields.
type BatchEntry struct {
	ID     string `json:"id"`
	Weight string `json:"weightKg"`
	Bags   string `json:"bagsCount"`
}

// AdjustmentEntry is a signed ledger line applied to the final figure.
type AdjustmentEntry struct {
	ID     string `json:"id"`
	Sign   Sign   `json:"sign"`
	Amount string `json:"amount"`
	Label  string `json:"label"`
	Note   string `json:"note,omitempty"`
}

// TransactionInput is the live, user-edited form of one purchase.
// Numeric fields hold the text as entered and are normalized on use.
type TransactionInput struct {
	CustomerName   string            `json:"customerName"`
	Date           string            `json:"date"`
	TotalWeight    string            `json:"totalWeight"`
	Bags           string            `json:"bags"`
	RatePerQuintal string            `json:"ratePerQuintal"`
	LabourPerBag   string            `json:"labourPerBag"`
	TarePerBag     string            `json:"tarePerBag"`
	Batches        []BatchEntry      `json:"batches"`
	Adjustments    []AdjustmentEntry `json:"adjustments"`
}

// NewTransactionInput returns an empty input dated today with the default tare.
func NewTransactionInput(date string) TransactionInput {
	return TransactionInput{
		Date:        date,
		TarePerBag:  DefaultTarePerBag,
		Batches:     []BatchEntry{},
		Adjustments: []AdjustmentEntry{},
	}
}

// Clone returns a deep copy; the batch and adjustment slices are never shared.
func (t TransactionInput) Clone() TransactionInput {
	out := t
	out.Batches = make([]BatchEntry, len(t.Batches))
	copy(out.Batches, t.Batches)
	out.Adjustments = make([]AdjustmentEntry, len(t.Adjustments))
	copy(out.Adjustments, t.Adjustments)
	return out
}
