package settlement

import (
	"github.com/Veraticus/paddy-ledger/internal/model"
	"github.com/google/uuid"
)

// DefaultAdjustmentLabel is the label given to a freshly added adjustment.
const DefaultAdjustmentLabel = "Borrow"

// AdjustmentField names an editable column of an adjustment entry.
type AdjustmentField string

// Editable adjustment fields.
const (
	FieldSign   AdjustmentField = "sign"
	FieldAmount AdjustmentField = "amount"
	FieldLabel  AdjustmentField = "label"
	FieldNote   AdjustmentField = "note"
)

// AddAdjustment appends a deduction labelled "Borrow" with an empty amount.
func AddAdjustment(list []model.AdjustmentEntry) ([]model.AdjustmentEntry, string) {
	entry := model.AdjustmentEntry{
		ID:    uuid.NewString(),
		Sign:  model.SignMinus,
		Label: DefaultAdjustmentLabel,
	}

	out := make([]model.AdjustmentEntry, len(list), len(list)+1)
	copy(out, list)
	return append(out, entry), entry.ID
}

// UpdateAdjustment sets one field of the entry with the given id.
// Unknown ids or fields leave the list unchanged.
func UpdateAdjustment(list []model.AdjustmentEntry, id string, field AdjustmentField, value string) []model.AdjustmentEntry {
	out := make([]model.AdjustmentEntry, len(list))
	copy(out, list)

	for i := range out {
		if out[i].ID != id {
			continue
		}
		switch field {
		case FieldSign:
			out[i].Sign = model.ParseSign(value)
		case FieldAmount:
			out[i].Amount = value
		case FieldLabel:
			out[i].Label = value
		case FieldNote:
			out[i].Note = value
		}
		break
	}
	return out
}

// RemoveAdjustment drops the entry with the given id, keeping order.
func RemoveAdjustment(list []model.AdjustmentEntry, id string) []model.AdjustmentEntry {
	out := make([]model.AdjustmentEntry, 0, len(list))
	for _, a := range list {
		if a.ID != id {
			out = append(out, a)
		}
	}
	return out
}

// SignedAmount is the adjustment's contribution to the final figure.
func SignedAmount(a model.AdjustmentEntry) float64 {
	n := Normalize(a.Amount)
	if a.Sign == model.SignPlus {
		return n
	}
	return -n
}
