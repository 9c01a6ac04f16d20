package settlement

import (
	"testing"

	"github.com/Veraticus/paddy-ledger/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAdjustment_Defaults(t *testing.T) {
	list, id := AddAdjustment(nil)

	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	assert.Equal(t, model.SignMinus, list[0].Sign)
	assert.Equal(t, "Borrow", list[0].Label)
	assert.Empty(t, list[0].Amount)
	assert.Empty(t, list[0].Note)
}

func TestAddAdjustment_PreservesOrder(t *testing.T) {
	list, first := AddAdjustment(nil)
	list, second := AddAdjustment(list)
	list, third := AddAdjustment(list)

	require.Len(t, list, 3)
	assert.Equal(t, []string{first, second, third}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestUpdateAdjustment(t *testing.T) {
	list := []model.AdjustmentEntry{
		{ID: "a1", Sign: model.SignMinus, Label: "Borrow"},
		{ID: "a2", Sign: model.SignMinus, Label: "Borrow"},
	}

	tests := []struct {
		name  string
		id    string
		field AdjustmentField
		value string
		check func(t *testing.T, out []model.AdjustmentEntry)
	}{
		{
			name: "sign plus", id: "a2", field: FieldSign, value: "+",
			check: func(t *testing.T, out []model.AdjustmentEntry) {
				assert.Equal(t, model.SignPlus, out[1].Sign)
				assert.Equal(t, model.SignMinus, out[0].Sign)
			},
		},
		{
			name: "garbage sign becomes minus", id: "a1", field: FieldSign, value: "x",
			check: func(t *testing.T, out []model.AdjustmentEntry) {
				assert.Equal(t, model.SignMinus, out[0].Sign)
			},
		},
		{
			name: "amount", id: "a1", field: FieldAmount, value: "500",
			check: func(t *testing.T, out []model.AdjustmentEntry) {
				assert.Equal(t, "500", out[0].Amount)
			},
		},
		{
			name: "label", id: "a1", field: FieldLabel, value: "Advance",
			check: func(t *testing.T, out []model.AdjustmentEntry) {
				assert.Equal(t, "Advance", out[0].Label)
			},
		},
		{
			name: "note", id: "a2", field: FieldNote, value: "seed loan",
			check: func(t *testing.T, out []model.AdjustmentEntry) {
				assert.Equal(t, "seed loan", out[1].Note)
			},
		},
		{
			name: "unknown id", id: "zz", field: FieldAmount, value: "1",
			check: func(t *testing.T, out []model.AdjustmentEntry) {
				assert.Equal(t, list, out)
			},
		},
		{
			name: "unknown field", id: "a1", field: "colour", value: "red",
			check: func(t *testing.T, out []model.AdjustmentEntry) {
				assert.Equal(t, list, out)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := UpdateAdjustment(list, tt.id, tt.field, tt.value)
			tt.check(t, out)
			assert.Empty(t, list[0].Amount, "input list must not be mutated")
		})
	}
}

func TestRemoveAdjustment(t *testing.T) {
	list := []model.AdjustmentEntry{{ID: "a1"}, {ID: "a2"}, {ID: "a3"}}

	out := RemoveAdjustment(list, "a1")
	assert.Equal(t, []model.AdjustmentEntry{{ID: "a2"}, {ID: "a3"}}, out)
	assert.Len(t, RemoveAdjustment(list, "nope"), 3)
}

func TestSignedAmount(t *testing.T) {
	assert.Equal(t, 100.0, SignedAmount(model.AdjustmentEntry{Sign: model.SignPlus, Amount: "100"}))
	assert.Equal(t, -500.0, SignedAmount(model.AdjustmentEntry{Sign: model.SignMinus, Amount: "500"}))
	assert.Equal(t, 0.0, SignedAmount(model.AdjustmentEntry{Sign: model.SignMinus, Amount: "abc"}))
}
