package main

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Veraticus/paddy-ledger/internal/config"
	"github.com/Veraticus/paddy-ledger/internal/model"
	"github.com/Veraticus/paddy-ledger/internal/render"
	"github.com/Veraticus/paddy-ledger/internal/settlement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAdjustment(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    model.AdjustmentEntry
		wantErr bool
	}{
		{
			name: "amount only",
			raw:  "-500",
			want: model.AdjustmentEntry{Sign: model.SignMinus, Amount: "500"},
		},
		{
			name: "space after sign",
			raw:  "+ 250",
			want: model.AdjustmentEntry{Sign: model.SignPlus, Amount: "250"},
		},
		{
			name: "label and note",
			raw:  "-1,000:Advance:paid in cash",
			want: model.AdjustmentEntry{Sign: model.SignMinus, Amount: "1,000", Label: "Advance", Note: "paid in cash"},
		},
		{
			name: "note keeps colons",
			raw:  "+10:Bonus:a:b",
			want: model.AdjustmentEntry{Sign: model.SignPlus, Amount: "10", Label: "Bonus", Note: "a:b"},
		},
		{name: "no sign", raw: "500", wantErr: true},
		{name: "no amount", raw: "-:Borrow", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAdjustment(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBatch(t *testing.T) {
	w, b, err := parseBatch("500:5")
	require.NoError(t, err)
	assert.Equal(t, "500", w)
	assert.Equal(t, "5", b)

	w, b, err = parseBatch(" 480 : ")
	require.NoError(t, err)
	assert.Equal(t, "480", w)
	assert.Empty(t, b)

	_, _, err = parseBatch("500")
	assert.Error(t, err)
}

func TestBuildInput(t *testing.T) {
	now := time.Date(2024, 11, 2, 9, 0, 0, 0, time.UTC)
	defaults := config.Defaults{TarePerBag: "2", RatePerQuintal: "1500", LabourPerBag: "20"}

	t.Run("defaults fill missing fields", func(t *testing.T) {
		in, err := buildInput(calcOptions{weight: "1000", bags: "10"}, defaults, now)
		require.NoError(t, err)

		assert.Equal(t, "2024-11-02", in.Date)
		assert.Equal(t, "1500", in.RatePerQuintal)
		assert.Equal(t, "20", in.LabourPerBag)
		assert.Equal(t, "2", in.TarePerBag)
	})

	t.Run("flags win over defaults", func(t *testing.T) {
		in, err := buildInput(calcOptions{rate: "1600", tare: "1.5", date: "2024-01-05"}, defaults, now)
		require.NoError(t, err)

		assert.Equal(t, "1600", in.RatePerQuintal)
		assert.Equal(t, "1.5", in.TarePerBag)
		assert.Equal(t, "2024-01-05", in.Date)
	})

	t.Run("batches and adjustments", func(t *testing.T) {
		opts := calcOptions{
			batches:     []string{"500:5", "520:5"},
			adjustments: []string{"-500", "+100:Bonus:festival"},
		}
		in, err := buildInput(opts, defaults, now)
		require.NoError(t, err)

		require.Len(t, in.Batches, 2)
		assert.Equal(t, "520", in.Batches[1].Weight)

		require.Len(t, in.Adjustments, 2)
		assert.Equal(t, settlement.DefaultAdjustmentLabel, in.Adjustments[0].Label)
		assert.Equal(t, model.SignMinus, in.Adjustments[0].Sign)
		assert.Equal(t, "Bonus", in.Adjustments[1].Label)
		assert.Equal(t, "festival", in.Adjustments[1].Note)
		assert.Equal(t, model.SignPlus, in.Adjustments[1].Sign)
	})

	t.Run("empty batch rejected", func(t *testing.T) {
		_, err := buildInput(calcOptions{batches: []string{":"}}, defaults, now)
		assert.Error(t, err)
	})

	t.Run("bad adjustment rejected", func(t *testing.T) {
		_, err := buildInput(calcOptions{adjustments: []string{"500"}}, defaults, now)
		assert.Error(t, err)
	})
}

func TestCalcCommand_Text(t *testing.T) {
	setupTestConfig(t)

	out, err := execute(t, calcCmd(), "",
		"--name", "Ravi", "--date", "2024-11-02",
		"--weight", "1000", "--bags", "10", "--rate", "1500", "--labour", "20")
	require.NoError(t, err)

	in := model.NewTransactionInput("2024-11-02")
	in.TotalWeight, in.Bags, in.RatePerQuintal, in.LabourPerBag = "1000", "10", "1500", "20"
	final := render.Money(settlement.Compute(in).Final)

	assert.Contains(t, out, "Ravi")
	assert.Contains(t, out, "2024-11-02")
	assert.Contains(t, out, final)
	assert.Contains(t, out, render.Terminator)
}

func TestCalcCommand_JSON(t *testing.T) {
	setupTestConfig(t)

	out, err := execute(t, calcCmd(), "",
		"--weight", "1000", "--bags", "10", "--rate", "1500", "-o", "json")
	require.NoError(t, err)

	var payload struct {
		Input    model.TransactionInput `json:"input"`
		Result   model.SettlementResult `json:"computed"`
		Document render.Document        `json:"document"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))

	assert.Equal(t, settlement.Compute(payload.Input), payload.Result)
	assert.NotEmpty(t, payload.Document.Lines)
}

func TestCalcCommand_UnknownOutput(t *testing.T) {
	setupTestConfig(t)

	_, err := execute(t, calcCmd(), "", "-o", "xml")
	assert.Error(t, err)
}

func TestCalcCommand_Enqueue(t *testing.T) {
	setupTestConfig(t)

	for i := 0; i < 4; i++ {
		_, err := execute(t, calcCmd(), "", "--weight", "1000", "--enqueue")
		require.NoError(t, err)
	}

	_, err := execute(t, calcCmd(), "", "--weight", "1000", "--enqueue")
	require.ErrorIs(t, err, errQueueFull)
}
