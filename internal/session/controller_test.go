package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/paddy-ledger/internal/layout"
	"github.com/Veraticus/paddy-ledger/internal/model"
	"github.com/Veraticus/paddy-ledger/internal/render"
	"github.com/Veraticus/paddy-ledger/internal/settlement"
	"github.com/Veraticus/paddy-ledger/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "paddy-calculator:v1"

func testOptions() Options {
	return Options{
		Key:        testKey,
		TarePerBag: "2",
		Position:   layout.TopRight,
		Now: func() time.Time {
			return time.Date(2024, 11, 2, 9, 30, 0, 0, time.UTC)
		},
	}
}

// failingStore rejects every call.
type failingStore struct{ calls int }

var errStoreDown = errors.New("store down")

func (f *failingStore) Get(context.Context, string) ([]byte, error) {
	f.calls++
	return nil, errStoreDown
}

func (f *failingStore) Set(context.Context, string, []byte) error {
	f.calls++
	return errStoreDown
}

func (f *failingStore) Remove(context.Context, string) error {
	f.calls++
	return errStoreDown
}

func fill(ctx context.Context, c *Controller) {
	c.SetField(ctx, FieldCustomerName, "Ravi")
	c.SetField(ctx, FieldTotalWeight, "1000")
	c.SetField(ctx, FieldBags, "10")
	c.SetField(ctx, FieldRate, "1500")
	c.SetField(ctx, FieldLabour, "20")
}

func storedState(t *testing.T, store *storage.MemoryStorage) State {
	t.Helper()
	blob, err := store.Get(context.Background(), testKey)
	require.NoError(t, err)
	require.NotNil(t, blob)

	var st State
	require.NoError(t, json.Unmarshal(blob, &st))
	return st
}

func TestLoad_FreshSession(t *testing.T) {
	c := Load(context.Background(), storage.NewMemoryStorage(), testOptions())

	in := c.Input()
	assert.Equal(t, "2024-11-02", in.Date)
	assert.Equal(t, "2", in.TarePerBag)
	assert.Empty(t, in.Batches)
	assert.Empty(t, c.Snapshots())
	assert.Equal(t, layout.TopRight, c.Position())
}

func TestLoad_SeedsDefaults(t *testing.T) {
	opts := testOptions()
	opts.RatePerQuintal = "2100"
	opts.LabourPerBag = "15"
	opts.Position = "sideways"

	c := Load(context.Background(), storage.NewMemoryStorage(), opts)

	assert.Equal(t, "2100", c.Field(FieldRate))
	assert.Equal(t, "15", c.Field(FieldLabour))
	assert.Equal(t, layout.DefaultPosition, c.Position())
}

func TestController_PersistsEveryMutation(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()
	c := Load(ctx, store, testOptions())

	fill(ctx, c)
	st := storedState(t, store)
	assert.Equal(t, "Ravi", st.CustomerName)
	assert.Equal(t, "1500", st.RatePerQuintal)

	id := c.AddAdjustment(ctx)
	c.UpdateAdjustment(ctx, id, settlement.FieldAmount, "500")
	st = storedState(t, store)
	require.Len(t, st.Adjustments, 1)
	assert.Equal(t, "500", st.Adjustments[0].Amount)

	c.CyclePosition(ctx)
	assert.Equal(t, layout.BottomLeft, storedState(t, store).PrintPosition)
}

func TestController_RestoresSession(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()

	first := Load(ctx, store, testOptions())
	fill(ctx, first)
	snapID := first.Enqueue(ctx)
	require.NotZero(t, snapID)
	first.SetPosition(ctx, layout.Full)

	second := Load(ctx, store, testOptions())
	assert.Equal(t, first.Input(), second.Input())
	assert.Equal(t, layout.Full, second.Position())
	require.Len(t, second.Snapshots(), 1)
	assert.Equal(t, snapID, second.Snapshots()[0].ID)

	// The restored counter continues past the stored id.
	second.SetField(ctx, FieldBags, "12")
	assert.Equal(t, snapID+1, second.Enqueue(ctx))
}

func TestLoad_CorruptBlobStartsFresh(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()
	require.NoError(t, store.Set(ctx, testKey, []byte(`{"bags":`)))

	c := Load(ctx, store, testOptions())
	assert.Empty(t, c.Field(FieldBags))
	assert.Equal(t, "2", c.Field(FieldTare))
}

func TestLoad_PartialBlobKeepsDefaults(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()
	require.NoError(t, store.Set(ctx, testKey, []byte(`{"bags":"7","customerName":"Lakshmi"}`)))

	c := Load(ctx, store, testOptions())
	assert.Equal(t, "7", c.Field(FieldBags))
	assert.Equal(t, "Lakshmi", c.Field(FieldCustomerName))
	assert.Equal(t, "2", c.Field(FieldTare))
	assert.Equal(t, "2024-11-02", c.Field(FieldDate))
	assert.Equal(t, layout.TopRight, c.Position())
}

func TestController_StoreFailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{}
	c := Load(ctx, store, testOptions())

	fill(ctx, c)
	id := c.Enqueue(ctx)
	c.Reset(ctx)

	assert.NotZero(t, id)
	assert.Empty(t, c.Snapshots())
	assert.Greater(t, store.calls, 5)
}

func TestController_Result(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, storage.NewMemoryStorage(), testOptions())
	fill(ctx, c)

	r := c.Result()
	assert.Equal(t, 10, r.B)
	assert.InDelta(t, 980.0, r.NetWeight, 1e-9)
	assert.InDelta(t, 14700.0, r.Amount, 1e-9)
	assert.InDelta(t, 14500.0, r.Final, 1e-9)

	doc := c.Document()
	finals := doc.Find(render.RoleFinal)
	require.Len(t, finals, 2)
	assert.Equal(t, "14,500=00", finals[0].Left)
}

func TestController_AddBatchClearsLiveFields(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, storage.NewMemoryStorage(), testOptions())

	assert.False(t, c.AddBatch(ctx))

	c.SetField(ctx, FieldTotalWeight, "500")
	c.SetField(ctx, FieldBags, "5")
	require.True(t, c.AddBatch(ctx))
	c.SetField(ctx, FieldTotalWeight, "500")
	c.SetField(ctx, FieldBags, "5")
	require.True(t, c.AddBatch(ctx))

	in := c.Input()
	assert.Empty(t, in.TotalWeight)
	assert.Empty(t, in.Bags)
	require.Len(t, in.Batches, 2)

	r := c.Result()
	assert.InDelta(t, 1000.0, r.W, 1e-9)
	assert.Equal(t, 10, r.B)

	c.RemoveBatch(ctx, in.Batches[0].ID)
	assert.Len(t, c.Input().Batches, 1)
}

func TestController_AdjustmentLifecycle(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, storage.NewMemoryStorage(), testOptions())
	fill(ctx, c)

	id := c.AddAdjustment(ctx)
	c.UpdateAdjustment(ctx, id, settlement.FieldAmount, "500")
	c.UpdateAdjustment(ctx, id, settlement.FieldSign, "+")
	assert.InDelta(t, 15000.0, c.Result().Final, 1e-9)

	c.RemoveAdjustment(ctx, id)
	assert.Empty(t, c.Input().Adjustments)
	assert.InDelta(t, 14500.0, c.Result().Final, 1e-9)
}

func TestController_EnqueueDecouplesSnapshot(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, storage.NewMemoryStorage(), testOptions())
	fill(ctx, c)
	adj := c.AddAdjustment(ctx)
	c.UpdateAdjustment(ctx, adj, settlement.FieldAmount, "100")

	id := c.Enqueue(ctx)
	c.UpdateAdjustment(ctx, adj, settlement.FieldAmount, "900")
	c.SetField(ctx, FieldRate, "9999")

	snaps := c.Snapshots()
	require.Len(t, snaps, 1)
	assert.Equal(t, id, snaps[0].ID)
	assert.Equal(t, "100", snaps[0].Input.Adjustments[0].Amount)
	assert.Equal(t, "1500", snaps[0].Input.RatePerQuintal)
}

func TestController_EnqueueWhenFull(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, storage.NewMemoryStorage(), testOptions())
	fill(ctx, c)

	for i := 0; i < 4; i++ {
		require.NotZero(t, c.Enqueue(ctx))
	}
	assert.True(t, c.QueueFull())
	assert.Zero(t, c.Enqueue(ctx))
	assert.Len(t, c.Snapshots(), 4)
}

func TestController_EnqueueInputLeavesLiveForm(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()
	c := Load(ctx, store, testOptions())
	c.SetField(ctx, FieldCustomerName, "Live")

	in := model.NewTransactionInput("2024-11-02")
	in.CustomerName = "Ravi"
	in.TotalWeight = "1000"
	in.Bags = "10"
	in.RatePerQuintal = "1500"

	id := c.EnqueueInput(ctx, in)

	require.Equal(t, int64(1), id)
	assert.Equal(t, "Live", c.Field(FieldCustomerName))
	snaps := c.Snapshots()
	require.Len(t, snaps, 1)
	assert.Equal(t, "Ravi", snaps[0].Input.CustomerName)
	assert.Equal(t, settlement.Compute(in), snaps[0].Result)
	assert.Len(t, storedState(t, store).PrintQueue, 1)
}

func TestController_EditCommitCancel(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, storage.NewMemoryStorage(), testOptions())
	fill(ctx, c)
	id := c.Enqueue(ctx)

	c.SetField(ctx, FieldCustomerName, "Someone else")
	require.True(t, c.Edit(ctx, id))
	assert.Equal(t, "Ravi", c.Field(FieldCustomerName))

	editing, ok := c.Editing()
	require.True(t, ok)
	assert.Equal(t, id, editing)

	c.SetField(ctx, FieldRate, "2000")
	require.True(t, c.Commit(ctx))
	_, ok = c.Editing()
	assert.False(t, ok)

	snap := c.Snapshots()[0]
	assert.Equal(t, "2000", snap.Input.RatePerQuintal)
	assert.InDelta(t, 19400.0, snap.Result.Final, 1e-9)

	// Cancel leaves the snapshot alone.
	require.True(t, c.Edit(ctx, id))
	c.SetField(ctx, FieldRate, "1")
	c.Cancel()
	assert.Equal(t, "2000", c.Snapshots()[0].Input.RatePerQuintal)
	assert.False(t, c.Commit(ctx))
}

func TestController_RemoveEditedSnapshotEndsEdit(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, storage.NewMemoryStorage(), testOptions())
	fill(ctx, c)
	id := c.Enqueue(ctx)

	require.True(t, c.Edit(ctx, id))
	require.True(t, c.RemoveSnapshot(ctx, id))
	_, ok := c.Editing()
	assert.False(t, ok)
	assert.False(t, c.RemoveSnapshot(ctx, id))
}

func TestController_MoveSnapshot(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, storage.NewMemoryStorage(), testOptions())
	fill(ctx, c)
	a := c.Enqueue(ctx)
	b := c.Enqueue(ctx)

	assert.False(t, c.MoveSnapshot(ctx, 0, -1))
	require.True(t, c.MoveSnapshot(ctx, 0, 1))

	snaps := c.Snapshots()
	assert.Equal(t, []int64{b, a}, []int64{snaps[0].ID, snaps[1].ID})
}

func TestController_ResetKeepsCounter(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()
	c := Load(ctx, store, testOptions())
	fill(ctx, c)
	c.SetPosition(ctx, layout.BottomLeft)
	first := c.Enqueue(ctx)
	c.Enqueue(ctx)

	c.Reset(ctx)

	assert.Empty(t, c.Snapshots())
	assert.Empty(t, c.Field(FieldCustomerName))
	assert.Empty(t, c.Field(FieldRate))
	assert.Equal(t, "2", c.Field(FieldTare))
	assert.Equal(t, layout.BottomLeft, c.Position())

	st := storedState(t, store)
	assert.Equal(t, first+1, st.IDCounter)
	assert.Empty(t, st.PrintQueue)

	fill(ctx, c)
	assert.Equal(t, first+2, c.Enqueue(ctx))
}

func TestController_SetPositionRejectsUnknown(t *testing.T) {
	c := Load(context.Background(), storage.NewMemoryStorage(), testOptions())
	assert.False(t, c.SetPosition(context.Background(), "middle"))
	assert.Equal(t, layout.TopRight, c.Position())
}

func TestController_PrintDocuments(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, storage.NewMemoryStorage(), testOptions())
	fill(ctx, c)

	live := c.PrintDocuments()
	require.Len(t, live, 1)
	assert.Equal(t, "Ravi", live[0].Lines[0].Left)

	page := c.ComposePage(layout.A4, layout.Metrics{})
	filled := page.Filled()
	require.Len(t, filled, 1)
	assert.Equal(t, layout.QuadTopRight, filled[0].Quadrant)

	names := []string{"A", "B", "C"}
	for _, n := range names {
		c.SetField(ctx, FieldCustomerName, n)
		c.Enqueue(ctx)
	}
	c.SetField(ctx, FieldCustomerName, "live")

	docs := c.PrintDocuments()
	require.Len(t, docs, 3)
	for i, n := range names {
		assert.Equal(t, n, docs[i].Lines[0].Left)
	}

	page = c.ComposePage(layout.A4, layout.Metrics{})
	var quads []layout.Quadrant
	for _, s := range page.Filled() {
		quads = append(quads, s.Quadrant)
	}
	assert.Equal(t, []layout.Quadrant{layout.QuadTopLeft, layout.QuadTopRight, layout.QuadBottomLeft}, quads)
}

func TestState_JSONKeys(t *testing.T) {
	st := newState(model.NewTransactionInput("2024-11-02"), nil, layout.TopLeft, 3)
	blob, err := json.Marshal(st)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(blob, &raw))
	for _, key := range []string{
		"totalWeight", "bags", "batches", "ratePerQuintal", "labourPerBag", "tarePerBag",
		"adjustments", "printQueue", "customerName", "date", "printPosition", "idCounter",
	} {
		assert.Contains(t, raw, key)
	}
	assert.Len(t, raw, 12)
}
