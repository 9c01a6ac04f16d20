package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Veraticus/paddy-ledger/internal/common"
	"github.com/Veraticus/paddy-ledger/internal/layout"
	"github.com/Veraticus/paddy-ledger/internal/model"
	"github.com/Veraticus/paddy-ledger/internal/queue"
	"github.com/Veraticus/paddy-ledger/internal/render"
	"github.com/Veraticus/paddy-ledger/internal/service"
	"github.com/Veraticus/paddy-ledger/internal/settlement"
)

// Field names an editable scalar of the live transaction.
type Field string

// Editable fields.
const (
	FieldCustomerName Field = "customerName"
	FieldDate         Field = "date"
	FieldTotalWeight  Field = "totalWeight"
	FieldBags         Field = "bags"
	FieldRate         Field = "ratePerQuintal"
	FieldLabour       Field = "labourPerBag"
	FieldTare         Field = "tarePerBag"
)

// Fields lists the scalar fields in form order.
var Fields = []Field{
	FieldCustomerName, FieldDate, FieldTotalWeight, FieldBags,
	FieldRate, FieldLabour, FieldTare,
}

// Options configure a Controller.
type Options struct {
	Key string
	// Seed values for a fresh session.
	TarePerBag     string
	RatePerQuintal string
	LabourPerBag   string
	Position       layout.Position
	Now            func() time.Time
}

// Controller is the single owner of session state. It is not safe for
// concurrent use; callers drive it from one goroutine.
type Controller struct {
	store    service.StateStore
	queue    *queue.Manager
	now      func() time.Time
	opts     Options
	input    model.TransactionInput
	position layout.Position
}

// Load restores the session stored under opts.Key. A missing, unreadable
// or corrupt blob yields a fresh session.
func Load(ctx context.Context, store service.StateStore, opts Options) *Controller {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if _, err := layout.ParsePosition(string(opts.Position)); err != nil {
		opts.Position = layout.DefaultPosition
	}

	c := &Controller{store: store, now: opts.Now, opts: opts}
	st := c.freshState(0)

	blob, err := store.Get(ctx, opts.Key)
	switch {
	case err != nil:
		common.LogWarn(err, "Failed to read session state, starting fresh", common.Fields{"key": opts.Key})
	case blob != nil:
		loaded := st
		if err := json.Unmarshal(blob, &loaded); err != nil {
			common.LogWarn(err, "Discarding corrupt session state", common.Fields{"key": opts.Key})
		} else {
			st = loaded
		}
	}

	c.apply(st)
	return c
}

func (c *Controller) freshState(counter int64) State {
	in := model.NewTransactionInput(c.now().Format(DateLayout))
	if c.opts.TarePerBag != "" {
		in.TarePerBag = c.opts.TarePerBag
	}
	in.RatePerQuintal = c.opts.RatePerQuintal
	in.LabourPerBag = c.opts.LabourPerBag
	return newState(in, nil, c.opts.Position, counter)
}

func (c *Controller) apply(st State) {
	c.input = st.Input()
	if c.input.Batches == nil {
		c.input.Batches = []model.BatchEntry{}
	}
	if c.input.Adjustments == nil {
		c.input.Adjustments = []model.AdjustmentEntry{}
	}
	c.position = st.PrintPosition
	if _, err := layout.ParsePosition(string(c.position)); err != nil {
		c.position = c.opts.Position
	}
	c.queue = queue.NewManager(st.PrintQueue, queue.Counter{Last: st.IDCounter})
}

// State returns the blob that would be persisted now.
func (c *Controller) State() State {
	return newState(c.input, c.queue.Snapshots(), c.position, c.queue.Counter().Last)
}

// save writes the session. Failures are logged and otherwise ignored.
func (c *Controller) save(ctx context.Context) {
	blob, err := json.Marshal(c.State())
	if err != nil {
		common.LogWarn(err, "Failed to encode session state", nil)
		return
	}
	if err := c.store.Set(ctx, c.opts.Key, blob); err != nil {
		common.LogWarn(err, "Failed to save session state", common.Fields{"key": c.opts.Key})
	}
}

// Input returns a copy of the live transaction.
func (c *Controller) Input() model.TransactionInput {
	return c.input.Clone()
}

// Result recomputes the settlement for the live transaction.
func (c *Controller) Result() model.SettlementResult {
	return settlement.Compute(c.input)
}

// Document renders the live transaction.
func (c *Controller) Document() render.Document {
	return render.Render(c.input, c.Result())
}

// Field returns the current text of f.
func (c *Controller) Field(f Field) string {
	switch f {
	case FieldCustomerName:
		return c.input.CustomerName
	case FieldDate:
		return c.input.Date
	case FieldTotalWeight:
		return c.input.TotalWeight
	case FieldBags:
		return c.input.Bags
	case FieldRate:
		return c.input.RatePerQuintal
	case FieldLabour:
		return c.input.LabourPerBag
	case FieldTare:
		return c.input.TarePerBag
	}
	return ""
}

// SetField replaces the text of f. Unknown fields are ignored.
func (c *Controller) SetField(ctx context.Context, f Field, value string) {
	switch f {
	case FieldCustomerName:
		c.input.CustomerName = value
	case FieldDate:
		c.input.Date = value
	case FieldTotalWeight:
		c.input.TotalWeight = value
	case FieldBags:
		c.input.Bags = value
	case FieldRate:
		c.input.RatePerQuintal = value
	case FieldLabour:
		c.input.LabourPerBag = value
	case FieldTare:
		c.input.TarePerBag = value
	default:
		return
	}
	c.save(ctx)
}

// AddBatch captures the live weight and bags as a batch and clears them.
func (c *Controller) AddBatch(ctx context.Context) bool {
	batches, ok := settlement.AddBatch(c.input.TotalWeight, c.input.Bags, c.input.Batches)
	if !ok {
		return false
	}
	c.input.Batches = batches
	c.input.TotalWeight = ""
	c.input.Bags = ""
	c.save(ctx)
	return true
}

// RemoveBatch deletes a batch by id.
func (c *Controller) RemoveBatch(ctx context.Context, id string) {
	c.input.Batches = settlement.RemoveBatch(c.input.Batches, id)
	c.save(ctx)
}

// AddAdjustment appends a default deduction and returns its id.
func (c *Controller) AddAdjustment(ctx context.Context) string {
	list, id := settlement.AddAdjustment(c.input.Adjustments)
	c.input.Adjustments = list
	c.save(ctx)
	return id
}

// UpdateAdjustment sets one field of an adjustment.
func (c *Controller) UpdateAdjustment(ctx context.Context, id string, field settlement.AdjustmentField, value string) {
	c.input.Adjustments = settlement.UpdateAdjustment(c.input.Adjustments, id, field, value)
	c.save(ctx)
}

// RemoveAdjustment deletes an adjustment by id.
func (c *Controller) RemoveAdjustment(ctx context.Context, id string) {
	c.input.Adjustments = settlement.RemoveAdjustment(c.input.Adjustments, id)
	c.save(ctx)
}

// Enqueue snapshots the live transaction. It returns 0 when the queue is full.
func (c *Controller) Enqueue(ctx context.Context) int64 {
	id := c.queue.Enqueue(c.input, c.Result())
	if id != 0 {
		c.save(ctx)
	}
	return id
}

// EnqueueInput snapshots in without touching the live form. It returns 0
// when the queue is full.
func (c *Controller) EnqueueInput(ctx context.Context, in model.TransactionInput) int64 {
	id := c.queue.Enqueue(in, settlement.Compute(in))
	if id != 0 {
		c.save(ctx)
	}
	return id
}

// Edit loads a queued snapshot into the live form.
func (c *Controller) Edit(ctx context.Context, id int64) bool {
	in, ok := c.queue.Edit(id)
	if !ok {
		return false
	}
	c.input = in
	c.save(ctx)
	return true
}

// Commit writes the live form back into the snapshot being edited.
func (c *Controller) Commit(ctx context.Context) bool {
	id, ok := c.queue.Editing()
	if !ok {
		return false
	}
	if !c.queue.Commit(id, c.input, c.Result()) {
		return false
	}
	c.save(ctx)
	return true
}

// Cancel leaves edit mode. Neither the snapshot nor the live form changes.
func (c *Controller) Cancel() {
	c.queue.Cancel()
}

// Editing returns the id of the snapshot being edited, if any.
func (c *Controller) Editing() (int64, bool) {
	return c.queue.Editing()
}

// RemoveSnapshot deletes a queued snapshot.
func (c *Controller) RemoveSnapshot(ctx context.Context, id int64) bool {
	if !c.queue.Remove(id) {
		return false
	}
	c.save(ctx)
	return true
}

// MoveSnapshot swaps the snapshot at index with a neighbour.
func (c *Controller) MoveSnapshot(ctx context.Context, index, delta int) bool {
	if !c.queue.Move(index, delta) {
		return false
	}
	c.save(ctx)
	return true
}

// ClearQueue empties the print queue and keeps the live form.
func (c *Controller) ClearQueue(ctx context.Context) {
	c.queue.Clear()
	c.save(ctx)
}

// Snapshots returns copies of the queued snapshots in order.
func (c *Controller) Snapshots() []model.Snapshot {
	return c.queue.Snapshots()
}

// QueueFull reports whether Enqueue would be ignored.
func (c *Controller) QueueFull() bool {
	return c.queue.Full()
}

// Position returns the single-print position.
func (c *Controller) Position() layout.Position {
	return c.position
}

// SetPosition stores the single-print position. Unknown values are ignored.
func (c *Controller) SetPosition(ctx context.Context, pos layout.Position) bool {
	if _, err := layout.ParsePosition(string(pos)); err != nil {
		return false
	}
	c.position = pos
	c.save(ctx)
	return true
}

// CyclePosition advances to the next position.
func (c *Controller) CyclePosition(ctx context.Context) layout.Position {
	c.position = c.position.Next()
	c.save(ctx)
	return c.position
}

// Reset discards the live form and the queue and removes the stored blob.
// The id counter and the print position survive, so snapshot ids are never
// reused.
func (c *Controller) Reset(ctx context.Context) {
	counter, pos := c.queue.Counter().Last, c.position
	if err := c.store.Remove(ctx, c.opts.Key); err != nil {
		common.LogWarn(err, "Failed to remove session state", common.Fields{"key": c.opts.Key})
	}
	c.apply(c.freshState(counter))
	c.position = pos
	c.save(ctx)
}

// PrintDocuments returns what a print request would place on the page:
// the queued snapshots in order when there are any, otherwise the live
// transaction.
func (c *Controller) PrintDocuments() []render.Document {
	snaps := c.queue.Snapshots()
	if len(snaps) == 0 {
		return []render.Document{c.Document()}
	}
	docs := make([]render.Document, len(snaps))
	for i, s := range snaps {
		docs[i] = render.Render(s.Input, s.Result)
	}
	return docs
}

// ComposePage lays out PrintDocuments at the current position. The scale
// is computed for the given page on every call.
func (c *Controller) ComposePage(page layout.Size, metrics layout.Metrics) layout.Page {
	return layout.Compose(c.PrintDocuments(), c.position, page, metrics)
}
