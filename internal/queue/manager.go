// Package queue holds up to four transaction snapshots waiting to be printed
// and the single edit context that can write back into one of them.
package queue

import (
	"log/slog"

	"github.com/Veraticus/paddy-ledger/internal/model"
)

// Capacity is the number of snapshots that fit on one printed page.
const Capacity = 4

// Counter issues snapshot ids. Last is persisted with the session so an id
// is never handed out twice, even across restarts.
type Counter struct {
	Last int64
}

// Next advances the counter and returns the new id.
func (c *Counter) Next() int64 {
	c.Last++
	return c.Last
}

// Manager is the queue state machine. Every transition that cannot apply
// (full queue, unknown id, index out of range) is a silent no-op.
type Manager struct {
	items   []model.Snapshot
	counter Counter
	editing int64
}

// NewManager restores a queue from persisted snapshots and counter.
// Extra snapshots beyond Capacity are dropped, the counter is raised past
// any id already in use, and a snapshot whose id is missing or repeated is
// given a fresh one.
func NewManager(items []model.Snapshot, counter Counter) *Manager {
	m := &Manager{counter: counter}
	for _, s := range items {
		if len(m.items) == Capacity {
			slog.Warn("Dropping snapshot beyond queue capacity", "id", s.ID)
			continue
		}
		m.items = append(m.items, s.Clone())
		if s.ID > m.counter.Last {
			m.counter.Last = s.ID
		}
	}

	seen := make(map[int64]bool, len(m.items))
	for i := range m.items {
		id := m.items[i].ID
		if id <= 0 || seen[id] {
			m.items[i].ID = m.counter.Next()
			slog.Warn("Reissued snapshot id", "old", id, "new", m.items[i].ID)
		}
		seen[m.items[i].ID] = true
	}
	return m
}

// Enqueue appends a deep copy of the transaction and returns its id,
// or 0 when the queue is already full.
func (m *Manager) Enqueue(input model.TransactionInput, result model.SettlementResult) int64 {
	if len(m.items) >= Capacity {
		return 0
	}

	snap := model.Snapshot{
		ID:     m.counter.Next(),
		Input:  input.Clone(),
		Result: result,
	}
	m.items = append(m.items, snap)
	return snap.ID
}

// Edit marks the snapshot as being edited and returns a copy of its input
// for loading into the live form. Editing another id switches the target.
func (m *Manager) Edit(id int64) (model.TransactionInput, bool) {
	i := m.indexOf(id)
	if i < 0 {
		return model.TransactionInput{}, false
	}
	m.editing = id
	return m.items[i].Input.Clone(), true
}

// Commit overwrites the snapshot with the given input and result and
// leaves edit mode.
func (m *Manager) Commit(id int64, input model.TransactionInput, result model.SettlementResult) bool {
	i := m.indexOf(id)
	if i < 0 {
		return false
	}
	m.items[i].Input = input.Clone()
	m.items[i].Result = result
	m.editing = 0
	return true
}

// Cancel leaves edit mode without touching any snapshot.
func (m *Manager) Cancel() {
	m.editing = 0
}

// Remove deletes the snapshot. Removing the edit target also ends edit mode.
func (m *Manager) Remove(id int64) bool {
	i := m.indexOf(id)
	if i < 0 {
		return false
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	if m.editing == id {
		m.editing = 0
	}
	return true
}

// Move swaps the snapshot at index with its neighbour in direction delta.
// Moves past either end leave the queue unchanged.
func (m *Manager) Move(index, delta int) bool {
	if delta != -1 && delta != 1 {
		return false
	}
	j := index + delta
	if index < 0 || index >= len(m.items) || j < 0 || j >= len(m.items) {
		return false
	}
	m.items[index], m.items[j] = m.items[j], m.items[index]
	return true
}

// Clear empties the queue and ends edit mode. The counter is kept.
func (m *Manager) Clear() {
	m.items = nil
	m.editing = 0
}

// Editing returns the id being edited, if any.
func (m *Manager) Editing() (int64, bool) {
	return m.editing, m.editing != 0
}

// Len returns the number of queued snapshots.
func (m *Manager) Len() int {
	return len(m.items)
}

// Full reports whether another Enqueue would be ignored.
func (m *Manager) Full() bool {
	return len(m.items) >= Capacity
}

// Get returns a copy of the snapshot with the given id.
func (m *Manager) Get(id int64) (model.Snapshot, bool) {
	i := m.indexOf(id)
	if i < 0 {
		return model.Snapshot{}, false
	}
	return m.items[i].Clone(), true
}

// Snapshots returns deep copies in queue order.
func (m *Manager) Snapshots() []model.Snapshot {
	out := make([]model.Snapshot, len(m.items))
	for i, s := range m.items {
		out[i] = s.Clone()
	}
	return out
}

// Counter returns the counter state for persistence.
func (m *Manager) Counter() Counter {
	return m.counter
}

func (m *Manager) indexOf(id int64) int {
	if id == 0 {
		return -1
	}
	for i, s := range m.items {
		if s.ID == id {
			return i
		}
	}
	return -1
}
