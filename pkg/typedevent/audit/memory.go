package audit

import (
	"sort"
	"sync"
	"time"

	"github.com/randalmurphal/typedevent/pkg/typedevent/pool"
)

// MemoryStore is an in-memory snapshot store.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]map[pool.Class]Snapshot // runID -> class -> snapshot
	closed bool
}

// NewMemoryStore creates a new in-memory snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]map[pool.Class]Snapshot),
	}
}

// Save implements Store.
func (m *MemoryStore) Save(snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	run := m.data[snap.RunID]
	if run == nil {
		run = make(map[pool.Class]Snapshot)
		m.data[snap.RunID] = run
	}

	seq := 1
	for _, s := range run {
		if s.Sequence >= seq {
			seq = s.Sequence + 1
		}
	}

	snap.Sequence = seq
	snap.Timestamp = time.Now().UTC()
	run[snap.Class] = snap
	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(runID string, class pool.Class) (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return Snapshot{}, ErrStoreClosed
	}

	snap, ok := m.data[runID][class]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return snap, nil
}

// List implements Store.
func (m *MemoryStore) List(runID string) ([]Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	run, ok := m.data[runID]
	if !ok {
		return nil, nil
	}

	snaps := make([]Snapshot, 0, len(run))
	for _, s := range run {
		snaps = append(snaps, s)
	}
	sort.Slice(snaps, func(i, j int) bool {
		return snaps[i].Sequence < snaps[j].Sequence
	})
	return snaps, nil
}

// DeleteRun implements Store.
func (m *MemoryStore) DeleteRun(runID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.data, runID)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	return nil
}

// Len returns the total number of snapshots across all runs.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, run := range m.data {
		count += len(run)
	}
	return count
}
