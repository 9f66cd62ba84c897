package audit

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/randalmurphal/typedevent/pkg/typedevent/pool"
)

// NewRunID returns a fresh identifier for grouping snapshots.
func NewRunID() string {
	return uuid.NewString()
}

// Capture saves one snapshot per pool class of reg under runID and returns
// them as stored, in class order.
func Capture(store Store, runID string, reg *pool.Registry) ([]Snapshot, error) {
	if store == nil {
		return nil, fmt.Errorf("capture %s: nil store", runID)
	}
	if reg == nil {
		return nil, fmt.Errorf("capture %s: nil registry", runID)
	}

	stats := reg.Stats()
	snaps := make([]Snapshot, 0, len(stats))
	for _, s := range stats {
		if err := store.Save(FromStats(runID, s)); err != nil {
			return nil, fmt.Errorf("capture %s/%s: %w", runID, s.Class, err)
		}
		saved, err := store.Load(runID, s.Class)
		if err != nil {
			return nil, fmt.Errorf("capture %s/%s: %w", runID, s.Class, err)
		}
		snaps = append(snaps, saved)
	}
	return snaps, nil
}

// Leaks returns the snapshots that still had blocks in use.
func Leaks(snaps []Snapshot) []Snapshot {
	var leaked []Snapshot
	for _, s := range snaps {
		if s.InUse > 0 {
			leaked = append(leaked, s)
		}
	}
	return leaked
}
