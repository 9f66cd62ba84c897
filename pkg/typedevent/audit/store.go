// Package audit records pool usage snapshots so leaked events can be found
// after a run.
package audit

import (
	"errors"
	"time"

	"github.com/randalmurphal/typedevent/pkg/typedevent/pool"
)

// Store persists snapshots.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores a snapshot.
	// Overwrites if a snapshot for (RunID, Class) already exists, and
	// assigns it the next sequence number of the run.
	Save(snap Snapshot) error

	// Load retrieves the snapshot of one class within a run.
	// Returns ErrNotFound if it doesn't exist.
	Load(runID string, class pool.Class) (Snapshot, error)

	// List returns all snapshots for a run, ordered by sequence.
	// Returns empty slice (not error) if run has no snapshots.
	List(runID string) ([]Snapshot, error)

	// DeleteRun removes all snapshots for a run.
	// Returns nil if run has no snapshots.
	DeleteRun(runID string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Snapshot is the recorded state of one pool class at a point in a run.
type Snapshot struct {
	RunID     string
	Class     pool.Class
	Sequence  int
	Timestamp time.Time

	BlockSize int
	Capacity  int
	InUse     int
	HighWater int
	Acquired  uint64
	Released  uint64
	Exhausted uint64
}

// FromStats builds an unsaved snapshot from pool statistics.
// Sequence and Timestamp are assigned by the store.
func FromStats(runID string, s pool.Stats) Snapshot {
	return Snapshot{
		RunID:     runID,
		Class:     s.Class,
		BlockSize: s.BlockSize,
		Capacity:  s.Capacity,
		InUse:     s.InUse,
		HighWater: s.HighWater,
		Acquired:  s.Acquired,
		Released:  s.Released,
		Exhausted: s.Exhausted,
	}
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates a snapshot doesn't exist.
	ErrNotFound = errors.New("snapshot not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("audit store closed")
)
