package audit

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/randalmurphal/typedevent/pkg/typedevent/pool"
)

// SQLiteStore persists snapshots to SQLite.
// It is suitable for single-process use and survives restarts, so leak
// reports of earlier runs can be compared.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a new SQLite snapshot store.
// The path should be a file path (e.g., "./audit.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS pool_snapshots (
			run_id TEXT NOT NULL,
			class INTEGER NOT NULL,
			sequence INTEGER NOT NULL,
			timestamp TEXT NOT NULL,
			block_size INTEGER NOT NULL,
			capacity INTEGER NOT NULL,
			in_use INTEGER NOT NULL,
			high_water INTEGER NOT NULL,
			acquired INTEGER NOT NULL,
			released INTEGER NOT NULL,
			exhausted INTEGER NOT NULL,
			PRIMARY KEY (run_id, class)
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_pool_snapshots_run_id
		ON pool_snapshots(run_id)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.Exec(`
		INSERT INTO pool_snapshots (
			run_id, class, sequence, timestamp,
			block_size, capacity, in_use, high_water,
			acquired, released, exhausted
		)
		VALUES (
			?, ?,
			COALESCE((SELECT MAX(sequence) FROM pool_snapshots WHERE run_id = ?), 0) + 1,
			?, ?, ?, ?, ?, ?, ?, ?
		)
		ON CONFLICT(run_id, class) DO UPDATE SET
			sequence = (SELECT MAX(sequence) FROM pool_snapshots WHERE run_id = excluded.run_id) + 1,
			timestamp = excluded.timestamp,
			block_size = excluded.block_size,
			capacity = excluded.capacity,
			in_use = excluded.in_use,
			high_water = excluded.high_water,
			acquired = excluded.acquired,
			released = excluded.released,
			exhausted = excluded.exhausted
	`,
		snap.RunID, int(snap.Class), snap.RunID,
		time.Now().UTC().Format(time.RFC3339Nano),
		snap.BlockSize, snap.Capacity, snap.InUse, snap.HighWater,
		int64(snap.Acquired), int64(snap.Released), int64(snap.Exhausted),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

const selectColumns = `
	class, sequence, timestamp,
	block_size, capacity, in_use, high_water,
	acquired, released, exhausted`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner, runID string) (Snapshot, error) {
	var (
		snap      Snapshot
		class     int
		timestamp string
		acquired  int64
		released  int64
		exhausted int64
	)
	if err := row.Scan(
		&class, &snap.Sequence, &timestamp,
		&snap.BlockSize, &snap.Capacity, &snap.InUse, &snap.HighWater,
		&acquired, &released, &exhausted,
	); err != nil {
		return Snapshot{}, err
	}
	snap.RunID = runID
	snap.Class = pool.Class(class)
	snap.Timestamp, _ = time.Parse(time.RFC3339Nano, timestamp)
	snap.Acquired = uint64(acquired)
	snap.Released = uint64(released)
	snap.Exhausted = uint64(exhausted)
	return snap, nil
}

// Load implements Store.
func (s *SQLiteStore) Load(runID string, class pool.Class) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Snapshot{}, ErrStoreClosed
	}

	row := s.db.QueryRow(`SELECT `+selectColumns+`
		FROM pool_snapshots
		WHERE run_id = ? AND class = ?
	`, runID, int(class))

	snap, err := scanSnapshot(row, runID)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	return snap, nil
}

// List implements Store.
func (s *SQLiteStore) List(runID string) ([]Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`SELECT `+selectColumns+`
		FROM pool_snapshots
		WHERE run_id = ?
		ORDER BY sequence
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows, runID)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snaps = append(snaps, snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}

	return snaps, nil
}

// DeleteRun implements Store.
func (s *SQLiteStore) DeleteRun(runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.Exec(`DELETE FROM pool_snapshots WHERE run_id = ?`, runID)
	if err != nil {
		return fmt.Errorf("delete run snapshots: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}
