package pool

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/typedevent/pkg/typedevent/observability"
)

// Block is one acquired slot of a Manager.
// The zero Block is invalid; blocks only come from Acquire.
type Block struct {
	mgr   *Manager
	index int
	gen   uint32
	size  uintptr
}

// Valid reports whether b was issued by a Manager.
func (b Block) Valid() bool {
	return b.mgr != nil
}

// Class returns the class of the issuing manager.
func (b Block) Class() Class {
	if b.mgr == nil {
		return ClassSmall
	}
	return b.mgr.class
}

// Size returns the size requested at acquire time.
func (b Block) Size() uintptr {
	return b.size
}

// Index returns the slot index within the issuing manager.
func (b Block) Index() int {
	return b.index
}

// Stats is a point-in-time view of a Manager.
type Stats struct {
	Class     Class
	BlockSize int
	Capacity  int
	InUse     int
	HighWater int
	Acquired  uint64
	Released  uint64
	Exhausted uint64
}

// Manager serves fixed-size blocks of a single size class.
type Manager struct {
	class     Class
	blockSize int

	mu    sync.Mutex
	free  []int    // stack of free slot indices
	inUse []bool   // inUse[i] is true while slot i is held
	gens  []uint32 // bumped on every release of slot i

	highWater int
	acquired  uint64
	released  uint64
	exhausted uint64

	metrics observability.MetricsRecorder
	logger  *slog.Logger
}

// NewManager creates a manager with capacity blocks of blockSize bytes.
func NewManager(class Class, blockSize, capacity int, opts ...Option) (*Manager, error) {
	if !class.Valid() {
		return nil, fmt.Errorf("%w: class %d", ErrUnknownClass, class)
	}
	if blockSize <= 0 || capacity <= 0 {
		return nil, fmt.Errorf("%w: %s block_size=%d capacity=%d",
			ErrInvalidConfig, class, blockSize, capacity)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	m := &Manager{
		class:     class,
		blockSize: blockSize,
		free:      make([]int, capacity),
		inUse:     make([]bool, capacity),
		gens:      make([]uint32, capacity),
		metrics:   o.metrics,
		logger:    observability.EnrichLogger(o.logger, class.String(), blockSize),
	}
	// Lowest indices are handed out first.
	for i := range m.free {
		m.free[i] = capacity - 1 - i
	}

	observability.LogPoolCreated(m.logger, capacity)
	return m, nil
}

// Class returns the size class this manager serves.
func (m *Manager) Class() Class {
	return m.class
}

// BlockSize returns the size of each block in bytes.
func (m *Manager) BlockSize() int {
	return m.blockSize
}

// Capacity returns the total number of blocks.
func (m *Manager) Capacity() int {
	return len(m.inUse)
}

// Acquire takes one block able to hold size bytes.
// It fails immediately with ErrPoolExhausted when no block is free.
func (m *Manager) Acquire(ctx context.Context, size uintptr) (Block, error) {
	if size > uintptr(m.blockSize) {
		err := &AllocationError{Class: m.class, Size: size, Err: ErrBlockTooLarge}
		m.metrics.RecordAcquire(ctx, m.class.String(), int64(size), err)
		observability.LogBlockTooLarge(m.logger, size)
		return Block{}, err
	}

	m.mu.Lock()
	n := len(m.free)
	if n == 0 {
		m.exhausted++
		m.mu.Unlock()

		err := &AllocationError{Class: m.class, Size: size, Err: ErrPoolExhausted}
		m.metrics.RecordAcquire(ctx, m.class.String(), int64(size), err)
		observability.LogPoolExhausted(m.logger, size, m.Capacity())
		observability.AddSpanEvent(ctx, "typedevent.pool.exhausted",
			attribute.String("pool_class", m.class.String()),
			attribute.Int64("requested_bytes", int64(size)),
		)
		return Block{}, err
	}

	idx := m.free[n-1]
	m.free = m.free[:n-1]
	m.inUse[idx] = true
	m.acquired++
	if used := len(m.inUse) - len(m.free); used > m.highWater {
		m.highWater = used
	}
	blk := Block{mgr: m, index: idx, gen: m.gens[idx], size: size}
	m.mu.Unlock()

	m.metrics.RecordAcquire(ctx, m.class.String(), int64(size), nil)
	return blk, nil
}

// Release returns b to the free list.
// Releasing a block twice, or a block from another manager, is rejected.
func (m *Manager) Release(ctx context.Context, b Block) error {
	err := m.release(b)
	m.metrics.RecordRelease(ctx, m.class.String(), err)
	if err != nil {
		observability.LogReleaseError(m.logger, b.index, err)
	}
	return err
}

func (m *Manager) release(b Block) error {
	if !b.Valid() {
		return ErrInvalidBlock
	}
	if b.mgr != m {
		return fmt.Errorf("%w: %s block released to %s pool", ErrForeignBlock, b.mgr.class, m.class)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.inUse[b.index] || m.gens[b.index] != b.gen {
		return fmt.Errorf("%w: %s slot %d", ErrDoubleRelease, m.class, b.index)
	}
	m.inUse[b.index] = false
	m.gens[b.index]++
	m.free = append(m.free, b.index)
	m.released++
	return nil
}

// Stats returns a consistent snapshot of the manager's counters.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Stats{
		Class:     m.class,
		BlockSize: m.blockSize,
		Capacity:  len(m.inUse),
		InUse:     len(m.inUse) - len(m.free),
		HighWater: m.highWater,
		Acquired:  m.acquired,
		Released:  m.released,
		Exhausted: m.exhausted,
	}
}
