package pool

import (
	"context"
	"fmt"
)

// Registry holds exactly one Manager per Class.
type Registry struct {
	managers [numClasses]*Manager
}

// NewRegistry builds one manager per class from cfg.
// The same options apply to every manager.
func NewRegistry(cfg Config, opts ...Option) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Registry{}
	for _, c := range Classes() {
		cc := cfg.For(c)
		m, err := NewManager(c, cc.BlockSize, cc.Capacity, opts...)
		if err != nil {
			return nil, fmt.Errorf("create %s pool: %w", c, err)
		}
		r.managers[c] = m
	}
	return r, nil
}

// Manager returns the manager for class c, or nil for an unknown class.
func (r *Registry) Manager(c Class) *Manager {
	if !c.Valid() {
		return nil
	}
	return r.managers[c]
}

// Acquire takes a block of size bytes from the manager for class c.
func (r *Registry) Acquire(ctx context.Context, c Class, size uintptr) (Block, error) {
	m := r.Manager(c)
	if m == nil {
		return Block{}, &AllocationError{Class: c, Size: size, Err: ErrUnknownClass}
	}
	return m.Acquire(ctx, size)
}

// Release returns b to the manager that issued it.
func (r *Registry) Release(ctx context.Context, b Block) error {
	if !b.Valid() {
		return ErrInvalidBlock
	}
	m := r.Manager(b.Class())
	if m != b.mgr {
		return fmt.Errorf("%w: block not issued by this registry", ErrForeignBlock)
	}
	return m.Release(ctx, b)
}

// Stats returns one snapshot per class, smallest class first.
func (r *Registry) Stats() []Stats {
	out := make([]Stats, 0, numClasses)
	for _, m := range r.managers {
		out = append(out, m.Stats())
	}
	return out
}

// InUse returns the number of blocks held across all classes.
func (r *Registry) InUse() int {
	total := 0
	for _, m := range r.managers {
		total += m.Stats().InUse
	}
	return total
}
