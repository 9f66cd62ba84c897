package typedevent

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/randalmurphal/typedevent/pkg/typedevent/observability"
	"github.com/randalmurphal/typedevent/pkg/typedevent/pool"
)

// Event is the handle consumers pass around.
// Both *BaseEvent and *TypedEvent[P] implement it; no other type can.
type Event interface {
	// Signal returns the event's signal.
	Signal() Signal

	// Origin returns where the event's storage came from.
	Origin() Origin

	// RefCount returns the number of live references to a pooled event.
	// Static events always report 0.
	RefCount() int32

	// Retain adds a reference to a pooled event.
	// It is a no-op for static events.
	Retain() error

	// Release drops a reference. The last Release of a pooled event returns
	// its block to the originating pool; the event must not be used after.
	// It is a no-op for static events.
	Release(ctx context.Context) error

	base() *BaseEvent
}

// BaseEvent is an event that carries only a signal.
// It is embedded by every TypedEvent. Events must not be copied.
type BaseEvent struct {
	signal Signal
	origin Origin

	refs  atomic.Int32
	block pool.Block
	owner *Factory
}

// NewEvent returns a static, payload-less event.
// Static events never touch a pool and need no Release.
//
// NewEvent panics if sig carries a payload; build those with NewTypedEvent.
func NewEvent(sig Signal) *BaseEvent {
	if sig.HasPayload() {
		panic(fmt.Sprintf("typedevent.NewEvent: %v", &EventError{Signal: sig, Op: "make", Err: ErrPayloadRequired}))
	}
	return &BaseEvent{signal: sig, origin: OriginStatic}
}

// Signal returns the event's signal.
func (e *BaseEvent) Signal() Signal {
	return e.signal
}

// Origin returns where the event's storage came from.
func (e *BaseEvent) Origin() Origin {
	return e.origin
}

// RefCount returns the number of live references.
func (e *BaseEvent) RefCount() int32 {
	return e.refs.Load()
}

// Retain adds a reference to a pooled event.
func (e *BaseEvent) Retain() error {
	if !e.origin.Pooled() {
		return nil
	}
	for {
		n := e.refs.Load()
		if n <= 0 {
			return &EventError{Signal: e.signal, Op: "retain", Err: ErrAlreadyReleased}
		}
		if e.refs.CompareAndSwap(n, n+1) {
			return nil
		}
	}
}

// Release drops a reference, returning the block on the last one.
func (e *BaseEvent) Release(ctx context.Context) error {
	if !e.origin.Pooled() {
		return nil
	}
	for {
		n := e.refs.Load()
		if n <= 0 {
			return &EventError{Signal: e.signal, Op: "release", Err: ErrAlreadyReleased}
		}
		if e.refs.CompareAndSwap(n, n-1) {
			if n == 1 {
				return e.finalize(ctx)
			}
			return nil
		}
	}
}

func (e *BaseEvent) base() *BaseEvent {
	return e
}

// finalize runs exactly once, when the count drops to zero.
// The count stays at zero afterwards, so later calls on the handle fail.
func (e *BaseEvent) finalize(ctx context.Context) error {
	f := e.owner
	blk := e.block
	sig := e.signal
	origin := e.origin

	e.block = pool.Block{}
	e.owner = nil

	err := f.pools.Release(ctx, blk)
	f.metrics.RecordEventRelease(ctx, sig.String())
	observability.LogEventReleased(f.logger, sig.String(), origin.String())

	if err != nil {
		return &EventError{Signal: sig, Op: "release", Err: err}
	}
	return nil
}

// TypedEvent is an event carrying an immutable payload of type P.
// Its signal is always P's signal, including for a zero TypedEvent.
type TypedEvent[P Payload] struct {
	BaseEvent
	payload P
}

// NewTypedEvent returns a static event carrying a copy of payload.
func NewTypedEvent[P Payload](payload P) *TypedEvent[P] {
	e := &TypedEvent[P]{payload: payload}
	e.signal = payload.Signal()
	e.origin = OriginStatic
	return e
}

// Signal returns the signal bound to P.
func (e *TypedEvent[P]) Signal() Signal {
	var zero P
	return zero.Signal()
}

// Data returns the payload.
func (e *TypedEvent[P]) Data() P {
	return e.payload
}

var (
	_ Event = (*BaseEvent)(nil)
	_ Event = (*TypedEvent[ButtonMask])(nil)
	_ Event = (*TypedEvent[XYData])(nil)
	_ Event = (*TypedEvent[HIDPPPayload])(nil)
)
