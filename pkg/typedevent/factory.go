package typedevent

import (
	"context"
	"log/slog"
	"unsafe"

	"github.com/randalmurphal/typedevent/pkg/typedevent/observability"
	"github.com/randalmurphal/typedevent/pkg/typedevent/pool"
)

// Factory builds pool-backed events.
// It is the only way to obtain an event with a pooled Origin.
//
// The pools bound how many events of each class are live at once. Event
// objects themselves are never reused, so a handle kept past its last
// Release keeps failing with ErrAlreadyReleased.
type Factory struct {
	pools *pool.Registry

	metrics observability.MetricsRecorder
	spans   observability.SpanManager
	logger  *slog.Logger
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithMetrics records event releases.
// Default: no-op.
func WithMetrics(m observability.MetricsRecorder) FactoryOption {
	return func(f *Factory) {
		if m != nil {
			f.metrics = m
		}
	}
}

// WithSpanManager opens a span around every factory call.
// Default: no-op.
func WithSpanManager(s observability.SpanManager) FactoryOption {
	return func(f *Factory) {
		if s != nil {
			f.spans = s
		}
	}
}

// WithLogger logs allocations, releases, and failures at debug/warn level.
// Default: no logging.
func WithLogger(logger *slog.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// NewFactory returns a factory drawing blocks from pools.
func NewFactory(pools *pool.Registry, opts ...FactoryOption) *Factory {
	f := &Factory{
		pools:   pools,
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Pools returns the registry the factory allocates from.
func (f *Factory) Pools() *pool.Registry {
	return f.pools
}

// MakeEvent builds a pooled, payload-less event from the small pool.
// The event starts with one reference.
func (f *Factory) MakeEvent(ctx context.Context, sig Signal) (_ *BaseEvent, err error) {
	if f == nil {
		return nil, &EventError{Signal: sig, Op: "make", Err: ErrNilFactory}
	}
	if sig.HasPayload() {
		return nil, &EventError{Signal: sig, Op: "make", Err: ErrPayloadRequired}
	}

	ctx, span := f.spans.StartAllocSpan(ctx, sig.String())
	defer func() { f.spans.EndSpanWithError(span, err) }()

	var zero BaseEvent
	class := pool.SelectClass(0)
	blk, err := f.pools.Acquire(ctx, class, unsafe.Sizeof(zero))
	if err != nil {
		observability.LogAllocationError(f.logger, sig.String(), err)
		return nil, &EventError{Signal: sig, Op: "make", Err: err}
	}

	e := new(BaseEvent)
	e.init(f, sig, class, blk)

	observability.LogEventAllocated(f.logger, sig.String(), e.origin.String())
	return e, nil
}

// MakeTypedEvent builds a pooled event carrying a copy of payload.
// The pool class is chosen from the size of P; the event starts with one
// reference.
func MakeTypedEvent[P Payload](ctx context.Context, f *Factory, payload P) (_ *TypedEvent[P], err error) {
	sig := payload.Signal()
	if f == nil {
		return nil, &EventError{Signal: sig, Op: "make", Err: ErrNilFactory}
	}

	ctx, span := f.spans.StartAllocSpan(ctx, sig.String())
	defer func() { f.spans.EndSpanWithError(span, err) }()

	var zero TypedEvent[P]
	class := pool.ClassFor[P]()
	blk, err := f.pools.Acquire(ctx, class, unsafe.Sizeof(zero))
	if err != nil {
		observability.LogAllocationError(f.logger, sig.String(), err)
		return nil, &EventError{Signal: sig, Op: "make", Err: err}
	}

	e := &TypedEvent[P]{payload: payload}
	e.init(f, sig, class, blk)

	observability.LogEventAllocated(f.logger, sig.String(), e.origin.String())
	return e, nil
}

// init stamps a new object as a pooled event.
// Only the factory calls it, so a pooled origin always has a block behind it.
func (e *BaseEvent) init(f *Factory, sig Signal, class pool.Class, blk pool.Block) {
	e.signal = sig
	e.origin = OriginOf(class)
	e.block = blk
	e.owner = f
	e.refs.Store(1)
}
