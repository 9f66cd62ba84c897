// Package typedevent provides a typed event model with size-class pooled
// allocation for event-driven control loops.
//
// # Overview
//
// Every event carries a Signal. Signals that carry data are bound to exactly
// one payload type, and the payload type names its signal, so the pairing is
// fixed by the compiler:
//
//	SignalButtonPressed  ButtonMask
//	SignalXYRawData      XYData
//	SignalHIDPP          HIDPPPayload
//	SignalTimerExpired   (none)
//
// Consumers hold the Event interface and recover payloads either with
// PayloadOf or with Visit, which switches on the signal.
//
// # Static Events
//
// NewEvent and NewTypedEvent build events that live as long as the caller
// keeps them. Their Origin is OriginStatic and Release is a no-op:
//
//	var timeout = typedevent.NewEvent(typedevent.SignalTimerExpired)
//	var origin = typedevent.NewTypedEvent(typedevent.XYData{X: 1, Y: 2})
//
// # Pooled Events
//
// A Factory draws one block per event from a pool.Registry. The class is
// chosen from the payload size (pool.SelectClass), and the event's Origin
// records it:
//
//	pools, _ := pool.NewRegistry(pool.DefaultConfig)
//	f := typedevent.NewFactory(pools)
//
//	ev, err := typedevent.MakeTypedEvent(ctx, f, typedevent.ButtonMask(42))
//	if err != nil {
//	    // errors.Is(err, pool.ErrPoolExhausted)
//	}
//	// ev.Origin() == typedevent.OriginSmall
//
// Pooled events are reference counted. They start with one reference;
// every extra holder calls Retain, and every holder calls Release once.
// The last Release returns the block to the pool it came from.
//
//	ev.Retain()              // handed to a second consumer
//	_ = ev.Release(ctx)      // first consumer done
//	_ = ev.Release(ctx)      // block returned
//
// # Recovery
//
//	typedevent.Visit(ev, typedevent.VisitorFuncs{
//	    OnButtonPressed: func(_ typedevent.Event, m typedevent.ButtonMask) { ... },
//	    OnDefault:       func(typedevent.Event) { /* no payload */ },
//	})
//
//	fmt.Println(typedevent.Describe(ev)) // Event pool:1 signal:1 data:42
package typedevent
