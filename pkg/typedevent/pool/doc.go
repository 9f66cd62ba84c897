// Package pool provides fixed-capacity, size-class block allocation for
// pooled events.
//
// # Size Classes
//
// Every payload type maps to exactly one class by its byte size:
//
//	pool.SelectClass(24)          // ClassSmall (24 <= Threshold)
//	pool.ClassFor[[64]byte]()     // ClassLarge
//
// Small, frequent events (buttons, timers) and large, rare ones (protocol
// messages) draw from different managers so neither can starve the other.
//
// # Managers
//
// A Manager owns capacity slots of blockSize bytes each and hands them out
// from a free list in O(1). Acquire never waits: an empty free list is
// reported as ErrPoolExhausted. A Block can only be obtained from Acquire
// and must be handed back through Release exactly once.
//
//	reg, err := pool.NewRegistry(pool.DefaultConfig,
//	    pool.WithMetrics(observability.NewMetricsRecorder()),
//	    pool.WithLogger(logger),
//	)
//
//	blk, err := reg.Acquire(ctx, pool.ClassSmall, 48)
//	if errors.Is(err, pool.ErrPoolExhausted) {
//	    // shed load
//	}
//	defer reg.Release(ctx, blk)
//
// # Registry
//
// Registry holds one Manager per class. It is built once at startup and
// passed to producers explicitly; there is no package-level pool.
//
// Managers and the Registry are safe for concurrent use.
package pool
