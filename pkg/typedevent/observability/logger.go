// Package observability provides structured logging, metrics, and tracing
// for the pool and event factory layers.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
)

// EnrichLogger adds pool context to a logger.
// Pool managers log through the enriched logger, so the helpers below do not
// repeat the class or block size.
//
// Example:
//
//	enriched := EnrichLogger(logger, "small", 128)
//	LogPoolExhausted(enriched, 64, 256) // includes pool_class, block_size
func EnrichLogger(logger *slog.Logger, class string, blockSize int) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("pool_class", class),
		slog.Int("block_size", blockSize),
	)
}

// LogPoolCreated logs creation of a pool manager.
func LogPoolCreated(logger *slog.Logger, capacity int) {
	if logger == nil {
		return
	}
	logger.Debug("pool created", slog.Int("capacity", capacity))
}

// LogPoolExhausted logs an acquire that found no free block.
func LogPoolExhausted(logger *slog.Logger, size uintptr, capacity int) {
	if logger == nil {
		return
	}
	logger.Warn("pool exhausted",
		slog.Uint64("requested_bytes", uint64(size)),
		slog.Int("capacity", capacity),
	)
}

// LogBlockTooLarge logs a request that does not fit the size class.
func LogBlockTooLarge(logger *slog.Logger, size uintptr) {
	if logger == nil {
		return
	}
	logger.Error("requested size exceeds block size",
		slog.Uint64("requested_bytes", uint64(size)),
	)
}

// LogReleaseError logs a rejected release (double release, foreign block).
func LogReleaseError(logger *slog.Logger, index int, err error) {
	if logger == nil {
		return
	}
	logger.Error("block release rejected",
		slog.Int("block_index", index),
		slog.String("error", err.Error()),
	)
}

// LogEventAllocated logs a pooled event construction.
func LogEventAllocated(logger *slog.Logger, signal, origin string) {
	if logger == nil {
		return
	}
	logger.Debug("event allocated",
		slog.String("signal", signal),
		slog.String("origin", origin),
	)
}

// LogEventReleased logs a pooled event returning its block.
func LogEventReleased(logger *slog.Logger, signal, origin string) {
	if logger == nil {
		return
	}
	logger.Debug("event released",
		slog.String("signal", signal),
		slog.String("origin", origin),
	)
}

// LogAllocationError logs a failed factory call.
func LogAllocationError(logger *slog.Logger, signal string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("event allocation failed",
		slog.String("signal", signal),
		slog.String("error", err.Error()),
	)
}
