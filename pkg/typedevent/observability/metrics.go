package observability

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records pool metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordAcquire records an acquire attempt with the requested size and outcome.
	RecordAcquire(ctx context.Context, class string, sizeBytes int64, err error)

	// RecordRelease records a block returning to its pool.
	RecordRelease(ctx context.Context, class string, err error)

	// RecordEventRelease records a pooled event reaching a zero reference count.
	RecordEventRelease(ctx context.Context, signal string)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	acquires      metric.Int64Counter
	acquireErrors metric.Int64Counter
	acquireSize   metric.Int64Histogram
	releases      metric.Int64Counter
	releaseErrors metric.Int64Counter
	inUse         metric.Int64UpDownCounter
	eventReleases metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics lazily initializes the shared OTel metrics instance.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("typedevent")

	acquires, err := meter.Int64Counter("typedevent.pool.acquires",
		metric.WithDescription("Number of successful block acquisitions"),
	)
	if err != nil {
		return nil, err
	}

	acquireErrors, err := meter.Int64Counter("typedevent.pool.acquire_errors",
		metric.WithDescription("Number of failed block acquisitions"),
	)
	if err != nil {
		return nil, err
	}

	acquireSize, err := meter.Int64Histogram("typedevent.pool.acquire_size_bytes",
		metric.WithDescription("Requested block size in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	releases, err := meter.Int64Counter("typedevent.pool.releases",
		metric.WithDescription("Number of blocks returned to a pool"),
	)
	if err != nil {
		return nil, err
	}

	releaseErrors, err := meter.Int64Counter("typedevent.pool.release_errors",
		metric.WithDescription("Number of rejected block releases"),
	)
	if err != nil {
		return nil, err
	}

	inUse, err := meter.Int64UpDownCounter("typedevent.pool.in_use",
		metric.WithDescription("Blocks currently held by callers"),
	)
	if err != nil {
		return nil, err
	}

	eventReleases, err := meter.Int64Counter("typedevent.event.releases",
		metric.WithDescription("Number of pooled events released"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		acquires:      acquires,
		acquireErrors: acquireErrors,
		acquireSize:   acquireSize,
		releases:      releases,
		releaseErrors: releaseErrors,
		inUse:         inUse,
		eventReleases: eventReleases,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordAcquire records an acquire attempt.
func (m *otelMetrics) RecordAcquire(ctx context.Context, class string, sizeBytes int64, err error) {
	attrs := metric.WithAttributes(attribute.String("pool_class", class))

	m.acquireSize.Record(ctx, sizeBytes, attrs)
	if err != nil {
		m.acquireErrors.Add(ctx, 1, attrs)
		return
	}
	m.acquires.Add(ctx, 1, attrs)
	m.inUse.Add(ctx, 1, attrs)
}

// RecordRelease records a block release.
func (m *otelMetrics) RecordRelease(ctx context.Context, class string, err error) {
	attrs := metric.WithAttributes(attribute.String("pool_class", class))

	if err != nil {
		m.releaseErrors.Add(ctx, 1, attrs)
		return
	}
	m.releases.Add(ctx, 1, attrs)
	m.inUse.Add(ctx, -1, attrs)
}

// RecordEventRelease records a pooled event release.
func (m *otelMetrics) RecordEventRelease(ctx context.Context, signal string) {
	m.eventReleases.Add(ctx, 1, metric.WithAttributes(attribute.String("signal", signal)))
}
