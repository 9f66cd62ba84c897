package pool

import (
	"log/slog"

	"github.com/randalmurphal/typedevent/pkg/typedevent/observability"
)

type options struct {
	metrics observability.MetricsRecorder
	logger  *slog.Logger
}

func defaultOptions() options {
	return options{
		metrics: observability.NoopMetrics{},
	}
}

// Option configures a Manager or Registry.
type Option func(*options)

// WithMetrics records acquire and release activity.
// Default: no-op.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithLogger logs exhaustion and rejected releases.
// Default: no logging.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
