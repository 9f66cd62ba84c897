package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTracingTest installs an in-memory span exporter for the test.
func setupTracingTest(t *testing.T) (*tracetest.InMemoryExporter, func()) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)

	originalProvider := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	tracer = otel.Tracer("typedevent")

	cleanup := func() {
		otel.SetTracerProvider(originalProvider)
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	}

	return exporter, cleanup
}

func TestStartRunSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	_, span := StartRunSpan(context.Background(), "demo", "run-123")
	require.NotNil(t, span)
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "typedevent.run", spans[0].Name)

	var name, runID string
	for _, attr := range spans[0].Attributes {
		switch attr.Key {
		case "run.name":
			name = attr.Value.AsString()
		case "run.id":
			runID = attr.Value.AsString()
		}
	}
	assert.Equal(t, "demo", name)
	assert.Equal(t, "run-123", runID)
}

func TestSpanManager_AllocSpanWithError(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	sm := NewSpanManager()
	_, span := sm.StartAllocSpan(context.Background(), "HIDPP")
	sm.EndSpanWithError(span, errors.New("pool exhausted"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	s := spans[0]
	assert.Equal(t, "typedevent.alloc", s.Name)
	assert.Equal(t, codes.Error, s.Status.Code)
	assert.Equal(t, "pool exhausted", s.Status.Description)
	assert.NotEmpty(t, s.Events, "RecordError should add an exception event")
}

func TestEndSpanWithError_Success(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	_, span := StartRunSpan(context.Background(), "demo", "run-1")
	EndSpanWithError(span, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
}

func TestEndSpanWithError_NilSpan(t *testing.T) {
	assert.NotPanics(t, func() {
		EndSpanWithError(nil, errors.New("ignored"))
	})
}

func TestAddSpanEvent(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	t.Run("adds event to recording span", func(t *testing.T) {
		exporter.Reset()
		ctx, span := StartRunSpan(context.Background(), "demo", "run-1")
		AddSpanEvent(ctx, "pool.exhausted", attribute.String("pool_class", "large"))
		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		require.Len(t, spans[0].Events, 1)
		assert.Equal(t, "pool.exhausted", spans[0].Events[0].Name)
	})

	t.Run("no span in context is a no-op", func(t *testing.T) {
		assert.NotPanics(t, func() {
			AddSpanEvent(context.Background(), "ignored")
		})
	})
}

func TestNoopSpanManager(t *testing.T) {
	var sm SpanManager = NoopSpanManager{}
	ctx := context.Background()

	gotCtx, span := sm.StartAllocSpan(ctx, "ButtonPressed")
	assert.Equal(t, ctx, gotCtx)
	assert.False(t, span.IsRecording())

	gotCtx, span = sm.StartRunSpan(ctx, "demo", "run")
	assert.Equal(t, ctx, gotCtx)
	assert.NotPanics(t, func() {
		sm.AddSpanEvent(gotCtx, "x")
		sm.EndSpanWithError(span, errors.New("x"))
	})
}
