package observability

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newJSONLogger returns a debug-level JSON logger writing into buf.
func newJSONLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// decodeLines parses one JSON object per log line.
func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestNilLoggerIsSafe(t *testing.T) {
	assert.Nil(t, EnrichLogger(nil, "small", 64))
	assert.NotPanics(t, func() {
		LogPoolCreated(nil, 8)
		LogPoolExhausted(nil, 24, 8)
		LogBlockTooLarge(nil, 200)
		LogReleaseError(nil, 3, errors.New("x"))
		LogEventAllocated(nil, "ButtonPressed", "small")
		LogEventReleased(nil, "ButtonPressed", "small")
		LogAllocationError(nil, "HIDPP", errors.New("x"))
	})
}

func TestEnrichLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := EnrichLogger(newJSONLogger(&buf), "large", 512)
	logger.Info("hello")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "large", lines[0]["pool_class"])
	assert.Equal(t, float64(512), lines[0]["block_size"])
}

func TestLogPoolExhausted(t *testing.T) {
	var buf bytes.Buffer
	LogPoolExhausted(EnrichLogger(newJSONLogger(&buf), "small", 64), 24, 4)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "WARN", lines[0]["level"])
	assert.Equal(t, "pool exhausted", lines[0]["msg"])
	assert.Equal(t, float64(24), lines[0]["requested_bytes"])
	assert.Equal(t, float64(4), lines[0]["capacity"])
	assert.Equal(t, "small", lines[0]["pool_class"])
	assert.Equal(t, float64(64), lines[0]["block_size"])
}

func TestLogReleaseError(t *testing.T) {
	var buf bytes.Buffer
	LogReleaseError(newJSONLogger(&buf), 7, errors.New("double release"))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "ERROR", lines[0]["level"])
	assert.Equal(t, float64(7), lines[0]["block_index"])
	assert.Equal(t, "double release", lines[0]["error"])
}

func TestLogEventLifecycle(t *testing.T) {
	var buf bytes.Buffer
	logger := newJSONLogger(&buf)
	LogEventAllocated(logger, "XYRawData", "small")
	LogEventReleased(logger, "XYRawData", "small")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "event allocated", lines[0]["msg"])
	assert.Equal(t, "event released", lines[1]["msg"])
	for _, l := range lines {
		assert.Equal(t, "DEBUG", l["level"])
		assert.Equal(t, "XYRawData", l["signal"])
	}
}
