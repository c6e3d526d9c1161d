package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-api/internal/handler/http/requestid"
)

/* ───────── Logger construction ───────── */

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{in: "", want: slog.LevelInfo},
		{in: "debug", want: slog.LevelDebug},
		{in: "DEBUG", want: slog.LevelDebug},
		{in: "warn", want: slog.LevelWarn},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "verbose", want: slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
}

func TestNewLogger_ReadsLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	logger := NewLogger()
	require.NotNil(t, logger)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))

	t.Setenv("LOG_LEVEL", "error")
	assert.False(t, NewLogger().Enabled(context.Background(), slog.LevelWarn))
}

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo, false)

	logger.Info("listing served", slog.String("shape", "tags_only"))
	logger.Debug("suppressed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "listing served", entry["msg"])
	assert.Equal(t, "tags_only", entry["shape"])
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestNew_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, slog.LevelInfo, true).Info("hello", "k", "v")
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "k=v")
}

/* ───────── Context propagation ───────── */

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf, slog.LevelInfo, false)

	ctx := requestid.WithRequestID(context.Background(), "req-123")
	WithRequestID(ctx, base).Info("with id")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-123", entry["request_id"])

	assert.Same(t, base, WithRequestID(context.Background(), base))
}

func TestFromContext(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	logger := New(&bytes.Buffer{}, slog.LevelInfo, false)
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
}

func TestOrDefault(t *testing.T) {
	assert.Same(t, slog.Default(), OrDefault(nil))

	logger := New(&bytes.Buffer{}, slog.LevelInfo, false)
	assert.Same(t, logger, OrDefault(logger))
}
