// Package logging provides structured logging utilities using the standard library's log/slog package.
// It offers helper functions for creating loggers with consistent configuration and context propagation.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"content-api/internal/handler/http/requestid"
)

// ParseLevel maps debug, info, warn and error (case-insensitive) to a slog level.
// Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a JSON logger on stdout at the level named by LOG_LEVEL.
func NewLogger() *slog.Logger {
	return New(os.Stdout, ParseLevel(os.Getenv("LOG_LEVEL")), false)
}

// NewTextLogger creates a human-readable logger, used by the CLI.
func NewTextLogger() *slog.Logger {
	return New(os.Stderr, ParseLevel(os.Getenv("LOG_LEVEL")), true)
}

// New builds a logger writing to w. Source locations are added at debug level.
func New(w io.Writer, level slog.Level, text bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}
	if text {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// WithRequestID returns a new logger that includes the request ID from the context.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		return logger
	}
	return logger.With("request_id", reqID)
}

// FromContext retrieves the logger from the context, or returns the default logger if not found.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

// OrDefault returns logger, or slog.Default() when it is nil.
func OrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

type contextKey string

const loggerContextKey contextKey = "logger"
