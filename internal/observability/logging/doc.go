// Package logging provides structured logging utilities with context propagation.
//
// Loggers are JSON by default (NewLogger) and carry the request ID when built
// with WithRequestID. Services accept a *slog.Logger and fall back to
// slog.Default() through OrDefault.
package logging
