// Package observability groups the logging, metrics and tracing helpers
// shared by the API, the stats refresher and the CLI.
//
// Subpackages:
//   - logging: slog constructors and context propagation
//   - metrics: Prometheus collectors and the content metrics recorder
//   - tracing: OpenTelemetry tracer and HTTP span middleware
package observability
