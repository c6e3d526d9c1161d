// Package tracing provides OpenTelemetry tracing integration.
//
// Spans are created through GetTracer, which always resolves against the
// currently installed global provider. cmd/api installs an SDK provider with
// NewProvider; without one, spans are no-ops.
//
//	ctx, span := tracing.GetTracer().Start(ctx, "post.List")
//	defer span.End()
package tracing
