package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"content-api/internal/observability/metrics"
)

// unmatchedRoute labels requests the mux did not route, so arbitrary paths
// cannot grow label cardinality.
const unmatchedRoute = "unmatched"

// MetricsMiddleware records request count, duration and response size per route.
// The path label is the matched mux pattern ("GET /v1/posts/{slug}"), never the
// raw path. It must wrap the mux directly so the pattern is visible on r.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.ActiveConnections.Inc()
		defer metrics.ActiveConnections.Dec()

		rec := newStatusRecorder(w)
		start := time.Now()
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = unmatchedRoute
		}
		metrics.RecordHTTPRequest(r.Method, route, strconv.Itoa(rec.status), time.Since(start), rec.bytes)
	})
}

// MetricsHandler returns an HTTP handler for the Prometheus metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
