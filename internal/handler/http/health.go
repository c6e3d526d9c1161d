// Package http provides the shared HTTP surface of the content API: health and
// service-info endpoints, Prometheus exposition, and the middleware chain.
// Resource handlers live in the post and project subpackages.
package http

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"content-api/internal/handler/http/respond"
	"content-api/internal/observability/metrics"
	"content-api/internal/repository"
)

// Check statuses.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // RFC 3339, UTC
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// BlobPinger probes the blob store.
type BlobPinger interface {
	Ping(ctx context.Context) error
}

// BreakerStater reports a circuit breaker's state.
type BreakerStater interface {
	State() gobreaker.State
}

// HealthHandler serves GET /v1/health. The database and blob store must both
// answer for a 200; otherwise the response is 503. An open circuit breaker
// degrades the report but does not fail it on its own.
type HealthHandler struct {
	// DB runs the SELECT 1 probe, normally through the DB circuit breaker.
	DB repository.QueryExecutor
	// Pool, when set, contributes connection pool statistics.
	Pool     *sql.DB
	Blob     BlobPinger
	Breakers map[string]BreakerStater
	Version  string
	Timeout  time.Duration
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	checks := map[string]CheckStatus{
		"database":   h.checkDatabase(ctx),
		"blob_store": h.checkBlob(ctx),
	}
	if len(h.Breakers) > 0 {
		checks["circuit_breakers"] = h.checkBreakers()
	}

	status, code := StatusHealthy, http.StatusOK
	for _, c := range checks {
		if c.Status == StatusUnhealthy {
			status, code = StatusUnhealthy, http.StatusServiceUnavailable
			break
		}
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) CheckStatus {
	if h.DB == nil {
		return CheckStatus{Status: StatusUnhealthy, Message: "not configured"}
	}
	var one int
	if err := h.DB.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		slog.Default().WarnContext(ctx, "health: database probe failed", slog.Any("error", err))
		return CheckStatus{Status: StatusUnhealthy, Message: "database unreachable"}
	}
	if h.Pool == nil {
		return CheckStatus{Status: StatusHealthy}
	}

	stats := h.Pool.Stats()
	metrics.UpdateDBConnectionStats(stats.InUse, stats.Idle)
	details := map[string]any{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}
	// MaxOpenConnections 0 means unlimited
	if stats.MaxOpenConnections > 0 {
		utilization := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
		details["utilization_percent"] = utilization
		if utilization >= 80.0 {
			return CheckStatus{
				Status:  StatusDegraded,
				Message: "connection pool utilization above 80%",
				Details: details,
			}
		}
	}
	return CheckStatus{Status: StatusHealthy, Details: details}
}

func (h *HealthHandler) checkBlob(ctx context.Context) CheckStatus {
	if h.Blob == nil {
		return CheckStatus{Status: StatusUnhealthy, Message: "not configured"}
	}
	if err := h.Blob.Ping(ctx); err != nil {
		slog.Default().WarnContext(ctx, "health: blob store probe failed", slog.Any("error", err))
		return CheckStatus{Status: StatusUnhealthy, Message: "blob store unreachable"}
	}
	return CheckStatus{Status: StatusHealthy}
}

func (h *HealthHandler) checkBreakers() CheckStatus {
	status := StatusHealthy
	details := make(map[string]any, len(h.Breakers))
	for name, b := range h.Breakers {
		state := b.State()
		details[name] = state.String()
		if state != gobreaker.StateClosed {
			status = StatusDegraded
		}
	}
	return CheckStatus{Status: status, Details: details}
}

// LiveHandler answers liveness probes. It never touches dependencies.
type LiveHandler struct{}

func (LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// InfoResponse is the body of GET /.
type InfoResponse struct {
	Service    string            `json:"service"`
	Version    string            `json:"version"`
	APIVersion string            `json:"api_version"`
	Endpoints  map[string]string `json:"endpoints"`
}

// InfoHandler describes the service and its endpoints at the root path.
type InfoHandler struct {
	Service string
	Version string
}

func (h InfoHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, InfoResponse{
		Service:    h.Service,
		Version:    h.Version,
		APIVersion: "v1",
		Endpoints: map[string]string{
			"posts":    "/v1/posts",
			"post":     "/v1/posts/{slug}",
			"tags":     "/v1/tags",
			"projects": "/v1/projects",
			"project":  "/v1/projects/{slug}",
			"resume":   "/v1/resume",
			"health":   "/v1/health",
			"metrics":  "/metrics",
		},
	})
}

// RegisterOps mounts the service-level routes: root info, health, liveness and metrics.
func RegisterOps(mux *http.ServeMux, health *HealthHandler, info InfoHandler) {
	mux.Handle("GET /{$}", info)
	mux.Handle("GET /v1/health", health)
	mux.Handle("GET /v1/live", LiveHandler{})
	mux.Handle("GET /metrics", MetricsHandler())
}
