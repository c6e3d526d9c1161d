package pagination

import (
	"log/slog"
	"time"
)

// LogResponse logs a listing response with duration and status.
func LogResponse(logger *slog.Logger, requestID string, meta Metadata, returnedCount int, duration time.Duration, statusCode int) {
	logger.Info("paginated response",
		"request_id", requestID,
		"page", meta.Page,
		"limit", meta.Limit,
		"total", meta.Total,
		"has_next", meta.HasNext,
		"returned_count", returnedCount,
		"duration_ms", duration.Milliseconds(),
		"status", statusCode)
}

// LogError logs a listing error with structured fields.
func LogError(logger *slog.Logger, requestID string, params Params, err error, errorType string) {
	logger.Error("pagination error",
		"request_id", requestID,
		"page", params.Page,
		"limit", params.Limit,
		"error", err.Error(),
		"error_type", errorType)
}
