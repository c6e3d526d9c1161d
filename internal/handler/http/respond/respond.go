// Package respond writes JSON responses and maps core errors onto the API's error body:
//
//	{"error":{"code":"NOT_FOUND","message":"Post not found"}}
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"content-api/internal/domain/entity"
	"content-api/internal/resilience/circuitbreaker"
)

// Error codes carried in the error body.
const (
	CodeBadRequest         = "BAD_REQUEST"
	CodeNotFound           = "NOT_FOUND"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeTooManyRequests    = "TOO_MANY_REQUESTS"
	CodeInternal           = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeGatewayTimeout     = "GATEWAY_TIMEOUT"
)

// APIError is the inner object of an error response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorBody is the envelope of every error response.
type ErrorBody struct {
	Error APIError `json:"error"`
}

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// headers are already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes an error body with the given status and code.
func Error(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, ErrorBody{Error: APIError{Code: code, Message: message}})
}

// NotFound writes 404 "<resource> not found".
func NotFound(w http.ResponseWriter, resource string) {
	Error(w, http.StatusNotFound, CodeNotFound, resource+" not found")
}

// BadRequest writes 400 with message.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, CodeBadRequest, message)
}

// SafeError maps err onto a response without leaking internals.
// Validation errors return their message with 400. An open circuit breaker
// returns 503. Everything else is logged (sanitized) and answered with 500
// and userMsg.
func SafeError(w http.ResponseWriter, err error, userMsg string) {
	if err == nil {
		return
	}

	var verr *entity.ValidationError
	if errors.As(err, &verr) {
		BadRequest(w, verr.Message)
		return
	}
	if errors.Is(err, entity.ErrNotFound) {
		Error(w, http.StatusNotFound, CodeNotFound, userMsg)
		return
	}

	status, code := http.StatusInternalServerError, CodeInternal
	if circuitbreaker.IsOpenStateError(err) {
		status, code = http.StatusServiceUnavailable, CodeServiceUnavailable
	}
	slog.Default().Error("request failed",
		slog.Int("code", status),
		slog.String("user_message", userMsg),
		slog.String("error", SanitizeError(err)))
	Error(w, status, code, userMsg)
}
