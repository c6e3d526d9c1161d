// Package middleware provides cross-origin, rate limiting and security header middleware for the read-only API.
package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig configures the CORS middleware.
type CORSConfig struct {
	// Validator decides which origins receive CORS headers.
	Validator OriginValidator

	AllowedMethods []string
	AllowedHeaders []string
	ExposedHeaders []string

	// MaxAge is the preflight cache lifetime in seconds.
	MaxAge int

	// Logger receives rejected-origin warnings and preflight debug lines. Optional.
	Logger *slog.Logger
}

// DefaultCORSConfig allows GET and OPTIONS from origins, caching preflights for a day.
func DefaultCORSConfig(origins []string) CORSConfig {
	return CORSConfig{
		Validator:      NewOriginValidator(origins),
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "X-Trace-Id"},
		MaxAge:         86400,
	}
}

// CORS sets Access-Control-* headers for allowed origins and answers preflights with 204.
// Requests from other origins pass through without CORS headers, so browsers block them.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	methods := strings.Join(config.AllowedMethods, ", ")
	headers := strings.Join(config.AllowedHeaders, ", ")
	exposed := strings.Join(config.ExposedHeaders, ", ")
	maxAge := strconv.Itoa(config.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Add("Vary", "Origin")

			if config.Validator == nil || !config.Validator.IsAllowed(origin) {
				if config.Logger != nil {
					config.Logger.Warn("CORS: origin not allowed",
						slog.String("origin", origin),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method))
				}
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			if exposed != "" {
				w.Header().Set("Access-Control-Expose-Headers", exposed)
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", maxAge)
				if config.Logger != nil {
					config.Logger.Debug("CORS: preflight request",
						slog.String("origin", origin),
						slog.String("requested_method", r.Header.Get("Access-Control-Request-Method")))
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
