package http

import (
	"net/http"

	"content-api/internal/handler/http/respond"
)

// Input limits. The API is read-only, so request bodies are never read.
const (
	MaxPathLength  = 2048
	MaxQueryLength = 4096
)

// InputValidation returns middleware that rejects oversized URIs with 414 and
// non-GET/OPTIONS/HEAD methods with 405.
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.URL.Path) > MaxPathLength || len(r.URL.RawQuery) > MaxQueryLength {
				respond.Error(w, http.StatusRequestURITooLong, respond.CodeBadRequest, "URI too long")
				return
			}
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
			default:
				w.Header().Set("Allow", "GET, HEAD, OPTIONS")
				respond.Error(w, http.StatusMethodNotAllowed, respond.CodeMethodNotAllowed, "Method not allowed")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
