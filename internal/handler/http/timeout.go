package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"content-api/internal/handler/http/respond"
)

// Timeout returns middleware that bounds request handling to d. When d elapses
// first the client gets 504 with the standard error body, the request context is
// canceled, and anything the handler writes afterwards is discarded.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			r = r.WithContext(ctx)

			done := make(chan struct{})
			tw := &timeoutResponseWriter{ResponseWriter: w}

			// a panic in the handler goroutine is re-raised here so Recover sees it
			panicChan := make(chan any, 1)
			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicChan <- p
					}
				}()
				next.ServeHTTP(tw, r)
				close(done)
			}()

			select {
			case p := <-panicChan:
				panic(p)
			case <-done:
			case <-ctx.Done():
				tw.mu.Lock()
				tw.timedOut = true
				if !tw.written {
					respond.Error(w, http.StatusGatewayTimeout, respond.CodeGatewayTimeout, "Request timed out")
				}
				tw.mu.Unlock()
			}
		})
	}
}

// timeoutResponseWriter drops writes once the deadline response has been sent.
type timeoutResponseWriter struct {
	http.ResponseWriter
	mu       sync.Mutex
	timedOut bool
	written  bool
}

func (w *timeoutResponseWriter) WriteHeader(statusCode int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.timedOut && !w.written {
		w.written = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

func (w *timeoutResponseWriter) Write(data []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if !w.written {
		w.written = true
		w.ResponseWriter.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(data)
}
