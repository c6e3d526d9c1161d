// Package resume provides the HTTP handler for the resume document.
package resume

import (
	"net/http"

	resumeUC "content-api/internal/usecase/resume"
)

// Register mounts the resume route on mux.
func Register(mux *http.ServeMux, svc *resumeUC.Service) {
	mux.Handle("GET /v1/resume", GetHandler{Svc: svc})
}
