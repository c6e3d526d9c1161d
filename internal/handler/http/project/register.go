package project

import (
	"net/http"

	projectUC "content-api/internal/usecase/project"
)

// Register mounts the project routes on mux.
func Register(mux *http.ServeMux, svc *projectUC.Service) {
	mux.Handle("GET /v1/projects", ListHandler{Svc: svc})
	mux.Handle("GET /v1/projects/{slug}", GetHandler{Svc: svc})
}
