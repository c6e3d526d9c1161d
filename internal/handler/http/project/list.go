package project

import (
	"net/http"

	"content-api/internal/handler/http/respond"
	projectUC "content-api/internal/usecase/project"
)

// ListHandler serves GET /v1/projects, most recently updated first.
type ListHandler struct{ Svc *projectUC.Service }

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Svc.List(r.Context())
	if err != nil {
		respond.SafeError(w, err, "Unable to load projects")
		return
	}

	out := make([]DTO, 0, len(projects))
	for _, p := range projects {
		out = append(out, toDTO(p))
	}
	respond.JSON(w, http.StatusOK, ListResponse{Projects: out})
}
