package project

import (
	"net/http"

	"content-api/internal/domain/entity"
	"content-api/internal/handler/http/respond"
	projectUC "content-api/internal/usecase/project"
)

// GetHandler serves GET /v1/projects/{slug}.
type GetHandler struct{ Svc *projectUC.Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if err := entity.ValidateSlug(slug); err != nil {
		respond.BadRequest(w, "Invalid project slug format")
		return
	}

	p, err := h.Svc.Get(r.Context(), slug)
	if err != nil {
		respond.SafeError(w, err, "Unable to load project")
		return
	}
	if p == nil {
		respond.NotFound(w, "Project")
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(p))
}
