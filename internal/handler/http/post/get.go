package post

import (
	"net/http"

	"content-api/internal/domain/entity"
	"content-api/internal/handler/http/respond"
	postUC "content-api/internal/usecase/post"
)

// GetHandler serves GET /v1/posts/{slug}.
type GetHandler struct{ Svc *postUC.Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if err := entity.ValidateSlug(slug); err != nil {
		respond.BadRequest(w, "Invalid post slug format")
		return
	}

	p, err := h.Svc.GetFull(r.Context(), slug)
	if err != nil {
		respond.SafeError(w, err, "Unable to load post")
		return
	}
	if p == nil {
		respond.NotFound(w, "Post")
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(p))
}
