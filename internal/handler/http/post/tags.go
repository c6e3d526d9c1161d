package post

import (
	"net/http"

	"content-api/internal/handler/http/respond"
	postUC "content-api/internal/usecase/post"
)

// TagsHandler serves GET /v1/tags.
type TagsHandler struct{ Svc *postUC.Service }

func (h TagsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tags, err := h.Svc.AllTags(r.Context())
	if err != nil {
		respond.SafeError(w, err, "Unable to load tags")
		return
	}

	out := make([]TagDTO, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagDTO{Tag: t.Tag, Count: t.Count})
	}
	respond.JSON(w, http.StatusOK, out)
}
