package post

import (
	"log/slog"
	"net/http"

	"content-api/internal/common/pagination"
	postUC "content-api/internal/usecase/post"
)

// Register mounts the post and tag routes on mux.
func Register(mux *http.ServeMux, svc *postUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET /v1/posts", ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("GET /v1/posts/{slug}", GetHandler{Svc: svc})
	mux.Handle("GET /v1/tags", TagsHandler{Svc: svc})
}
