package post

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"content-api/internal/common/pagination"
	"content-api/internal/domain/entity"
	"content-api/internal/handler/http/requestid"
	"content-api/internal/handler/http/respond"
	"content-api/internal/observability/logging"
	postUC "content-api/internal/usecase/post"
)

// ListHandler serves GET /v1/posts.
type ListHandler struct {
	Svc           *postUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, logging.OrDefault(h.Logger))

	q := ParseListParams(r, h.PaginationCfg)

	result, err := h.Svc.List(ctx, q)
	if err != nil {
		errorType := "store"
		if errors.Is(err, entity.ErrValidationFailed) {
			errorType = "validation"
		}
		pagination.LogError(logger, reqID, pagination.Params{Page: q.Page, Limit: q.Limit}, err, errorType)
		pagination.RecordError(errorType)
		respond.SafeError(w, err, "Unable to load posts")
		return
	}

	items := make([]ListItemDTO, 0, len(result.Items))
	for _, p := range result.Items {
		items = append(items, toListItem(p))
	}

	duration := time.Since(start)
	pagination.RecordRequest(http.StatusOK, result.Pagination.Page)
	pagination.RecordDuration("handler", duration.Seconds())
	pagination.LogResponse(logger, reqID, result.Pagination, len(items), duration, http.StatusOK)

	respond.JSON(w, http.StatusOK, ListResponse{Posts: items, Pagination: result.Pagination})
}
