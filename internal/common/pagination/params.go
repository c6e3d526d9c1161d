package pagination

import (
	"net/http"
	"strconv"
)

// Params represents pagination query parameters from an HTTP request.
type Params struct {
	Page  int // 1-based page number
	Limit int // Items per page
}

// ParseQueryParams reads page and limit from the query string.
//
// Parsing is lenient: missing or non-numeric values take the configured defaults,
// and numeric values outside the allowed range are clamped rather than rejected.
func ParseQueryParams(r *http.Request, cfg Config) Params {
	params := Params{
		Page:  cfg.DefaultPage,
		Limit: cfg.DefaultLimit,
	}

	q := r.URL.Query()
	if pageStr := q.Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil {
			params.Page = page
		}
	}
	if limitStr := q.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			params.Limit = limit
		}
	}

	params.Page, params.Limit = Clamp(params.Page, params.Limit, cfg)
	return params
}
