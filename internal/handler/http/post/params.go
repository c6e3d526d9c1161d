package post

import (
	"net/http"
	"strings"

	"content-api/internal/common/pagination"
	"content-api/internal/domain/entity"
	"content-api/internal/repository"
)

// ParseListParams reads page, limit, tags, search, sort and order from the query string.
// Nothing here rejects a request: bad numbers fall back to defaults, out-of-range
// numbers are clamped, malformed tags are dropped, and unknown sort values take the
// defaults. Only an over-long search term fails later, in the service.
func ParseListParams(r *http.Request, cfg pagination.Config) repository.ListingQuery {
	p := pagination.ParseQueryParams(r, cfg)
	values := r.URL.Query()

	q := repository.DefaultListingQuery()
	q.Page, q.Limit = p.Page, p.Limit
	if raw := values.Get("tags"); raw != "" {
		if tags := entity.ParseTags(raw); len(tags) > 0 {
			q.Tags = tags
		}
	}
	q.Search = strings.TrimSpace(values.Get("search"))
	q.SortBy = repository.ParseSortField(values.Get("sort"))
	q.Order = repository.ParseSortOrder(values.Get("order"))
	return q
}
