package resume

import (
	"net/http"
	"strconv"

	"content-api/internal/domain/entity"
	"content-api/internal/handler/http/respond"
	resumeUC "content-api/internal/usecase/resume"
)

// cacheControl lets clients and CDNs keep the document for an hour.
const cacheControl = "public, max-age=3600"

// GetHandler serves GET /v1/resume.
//
// Query parameters, all optional:
//
//	sections=personal,projects  keep only these sections; unknown names are ignored
//	tags=go,sql                 keep tagged entries carrying any of these tags
//	format=minimal              drop long-form fields
//	limit=3                     at most this many entries per section, capped at 100
type GetHandler struct{ Svc *resumeUC.Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Svc.Get(r.Context(), ParseFilter(r))
	if err != nil {
		respond.SafeError(w, err, "Unable to load resume data")
		return
	}
	if doc == nil {
		respond.NotFound(w, "Resume")
		return
	}
	w.Header().Set("Cache-Control", cacheControl)
	respond.JSON(w, http.StatusOK, doc)
}

// ParseFilter reads the resume filters from the query string. Malformed values
// are ignored rather than rejected.
func ParseFilter(r *http.Request) resumeUC.Filter {
	q := r.URL.Query()
	var f resumeUC.Filter

	if q.Has("sections") {
		f.Sections = entity.ParseResumeSections(q.Get("sections"))
	}
	if raw := q.Get("tags"); raw != "" {
		f.Tags = entity.ParseTags(raw)
	}
	f.Minimal = q.Get("format") == "minimal"
	if n, err := strconv.Atoi(q.Get("limit")); err == nil && n >= 0 {
		f.Limit = &n
	}
	return f
}
