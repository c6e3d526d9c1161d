package post

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"content-api/internal/common/pagination"
	"content-api/internal/config"
	"content-api/internal/domain/entity"
	"content-api/internal/handler/http/respond"
	"content-api/internal/infra/adapter/persistence/sqlite"
	"content-api/internal/repository"
	postUC "content-api/internal/usecase/post"
	"content-api/tests/fixtures"
)

const cdnBase = "https://cdn.example.com"

func newMux(t *testing.T) *http.ServeMux {
	t.Helper()
	conn := fixtures.OpenSQLite(t)
	svc := &postUC.Service{
		Repo:    sqlite.NewPostRepo(conn),
		Planner: sqlite.NewPostQueryPlanner(),
		Blob:    fixtures.MemoryBlobs("posts", "md"),
		Content: config.DefaultContentConfig().Content.Posts,
		CDNBase: cdnBase,
	}
	mux := http.NewServeMux()
	Register(mux, svc, pagination.DefaultConfig(), nil)
	return mux
}

func serve(t *testing.T, mux http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode: %v (%s)", err, rr.Body.String())
	}
	return v
}

func slugs(items []ListItemDTO) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Slug)
	}
	return out
}

/* ──────────────────────────── list ──────────────────────────── */

func TestListHandler(t *testing.T) {
	mux := newMux(t)

	tests := []struct {
		name      string
		target    string
		wantSlugs []string
		wantPage  pagination.Metadata
	}{
		{
			name:      "defaults",
			target:    "/v1/posts",
			wantSlugs: []string{"go-and-rust", "rust-notes", "hello-go", "percent"},
			wantPage:  pagination.Metadata{Page: 1, Limit: 10, Total: 4},
		},
		{
			name:      "first page has next",
			target:    "/v1/posts?page=1&limit=2",
			wantSlugs: []string{"go-and-rust", "rust-notes"},
			wantPage:  pagination.Metadata{Page: 1, Limit: 2, Total: 4, HasNext: true},
		},
		{
			name:      "last page",
			target:    "/v1/posts?page=2&limit=2",
			wantSlugs: []string{"hello-go", "percent"},
			wantPage:  pagination.Metadata{Page: 2, Limit: 2, Total: 4},
		},
		{
			name:      "out of range values are clamped",
			target:    "/v1/posts?page=-3&limit=999",
			wantSlugs: []string{"go-and-rust", "rust-notes", "hello-go", "percent"},
			wantPage:  pagination.Metadata{Page: 1, Limit: 50, Total: 4},
		},
		{
			name:      "garbage numbers fall back to defaults",
			target:    "/v1/posts?page=abc&limit=xyz",
			wantSlugs: []string{"go-and-rust", "rust-notes", "hello-go", "percent"},
			wantPage:  pagination.Metadata{Page: 1, Limit: 10, Total: 4},
		},
		{
			name:      "tag filter",
			target:    "/v1/posts?tags=rust",
			wantSlugs: []string{"go-and-rust", "rust-notes"},
			wantPage:  pagination.Metadata{Page: 1, Limit: 10, Total: 2},
		},
		{
			name:      "malformed tags are dropped",
			target:    "/v1/posts?tags=" + "has%20space,testing",
			wantSlugs: []string{"percent"},
			wantPage:  pagination.Metadata{Page: 1, Limit: 10, Total: 1},
		},
		{
			name:      "search treats percent literally",
			target:    "/v1/posts?search=100%25",
			wantSlugs: []string{"percent"},
			wantPage:  pagination.Metadata{Page: 1, Limit: 10, Total: 1},
		},
		{
			name:      "page past the end is empty",
			target:    "/v1/posts?page=9",
			wantSlugs: []string{},
			wantPage:  pagination.Metadata{Page: 9, Limit: 10, Total: 4},
		},
		{
			name:      "sort by title ascending",
			target:    "/v1/posts?sort=title&order=asc",
			wantSlugs: []string{"percent", "go-and-rust", "hello-go", "rust-notes"},
			wantPage:  pagination.Metadata{Page: 1, Limit: 10, Total: 4},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(t, mux, tt.target)
			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
			}
			got := decode[ListResponse](t, rr)
			if diff := cmp.Diff(tt.wantSlugs, slugs(got.Posts)); diff != "" {
				t.Errorf("slugs (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantPage, got.Pagination); diff != "" {
				t.Errorf("pagination (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListHandler_NeverIncludesBodies(t *testing.T) {
	rr := serve(t, newMux(t), "/v1/posts")
	if strings.Contains(rr.Body.String(), `"content"`) {
		t.Fatalf("listing leaked bodies: %s", rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"posts":[`) {
		t.Fatalf("posts must be an array: %s", rr.Body.String())
	}
}

func TestListHandler_SearchTooLong(t *testing.T) {
	rr := serve(t, newMux(t), "/v1/posts?search="+strings.Repeat("a", entity.MaxSearchLength+1))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	body := decode[respond.ErrorBody](t, rr)
	if body.Error.Code != respond.CodeBadRequest || !strings.Contains(body.Error.Message, "search") {
		t.Fatalf("error = %+v", body.Error)
	}
}

/* ──────────────────────────── get ──────────────────────────── */

func TestGetHandler(t *testing.T) {
	mux := newMux(t)

	t.Run("found with rewritten body", func(t *testing.T) {
		rr := serve(t, mux, "/v1/posts/hello-go")
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
		}
		got := decode[DTO](t, rr)
		if got.ContentID != "c1" || got.Title != "Hello Go" {
			t.Fatalf("post = %+v", got)
		}
		if got.Content == nil {
			t.Fatal("content missing")
		}
		if !strings.Contains(*got.Content, "![gopher]("+cdnBase+"/blog/hello-go/gopher.png)") {
			t.Errorf("image not rewritten: %s", *got.Content)
		}
		if !strings.Contains(*got.Content, "[the tour](https://go.dev/tour)") {
			t.Errorf("plain link altered: %s", *got.Content)
		}
		if got.ReadTimeMinutes < 1 {
			t.Errorf("read time = %d", got.ReadTimeMinutes)
		}
		if diff := cmp.Diff([]string{"go", "intro"}, got.Tags); diff != "" {
			t.Errorf("tags (-want +got):\n%s", diff)
		}
	})

	t.Run("missing body omits content", func(t *testing.T) {
		rr := serve(t, mux, "/v1/posts/go-and-rust")
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d", rr.Code)
		}
		if strings.Contains(rr.Body.String(), `"content"`) {
			t.Fatalf("unexpected content: %s", rr.Body.String())
		}
		got := decode[DTO](t, rr)
		if got.ExternalURL == nil || *got.ExternalURL != "https://dev.to/c3" {
			t.Errorf("external_url = %v", got.ExternalURL)
		}
	})

	t.Run("absolute image untouched", func(t *testing.T) {
		got := decode[DTO](t, serve(t, mux, "/v1/posts/percent"))
		if got.Content == nil || !strings.Contains(*got.Content, "(https://cdn.other.example/chart.svg)") {
			t.Fatalf("content = %v", got.Content)
		}
	})

	for _, slug := range []string{"future", "does-not-exist"} {
		t.Run("not found "+slug, func(t *testing.T) {
			rr := serve(t, mux, "/v1/posts/"+slug)
			if rr.Code != http.StatusNotFound {
				t.Fatalf("status = %d, want 404", rr.Code)
			}
			body := decode[respond.ErrorBody](t, rr)
			if body.Error.Code != respond.CodeNotFound || body.Error.Message != "Post not found" {
				t.Fatalf("error = %+v", body.Error)
			}
		})
	}

	t.Run("invalid slug", func(t *testing.T) {
		rr := serve(t, mux, "/v1/posts/bad.slug")
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rr.Code)
		}
		body := decode[respond.ErrorBody](t, rr)
		if body.Error.Message != "Invalid post slug format" {
			t.Fatalf("message = %q", body.Error.Message)
		}
	})
}

/* ──────────────────────────── tags ──────────────────────────── */

func TestTagsHandler(t *testing.T) {
	rr := serve(t, newMux(t), "/v1/tags")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	want := []TagDTO{
		{Tag: "go", Count: 2},
		{Tag: "intro", Count: 1},
		{Tag: "rust", Count: 2},
		{Tag: "testing", Count: 1},
	}
	if diff := cmp.Diff(want, decode[[]TagDTO](t, rr)); diff != "" {
		t.Errorf("tags (-want +got):\n%s", diff)
	}
}

/* ──────────────────────────── store failures ──────────────────────────── */

type failingRepo struct{ err error }

func (f failingRepo) CountPosts(context.Context, repository.QueryPlan) (int64, bool, error) {
	return 0, false, f.err
}
func (f failingRepo) ListPosts(context.Context, repository.QueryPlan) ([]*entity.Post, error) {
	return nil, f.err
}
func (f failingRepo) GetBySlug(context.Context, string) (*entity.Post, error) { return nil, f.err }
func (f failingRepo) ListTagCounts(context.Context) ([]entity.TagCount, error) {
	return nil, f.err
}
func (f failingRepo) CountPublished(context.Context) (int64, error) { return 0, f.err }

func TestHandlers_StoreFailure(t *testing.T) {
	svc := &postUC.Service{
		Repo:    failingRepo{err: errors.New("dial tcp 10.0.0.5:5432: connection refused")},
		Planner: sqlite.NewPostQueryPlanner(),
		Blob:    fixtures.MemoryBlobs("posts", "md"),
	}
	mux := http.NewServeMux()
	Register(mux, svc, pagination.DefaultConfig(), nil)

	tests := []struct {
		target  string
		message string
	}{
		{target: "/v1/posts", message: "Unable to load posts"},
		{target: "/v1/posts/hello-go", message: "Unable to load post"},
		{target: "/v1/tags", message: "Unable to load tags"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rr := serve(t, mux, tt.target)
			if rr.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d, want 500", rr.Code)
			}
			if strings.Contains(rr.Body.String(), "10.0.0.5") {
				t.Fatalf("internal detail leaked: %s", rr.Body.String())
			}
			body := decode[respond.ErrorBody](t, rr)
			if body.Error.Code != respond.CodeInternal || body.Error.Message != tt.message {
				t.Fatalf("error = %+v", body.Error)
			}
		})
	}
}

/* ──────────────────────────── params ──────────────────────────── */

func TestParseListParams(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/v1/posts?tags=go,,rust,bad%21&search=%20%20go%20&sort=title&order=asc&limit=5", nil)
	q := ParseListParams(r, pagination.DefaultConfig())

	if diff := cmp.Diff([]entity.Tag{"go", "rust"}, q.Tags); diff != "" {
		t.Errorf("tags (-want +got):\n%s", diff)
	}
	if q.Search != "go" {
		t.Errorf("search = %q", q.Search)
	}
	if q.SortBy != repository.SortByTitle || q.Order != repository.OrderAsc {
		t.Errorf("sort = %v %v", q.SortBy, q.Order)
	}
	if q.Page != 1 || q.Limit != 5 {
		t.Errorf("page/limit = %d/%d", q.Page, q.Limit)
	}

	many := make([]string, 0, 15)
	for i := 0; i < 15; i++ {
		many = append(many, "t"+strings.Repeat("x", i))
	}
	r = httptest.NewRequest(http.MethodGet, "/v1/posts?tags="+strings.Join(many, ","), nil)
	if got := len(ParseListParams(r, pagination.DefaultConfig()).Tags); got != entity.MaxTagCount {
		t.Errorf("tags kept = %d, want %d", got, entity.MaxTagCount)
	}
}
