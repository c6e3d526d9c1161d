package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sony/gobreaker"

	"content-api/internal/domain/entity"
)

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) APIError {
	t.Helper()
	var body ErrorBody
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v (%s)", err, rr.Body.String())
	}
	return body.Error
}

func TestJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	JSON(rr, http.StatusOK, map[string]string{"message": "ok"})

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q", ct)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != `{"message":"ok"}` {
		t.Fatalf("body = %s", got)
	}

	rr = httptest.NewRecorder()
	JSON(rr, http.StatusNoContent, nil)
	if rr.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rr.Body.String())
	}
}

func TestErrorShape(t *testing.T) {
	rr := httptest.NewRecorder()
	NotFound(rr, "Post")

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != `{"error":{"code":"NOT_FOUND","message":"Post not found"}}` {
		t.Fatalf("body = %s", got)
	}
}

/* ───────── SafeError ───────── */

func TestSafeError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "validation error",
			err:        fmt.Errorf("list: %w", &entity.ValidationError{Field: "tags", Message: "at most 10 tags may be given"}),
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeBadRequest,
			wantMsg:    "at most 10 tags may be given",
		},
		{
			name:       "not found sentinel",
			err:        entity.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   CodeNotFound,
			wantMsg:    "Unable to load posts",
		},
		{
			name:       "internal error hides details",
			err:        errors.New("pq: password authentication failed for user app"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   CodeInternal,
			wantMsg:    "Unable to load posts",
		},
		{
			name:       "open circuit",
			err:        fmt.Errorf("store count_posts: %w", gobreaker.ErrOpenState),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   CodeServiceUnavailable,
			wantMsg:    "Unable to load posts",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			SafeError(rr, tt.err, "Unable to load posts")

			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			got := decodeError(t, rr)
			if got.Code != tt.wantCode || got.Message != tt.wantMsg {
				t.Fatalf("error = %+v, want code=%s message=%q", got, tt.wantCode, tt.wantMsg)
			}
		})
	}
}

func TestSafeError_Nil(t *testing.T) {
	rr := httptest.NewRecorder()
	SafeError(rr, nil, "x")
	if rr.Body.Len() != 0 {
		t.Fatalf("expected no body, got %q", rr.Body.String())
	}
}
