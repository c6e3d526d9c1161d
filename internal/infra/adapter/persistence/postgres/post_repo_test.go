package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/lib/pq"

	"content-api/internal/domain/entity"
	"content-api/internal/infra/adapter/persistence/postgres"
)

var postCols = []string{
	"content_id", "slug", "title", "summary",
	"published_at", "updated_at", "created_at", "external_url", "tags",
}

/* ──────────────────────────── 1. Count + List ──────────────────────────── */

func TestPostRepo_TagsOnlyListing(t *testing.T) {
	t.Parallel()

	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	plan := postgres.NewPostQueryPlanner().Plan(query([]entity.Tag{"go", "rust"}, ""))
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(plan.Count.SQL)).
		WithArgs(pq.Array([]string{"go", "rust"})).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta(plan.Select.SQL)).
		WithArgs(pq.Array([]string{"go", "rust"}), 10, 0).
		WillReturnRows(sqlmock.NewRows(postCols).
			AddRow("c3", "go-and-rust", "Comparing", "Go vs Rust", now, now, now, nil, []byte(`["rust","go"]`)))

	repo := postgres.NewPostRepo(db)
	total, found, err := repo.CountPosts(context.Background(), plan)
	if err != nil || !found || total != 1 {
		t.Fatalf("CountPosts = (%d, %v, %v)", total, found, err)
	}
	posts, err := repo.ListPosts(context.Background(), plan)
	if err != nil {
		t.Fatalf("ListPosts err=%v", err)
	}

	want := []*entity.Post{{
		ContentID: "c3", Slug: "go-and-rust", Title: "Comparing", Summary: "Go vs Rust",
		PublishedAt: now, UpdatedAt: now, CreatedAt: now,
		Tags: []string{"go", "rust"},
	}}
	if diff := cmp.Diff(want, posts); diff != "" {
		t.Fatalf("ListPosts mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPostRepo_ListPosts_QueryError(t *testing.T) {
	t.Parallel()

	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	boom := errors.New("connection refused")
	plan := postgres.NewPostQueryPlanner().Plan(query(nil, ""))
	mock.ExpectQuery(regexp.QuoteMeta(plan.Select.SQL)).WillReturnError(boom)

	_, err := postgres.NewPostRepo(db).ListPosts(context.Background(), plan)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
}

/* ──────────────────────────── 2. GetBySlug ──────────────────────────── */

func TestPostRepo_GetBySlug(t *testing.T) {
	t.Parallel()

	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.published_at <= NOW() AND p.slug = $1")).
		WithArgs("hello").
		WillReturnRows(sqlmock.NewRows(postCols).
			AddRow("c1", "hello", "Hello", "", now, now, now, "https://x.example", []byte(`[]`)))

	got, err := postgres.NewPostRepo(db).GetBySlug(context.Background(), "hello")
	if err != nil || got == nil {
		t.Fatalf("GetBySlug = (%v, %v)", got, err)
	}
	if got.ExternalURL == nil || *got.ExternalURL != "https://x.example" {
		t.Errorf("ExternalURL = %v", got.ExternalURL)
	}
	if got.Tags == nil || len(got.Tags) != 0 {
		t.Errorf("Tags = %#v, want empty non-nil", got.Tags)
	}
}

func TestPostRepo_GetBySlug_NotFound(t *testing.T) {
	t.Parallel()

	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("p.slug = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(postCols))

	got, err := postgres.NewPostRepo(db).GetBySlug(context.Background(), "missing")
	if err != nil || got != nil {
		t.Fatalf("GetBySlug = (%v, %v), want (nil, nil)", got, err)
	}
}

/* ──────────────────────────── 3. Tags ──────────────────────────── */

func TestPostRepo_ListTagCounts(t *testing.T) {
	t.Parallel()

	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY t.name\nORDER BY t.name ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"name", "count"}).
			AddRow("go", int64(3)))

	got, err := postgres.NewPostRepo(db).ListTagCounts(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]entity.TagCount{{Tag: "go", Count: 3}}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestPostRepo_CountPublished_Error(t *testing.T) {
	t.Parallel()

	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("timeout"))

	if _, err := postgres.NewPostRepo(db).CountPublished(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
