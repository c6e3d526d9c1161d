package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"content-api/internal/domain/entity"
	"content-api/internal/infra/adapter/persistence/sqlite"
)

var projectCols = []string{
	"id", "slug", "name", "description", "stage", "open_to_contributors",
	"readme_url", "tags", "urls", "created_at", "updated_at",
}

func TestProjectRepo_List(t *testing.T) {
	t.Parallel()

	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT .* FROM projects\\s+ORDER BY updated_at DESC").
		WillReturnRows(sqlmock.NewRows(projectCols).
			AddRow("p1", "feedline", "Feedline", "RSS reader", "beta", int64(1),
				"https://example.com/readme", `["rust","cli"]`,
				`[{"label":"GitHub","url":"https://github.com/x/feedline"}]`,
				"2024-01-01T00:00:00Z", "2024-05-01T00:00:00Z").
			AddRow("p2", "notes", "Notes", "", "idea", int64(0), "", `[]`, `[]`,
				"2023-01-01T00:00:00Z", "2023-01-02T00:00:00Z"))

	got, err := sqlite.NewProjectRepo(db).List(context.Background())
	if err != nil {
		t.Fatalf("List err=%v", err)
	}

	want := []*entity.Project{
		{
			ID: "p1", Slug: "feedline", Name: "Feedline", Description: "RSS reader", Stage: "beta",
			OpenToContributors: true, ReadmeURL: "https://example.com/readme",
			Tags:      []string{"rust", "cli"},
			URLs:      []entity.ProjectURL{{Label: "GitHub", URL: "https://github.com/x/feedline"}},
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "p2", Slug: "notes", Name: "Notes", Stage: "idea",
			Tags: []string{}, URLs: []entity.ProjectURL{},
			CreatedAt: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("List mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestProjectRepo_GetBySlug_NotFound(t *testing.T) {
	t.Parallel()

	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("WHERE slug = \\?").
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(projectCols))

	got, err := sqlite.NewProjectRepo(db).GetBySlug(context.Background(), "nope")
	if err != nil || got != nil {
		t.Fatalf("GetBySlug = (%v, %v), want (nil, nil)", got, err)
	}
}

func TestProjectRepo_GetBySlug_BadURLs(t *testing.T) {
	t.Parallel()

	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("WHERE slug = \\?").
		WithArgs("broken").
		WillReturnRows(sqlmock.NewRows(projectCols).
			AddRow("p3", "broken", "Broken", "", "", int64(0), "", `[]`, `{not json`,
				"2024-01-01T00:00:00Z", "2024-01-01T00:00:00Z"))

	if _, err := sqlite.NewProjectRepo(db).GetBySlug(context.Background(), "broken"); err == nil {
		t.Fatal("expected decode error")
	}
}
