// Package fixtures provides a small, fully published content catalog for
// integration tests and local development: metadata rows for the relational
// store and matching bodies for the blob store.
package fixtures

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"content-api/internal/infra/blob"
	"content-api/internal/infra/db"
)

// SeedSQL inserts the catalog. It is valid for both the SQLite and PostgreSQL schemas.
//
// Visible posts, newest first: go-and-rust, rust-notes, hello-go, percent.
// "future" is scheduled and must never be served.
const SeedSQL = `
INSERT INTO posts (content_id, slug, title, summary, published_at, updated_at, created_at, external_url) VALUES
  ('c1', 'hello-go',    'Hello Go',      'an introduction',        '2024-01-10T00:00:00Z', '2024-01-10T00:00:00Z', '2024-01-10T00:00:00Z', NULL),
  ('c2', 'rust-notes',  'Rust Notes',    'borrow checker',         '2024-02-01T00:00:00Z', '2024-02-01T00:00:00Z', '2024-02-01T00:00:00Z', NULL),
  ('c3', 'go-and-rust', 'Comparing',     'Go vs Rust',             '2024-03-01T00:00:00Z', '2024-03-02T00:00:00Z', '2024-03-01T00:00:00Z', 'https://dev.to/c3'),
  ('c4', 'future',      'Future Go',     'not yet',                '2999-01-01T00:00:00Z', '2999-01-01T00:00:00Z', '2024-01-01T00:00:00Z', NULL),
  ('c5', 'percent',     '100% Coverage', 'testing all_the things', '2023-12-01T00:00:00Z', '2023-12-01T00:00:00Z', '2023-12-01T00:00:00Z', NULL);
INSERT INTO tags (id, name) VALUES (1, 'go'), (2, 'rust'), (3, 'intro'), (4, 'testing'), (5, 'orphan'), (6, 'scheduled');
INSERT INTO post_tags (post_id, tag_id) VALUES
  ('c1', 1), ('c1', 3),
  ('c2', 2),
  ('c3', 1), ('c3', 2),
  ('c4', 1), ('c4', 6),
  ('c5', 4);
INSERT INTO projects (id, slug, name, description, stage, open_to_contributors, readme_url, tags, urls, created_at, updated_at) VALUES
  ('p1', 'old', 'Old', '', 'archived', FALSE, '', '["go"]', '[]', '2022-01-01T00:00:00Z', '2022-06-01T00:00:00Z'),
  ('p2', 'new', 'New', 'fresh', 'alpha', TRUE, 'https://new.example/README.md', '["rust","wasm"]', '[{"label":"Site","url":"https://new.example"}]', '2024-01-01T00:00:00Z', '2024-06-01T00:00:00Z');
`

// Body is a post body keyed by content ID.
type Body struct {
	ContentID string
	Text      string
}

// Bodies are stored under posts/<content_id>.md. c3 deliberately has none.
var Bodies = []Body{
	{ContentID: "c1", Text: "# Hello Go\n\n![gopher](./gopher.png)\n\nSee [the tour](https://go.dev/tour).\n"},
	{ContentID: "c2", Text: GenerateBody(450)},
	{ContentID: "c4", Text: "scheduled body"},
	{ContentID: "c5", Text: "# 100%\n\n![chart](https://cdn.other.example/chart.svg)\n"},
}

// Seed applies the schema for driver and inserts SeedSQL.
func Seed(ctx context.Context, conn *sql.DB, driver string) error {
	if err := db.ApplySchema(ctx, conn, driver); err != nil {
		return err
	}
	_, err := conn.ExecContext(ctx, SeedSQL)
	return err
}

// OpenSQLite returns a seeded in-memory SQLite database closed at test cleanup.
func OpenSQLite(tb testing.TB) *sql.DB {
	tb.Helper()

	ctx := context.Background()
	conn, err := db.Open(ctx, db.DriverSQLite, ":memory:")
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	tb.Cleanup(func() { _ = conn.Close() })

	if err := Seed(ctx, conn, db.DriverSQLite); err != nil {
		tb.Fatalf("seed: %v", err)
	}
	return conn
}

// MemoryBlobs returns a blob store holding Bodies under namespace/<id>.ext.
func MemoryBlobs(namespace, ext string) *blob.MemoryStore {
	store := blob.NewMemoryStore()
	for _, b := range Bodies {
		store.Put(namespace+"/"+b.ContentID+"."+ext, b.Text)
	}
	return store
}

// ResumeKey is where the default content config looks for the resume.
const ResumeKey = "resume/resume.json"

// ResumeJSON has two tagged entries per list section, except education which carries no tags.
const ResumeJSON = `{
  "$schema": "https://example.com/resume.schema.json",
  "personal": {"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com", "phone": "", "location": "London", "website": "https://ada.example", "github": "ada", "linkedin": "ada"},
  "experience": [
    {"title": "Backend Engineer", "organization": "Acme", "startDate": "2022-01", "description": "Go services", "bullets": ["built the API"], "tags": ["go", "sql"]},
    {"title": "Intern", "organization": "Initech", "startDate": "2020-06", "endDate": "2020-09", "bullets": ["scripts"], "tags": ["python"]}
  ],
  "education": [
    {"institution": "University", "degree": "BSc", "minors": ["Math"], "location": "London", "startDate": "2016", "endDate": "2020", "gpa": "3.9"}
  ],
  "projects": [
    {"title": "content-api", "date": "2024", "status": "active", "github": "https://github.com/ada/content-api", "description": "This API", "bullets": ["sqlite and postgres"], "tags": ["go"], "featured": true},
    {"title": "site", "date": "2023", "status": "done", "description": "Static site", "tags": ["js"]}
  ],
  "extracurricular": [
    {"title": "Go meetup", "type": "community", "organization": "Gophers", "dates": "2021-", "achievements": ["ran 12 talks"], "description": "organizer", "tags": ["go"]},
    {"title": "Chess club", "type": "club", "organization": "Uni", "dates": "2016-2020", "tags": ["chess"]}
  ]
}`

// ResumeBlobs returns a blob store holding ResumeJSON under ResumeKey.
func ResumeBlobs() *blob.MemoryStore {
	store := blob.NewMemoryStore()
	store.Put(ResumeKey, ResumeJSON)
	return store
}

// GenerateBody returns a Markdown paragraph of exactly words words.
func GenerateBody(words int) string {
	vocab := []string{"content", "served", "from", "object", "storage", "with", "metadata", "in", "sql"}
	var b strings.Builder
	b.WriteString("# Generated\n\n")
	for i := 0; i < words; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(vocab[i%len(vocab)])
	}
	b.WriteByte('\n')
	return b.String()
}
