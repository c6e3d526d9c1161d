package repository

import (
	"context"
	"database/sql"

	"content-api/internal/domain/entity"
)

// QueryExecutor is the slice of *sql.DB the repositories need.
// *sql.DB and *circuitbreaker.DBCircuitBreaker both satisfy it.
type QueryExecutor interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PostRepository reads post metadata from the relational store.
type PostRepository interface {
	// CountPosts runs plan.Count. found is false when the store returned no row.
	CountPosts(ctx context.Context, plan QueryPlan) (total int64, found bool, err error)
	// ListPosts runs plan.Select. Returned posts have no Content.
	ListPosts(ctx context.Context, plan QueryPlan) ([]*entity.Post, error)
	// GetBySlug returns (nil, nil) if no item has the slug.
	GetBySlug(ctx context.Context, slug string) (*entity.Post, error)
	// ListTagCounts returns one row per tag with at least one published item, ordered by name.
	ListTagCounts(ctx context.Context) ([]entity.TagCount, error)
	// CountPublished returns the number of published items.
	CountPublished(ctx context.Context) (int64, error)
}

// ProjectRepository reads the project catalog.
type ProjectRepository interface {
	List(ctx context.Context) ([]*entity.Project, error)
	// GetBySlug returns (nil, nil) if no project has the slug.
	GetBySlug(ctx context.Context, slug string) (*entity.Project, error)
}
