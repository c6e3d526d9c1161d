package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"content-api/internal/domain/entity"
	"content-api/internal/repository"
)

type PostRepo struct{ db repository.QueryExecutor }

func NewPostRepo(db repository.QueryExecutor) repository.PostRepository {
	return &PostRepo{db: db}
}

// CountPosts runs plan.Count. A missing row is reported as found=false.
func (repo *PostRepo) CountPosts(ctx context.Context, plan repository.QueryPlan) (int64, bool, error) {
	var total int64
	err := repo.db.QueryRowContext(ctx, plan.Count.SQL, plan.Count.Args...).Scan(&total)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("CountPosts: QueryRowContext: %w", err)
	}
	return total, true, nil
}

func (repo *PostRepo) ListPosts(ctx context.Context, plan repository.QueryPlan) ([]*entity.Post, error) {
	rows, err := repo.db.QueryContext(ctx, plan.Select.SQL, plan.Select.Args...)
	if err != nil {
		return nil, fmt.Errorf("ListPosts: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	posts := make([]*entity.Post, 0, 16)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("ListPosts: Scan: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListPosts: rows.Err: %w", err)
	}
	return posts, nil
}

func (repo *PostRepo) GetBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	const query = `SELECT ` + postColumns + `
FROM posts p
WHERE ` + publishedGate + ` AND p.slug = ?
LIMIT 1`

	post, err := scanPost(repo.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("GetBySlug: QueryRowContext: %w", err)
	}
	return post, nil
}

func (repo *PostRepo) ListTagCounts(ctx context.Context) ([]entity.TagCount, error) {
	const query = `SELECT t.name, COUNT(DISTINCT p.content_id) AS count
FROM tags t
INNER JOIN post_tags pt ON pt.tag_id = t.id
INNER JOIN posts p ON p.content_id = pt.post_id
WHERE ` + publishedGate + `
GROUP BY t.name
ORDER BY t.name ASC`

	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ListTagCounts: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make([]entity.TagCount, 0, 32)
	for rows.Next() {
		var tc entity.TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, fmt.Errorf("ListTagCounts: Scan: %w", err)
		}
		counts = append(counts, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListTagCounts: rows.Err: %w", err)
	}
	return counts, nil
}

func (repo *PostRepo) CountPublished(ctx context.Context) (int64, error) {
	var total int64
	err := repo.db.QueryRowContext(ctx, countTemplates[repository.NoFilters]).Scan(&total)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("CountPublished: QueryRowContext: %w", err)
	}
	return total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*entity.Post, error) {
	var (
		post        entity.Post
		externalURL sql.NullString
		tags        []byte
	)
	err := row.Scan(
		&post.ContentID, &post.Slug, &post.Title, &post.Summary,
		textTime{&post.PublishedAt}, textTime{&post.UpdatedAt}, textTime{&post.CreatedAt},
		&externalURL, &tags,
	)
	if err != nil {
		return nil, err
	}
	if externalURL.Valid {
		post.ExternalURL = &externalURL.String
	}
	if post.Tags, err = decodeTagArray(tags); err != nil {
		return nil, err
	}
	return &post, nil
}
