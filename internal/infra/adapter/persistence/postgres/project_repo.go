package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"content-api/internal/domain/entity"
	"content-api/internal/repository"
)

const projectColumns = `id, slug, name, description, stage, open_to_contributors, readme_url, tags, urls, created_at, updated_at`

type ProjectRepo struct{ db repository.QueryExecutor }

func NewProjectRepo(db repository.QueryExecutor) repository.ProjectRepository {
	return &ProjectRepo{db: db}
}

func (repo *ProjectRepo) List(ctx context.Context) ([]*entity.Project, error) {
	const query = `SELECT ` + projectColumns + `
FROM projects
ORDER BY updated_at DESC, slug ASC`

	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	projects := make([]*entity.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: rows.Err: %w", err)
	}
	return projects, nil
}

func (repo *ProjectRepo) GetBySlug(ctx context.Context, slug string) (*entity.Project, error) {
	const query = `SELECT ` + projectColumns + `
FROM projects
WHERE slug = $1
LIMIT 1`

	p, err := scanProject(repo.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("GetBySlug: QueryRowContext: %w", err)
	}
	return p, nil
}

func scanProject(row rowScanner) (*entity.Project, error) {
	var (
		p          entity.Project
		tags, urls []byte
	)
	err := row.Scan(
		&p.ID, &p.Slug, &p.Name, &p.Description, &p.Stage, &p.OpenToContributors, &p.ReadmeURL,
		&tags, &urls, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &p.Tags); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
	}
	if len(urls) > 0 {
		if err := json.Unmarshal(urls, &p.URLs); err != nil {
			return nil, fmt.Errorf("decode urls: %w", err)
		}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.URLs == nil {
		p.URLs = []entity.ProjectURL{}
	}
	return &p, nil
}
