// Package postgres implements the repository interfaces for PostgreSQL.
package postgres

import (
	"github.com/lib/pq"

	"content-api/internal/domain/entity"
	"content-api/internal/pkg/search"
	"content-api/internal/repository"
)

// publishedGate hides scheduled items. It is the first predicate of every post query.
const publishedGate = `p.published_at <= NOW()`

const postColumns = `p.content_id, p.slug, p.title, p.summary, p.published_at, p.updated_at, p.created_at, p.external_url,
       COALESCE((SELECT json_agg(DISTINCT t.name ORDER BY t.name)
                   FROM post_tags pt
                   INNER JOIN tags t ON t.id = pt.tag_id
                  WHERE pt.post_id = p.content_id), '[]'::json) AS tags`

const tagJoin = `
INNER JOIN post_tags pt ON pt.post_id = p.content_id
INNER JOIN tags t ON t.id = pt.tag_id`

func tagSemiJoin(match string) string {
	return `p.content_id IN (SELECT pt.post_id FROM post_tags pt INNER JOIN tags t ON t.id = pt.tag_id WHERE ` + match + `)`
}

// Placeholder numbers are fixed per shape: tags first, then the search term twice,
// then LIMIT and OFFSET.
const (
	tagMatch1  = `t.name = ANY($1)`
	search12   = `(p.title ILIKE $1 ESCAPE '\' OR p.summary ILIKE $2 ESCAPE '\')`
	search23   = `(p.title ILIKE $2 ESCAPE '\' OR p.summary ILIKE $3 ESCAPE '\')`
	fromPosts  = "\nFROM posts p\nWHERE " + publishedGate
	countPlain = `SELECT COUNT(*) FROM posts p
WHERE ` + publishedGate
	countJoined = `SELECT COUNT(DISTINCT p.content_id) FROM posts p` + tagJoin + `
WHERE ` + publishedGate
)

var countTemplates = map[repository.FilterShape]string{
	repository.NoFilters:     countPlain,
	repository.TagsOnly:      countJoined + ` AND ` + tagMatch1,
	repository.SearchOnly:    countPlain + ` AND ` + search12,
	repository.TagsAndSearch: countJoined + ` AND ` + tagMatch1 + ` AND ` + search23,
}

var selectTemplates = map[repository.FilterShape]string{
	repository.NoFilters:     `SELECT ` + postColumns + fromPosts,
	repository.TagsOnly:      `SELECT ` + postColumns + fromPosts + ` AND ` + tagSemiJoin(tagMatch1),
	repository.SearchOnly:    `SELECT ` + postColumns + fromPosts + ` AND ` + search12,
	repository.TagsAndSearch: `SELECT ` + postColumns + fromPosts + ` AND ` + tagSemiJoin(tagMatch1) + ` AND ` + search23,
}

var pageClauses = map[repository.FilterShape]string{
	repository.NoFilters:     "\nLIMIT $1 OFFSET $2",
	repository.TagsOnly:      "\nLIMIT $2 OFFSET $3",
	repository.SearchOnly:    "\nLIMIT $3 OFFSET $4",
	repository.TagsAndSearch: "\nLIMIT $4 OFFSET $5",
}

// PostQueryPlanner renders listing queries in the PostgreSQL dialect.
// Tags are bound as a text[] via pq.Array.
type PostQueryPlanner struct{}

func NewPostQueryPlanner() *PostQueryPlanner {
	return &PostQueryPlanner{}
}

// Plan implements repository.ListingPlanner. q is normalized first.
func (PostQueryPlanner) Plan(q repository.ListingQuery) repository.QueryPlan {
	q = q.Normalize()
	shape := repository.ShapeOf(q)

	var args []any
	if shape == repository.TagsOnly || shape == repository.TagsAndSearch {
		args = append(args, pq.Array(entity.TagStrings(q.Tags)))
	}
	if shape == repository.SearchOnly || shape == repository.TagsAndSearch {
		pattern := search.EscapeLike(q.Search)
		args = append(args, pattern, pattern)
	}

	selectArgs := make([]any, 0, len(args)+2)
	selectArgs = append(selectArgs, args...)
	selectArgs = append(selectArgs, q.Limit, q.Offset())

	order := "\nORDER BY p." + q.SortBy.Column() + " " + q.Order.Keyword() + ", p.slug ASC"
	return repository.QueryPlan{
		Shape:  shape,
		Count:  repository.Statement{SQL: countTemplates[shape], Args: args},
		Select: repository.Statement{SQL: selectTemplates[shape] + order + pageClauses[shape], Args: selectArgs},
	}
}
