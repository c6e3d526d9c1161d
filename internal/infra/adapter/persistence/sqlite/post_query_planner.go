// Package sqlite implements the repository interfaces for SQLite and D1-compatible stores.
package sqlite

import (
	"encoding/json"

	"content-api/internal/domain/entity"
	"content-api/internal/pkg/search"
	"content-api/internal/repository"
)

// publishedGate hides scheduled items. It is the first predicate of every post query.
const publishedGate = `datetime(p.published_at) <= datetime('now')`

const postColumns = `p.content_id, p.slug, p.title, p.summary, p.published_at, p.updated_at, p.created_at, p.external_url,
       (SELECT json_group_array(DISTINCT t.name)
          FROM post_tags pt
          INNER JOIN tags t ON t.id = pt.tag_id
         WHERE pt.post_id = p.content_id) AS tags`

const (
	tagJoin = `
INNER JOIN post_tags pt ON pt.post_id = p.content_id
INNER JOIN tags t ON t.id = pt.tag_id`
	tagMatch     = `t.name IN (SELECT value FROM json_each(?))`
	tagSemiJoin  = `p.content_id IN (SELECT pt.post_id FROM post_tags pt INNER JOIN tags t ON t.id = pt.tag_id WHERE ` + tagMatch + `)`
	searchFilter = `(p.title LIKE ? ESCAPE '\' OR p.summary LIKE ? ESCAPE '\')`
)

// countTemplates and selectTemplates hold one fixed statement per filter shape.
// Only bound values vary between requests.
var countTemplates = map[repository.FilterShape]string{
	repository.NoFilters: `SELECT COUNT(*) FROM posts p
WHERE ` + publishedGate,
	repository.TagsOnly: `SELECT COUNT(DISTINCT p.content_id) FROM posts p` + tagJoin + `
WHERE ` + publishedGate + ` AND ` + tagMatch,
	repository.SearchOnly: `SELECT COUNT(*) FROM posts p
WHERE ` + publishedGate + ` AND ` + searchFilter,
	repository.TagsAndSearch: `SELECT COUNT(DISTINCT p.content_id) FROM posts p` + tagJoin + `
WHERE ` + publishedGate + ` AND ` + tagMatch + ` AND ` + searchFilter,
}

var selectTemplates = map[repository.FilterShape]string{
	repository.NoFilters: `SELECT ` + postColumns + `
FROM posts p
WHERE ` + publishedGate,
	repository.TagsOnly: `SELECT ` + postColumns + `
FROM posts p
WHERE ` + publishedGate + ` AND ` + tagSemiJoin,
	repository.SearchOnly: `SELECT ` + postColumns + `
FROM posts p
WHERE ` + publishedGate + ` AND ` + searchFilter,
	repository.TagsAndSearch: `SELECT ` + postColumns + `
FROM posts p
WHERE ` + publishedGate + ` AND ` + tagSemiJoin + ` AND ` + searchFilter,
}

// PostQueryPlanner renders listing queries in the SQLite dialect.
// Tags are bound as one JSON array and expanded with json_each.
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
		args = append(args, tagArrayParam(q.Tags))
	}
	if shape == repository.SearchOnly || shape == repository.TagsAndSearch {
		pattern := search.EscapeLike(q.Search)
		args = append(args, pattern, pattern)
	}

	selectArgs := make([]any, 0, len(args)+2)
	selectArgs = append(selectArgs, args...)
	selectArgs = append(selectArgs, q.Limit, q.Offset())

	return repository.QueryPlan{
		Shape: shape,
		Count: repository.Statement{SQL: countTemplates[shape], Args: args},
		Select: repository.Statement{
			SQL:  selectTemplates[shape] + orderAndPage(q),
			Args: selectArgs,
		},
	}
}

func orderAndPage(q repository.ListingQuery) string {
	return "\nORDER BY p." + q.SortBy.Column() + " " + q.Order.Keyword() + ", p.slug ASC\nLIMIT ? OFFSET ?"
}

func tagArrayParam(tags []entity.Tag) string {
	// Marshalling a []string cannot fail.
	b, _ := json.Marshal(entity.TagStrings(tags))
	return string(b)
}
