package repository

import (
	"content-api/internal/common/pagination"
	"content-api/internal/domain/entity"
)

// SortField is the closed set of columns a listing may be ordered by.
type SortField int

const (
	SortByPublishedAt SortField = iota
	SortByTitle
)

// ParseSortField maps a raw sort parameter onto the whitelist.
// Anything other than "title" falls back to published_at.
func ParseSortField(s string) SortField {
	if s == "title" {
		return SortByTitle
	}
	return SortByPublishedAt
}

// Column returns the SQL column for the field. Only these literals ever reach SQL text.
func (f SortField) Column() string {
	if f == SortByTitle {
		return "title"
	}
	return "published_at"
}

func (f SortField) String() string { return f.Column() }

// SortOrder is the closed set of sort directions.
type SortOrder int

const (
	OrderDesc SortOrder = iota
	OrderAsc
)

// ParseSortOrder maps a raw order parameter onto the whitelist; anything but "asc" is desc.
func ParseSortOrder(s string) SortOrder {
	if s == "asc" {
		return OrderAsc
	}
	return OrderDesc
}

// Keyword returns ASC or DESC.
func (o SortOrder) Keyword() string {
	if o == OrderAsc {
		return "ASC"
	}
	return "DESC"
}

func (o SortOrder) String() string {
	if o == OrderAsc {
		return "asc"
	}
	return "desc"
}

// ListingQuery describes one page of a filtered, sorted listing.
// Tags match with OR semantics: an item qualifies if it carries any of them.
type ListingQuery struct {
	Page   int
	Limit  int
	Tags   []entity.Tag
	Search string
	SortBy SortField
	Order  SortOrder
}

// DefaultListingQuery returns page 1, 10 items, newest first.
func DefaultListingQuery() ListingQuery {
	return ListingQuery{
		Page:   pagination.DefaultConfig().DefaultPage,
		Limit:  pagination.DefaultConfig().DefaultLimit,
		SortBy: SortByPublishedAt,
		Order:  OrderDesc,
	}
}

// Normalize clamps Page to >= 1 and Limit to [1, 50].
func (q ListingQuery) Normalize() ListingQuery {
	q.Page, q.Limit = pagination.Clamp(q.Page, q.Limit, pagination.DefaultConfig())
	return q
}

// Offset is the number of rows skipped before this page.
func (q ListingQuery) Offset() int {
	return pagination.CalculateOffset(q.Page, q.Limit)
}

// FilterShape is the closed set of filter combinations a listing can take.
// Each shape owns one WHERE template and one parameter arity.
type FilterShape int

const (
	NoFilters FilterShape = iota
	TagsOnly
	SearchOnly
	TagsAndSearch
)

func (s FilterShape) String() string {
	switch s {
	case TagsOnly:
		return "tags_only"
	case SearchOnly:
		return "search_only"
	case TagsAndSearch:
		return "tags_and_search"
	default:
		return "no_filters"
	}
}

// ShapeOf picks the filter shape for q. An empty tag list or search term counts as absent.
func ShapeOf(q ListingQuery) FilterShape {
	hasTags := len(q.Tags) > 0
	hasSearch := q.Search != ""
	switch {
	case hasTags && hasSearch:
		return TagsAndSearch
	case hasTags:
		return TagsOnly
	case hasSearch:
		return SearchOnly
	default:
		return NoFilters
	}
}

// Statement is a SQL string with its positional arguments.
type Statement struct {
	SQL  string
	Args []any
}

// QueryPlan holds the count and select statements for one listing request.
// Both share the same filter and argument prefix; Select additionally binds LIMIT and OFFSET last.
type QueryPlan struct {
	Shape  FilterShape
	Count  Statement
	Select Statement
}

// ListingPlanner renders a ListingQuery into a dialect-specific QueryPlan.
type ListingPlanner interface {
	Plan(q ListingQuery) QueryPlan
}
