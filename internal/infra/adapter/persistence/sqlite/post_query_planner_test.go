package sqlite_test

import (
	"strings"
	"testing"

	"content-api/internal/domain/entity"
	"content-api/internal/infra/adapter/persistence/sqlite"
	"content-api/internal/repository"
)

const gate = `datetime(p.published_at) <= datetime('now')`

func query(tags []entity.Tag, term string) repository.ListingQuery {
	q := repository.DefaultListingQuery()
	q.Tags = tags
	q.Search = term
	return q
}

/* ──────────────────────────── arity per shape ──────────────────────────── */

func TestPostQueryPlanner_Arity(t *testing.T) {
	t.Parallel()

	tags := []entity.Tag{"go", "rust"}
	tests := []struct {
		name       string
		q          repository.ListingQuery
		shape      repository.FilterShape
		countArgs  int
		selectArgs int
	}{
		{"no filters", query(nil, ""), repository.NoFilters, 0, 2},
		{"tags only", query(tags, ""), repository.TagsOnly, 1, 3},
		{"search only", query(nil, "go"), repository.SearchOnly, 2, 4},
		{"tags and search", query(tags, "go"), repository.TagsAndSearch, 3, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := sqlite.NewPostQueryPlanner().Plan(tt.q)

			if plan.Shape != tt.shape {
				t.Fatalf("shape = %v, want %v", plan.Shape, tt.shape)
			}
			if got := len(plan.Count.Args); got != tt.countArgs {
				t.Errorf("count args = %d, want %d", got, tt.countArgs)
			}
			if got := len(plan.Select.Args); got != tt.selectArgs {
				t.Errorf("select args = %d, want %d", got, tt.selectArgs)
			}
			if got := strings.Count(plan.Count.SQL, "?"); got != tt.countArgs {
				t.Errorf("count placeholders = %d, want %d", got, tt.countArgs)
			}
			if got := strings.Count(plan.Select.SQL, "?"); got != tt.selectArgs {
				t.Errorf("select placeholders = %d, want %d", got, tt.selectArgs)
			}
		})
	}
}

/* ──────────────────────────── gate first ──────────────────────────── */

func TestPostQueryPlanner_GateIsFirstPredicate(t *testing.T) {
	t.Parallel()

	tags := []entity.Tag{"go"}
	for _, q := range []repository.ListingQuery{query(nil, ""), query(tags, ""), query(nil, "x"), query(tags, "x")} {
		plan := sqlite.NewPostQueryPlanner().Plan(q)
		for _, stmt := range []string{plan.Count.SQL, plan.Select.SQL} {
			if !strings.Contains(stmt, "\nWHERE "+gate) {
				t.Errorf("%v: publication gate is not the first predicate:\n%s", plan.Shape, stmt)
			}
		}
	}
}

/* ──────────────────────────── bound values ──────────────────────────── */

func TestPostQueryPlanner_BindsValuesInOrder(t *testing.T) {
	t.Parallel()

	q := query([]entity.Tag{"go", "rust"}, "50%_off")
	q.Page, q.Limit = 3, 5
	plan := sqlite.NewPostQueryPlanner().Plan(q)

	want := []any{`["go","rust"]`, `%50\%\_off%`, `%50\%\_off%`, 5, 10}
	if len(plan.Select.Args) != len(want) {
		t.Fatalf("args = %v", plan.Select.Args)
	}
	for i := range want {
		if plan.Select.Args[i] != want[i] {
			t.Errorf("args[%d] = %#v, want %#v", i, plan.Select.Args[i], want[i])
		}
	}
	for i := 0; i < 3; i++ {
		if plan.Count.Args[i] != want[i] {
			t.Errorf("count args[%d] = %#v, want %#v", i, plan.Count.Args[i], want[i])
		}
	}
}

func TestPostQueryPlanner_UserInputNeverInSQL(t *testing.T) {
	t.Parallel()

	q := query([]entity.Tag{"go"}, "'; DROP TABLE posts; --")
	plan := sqlite.NewPostQueryPlanner().Plan(q)
	if strings.Contains(plan.Select.SQL, "DROP TABLE") || strings.Contains(plan.Count.SQL, "DROP TABLE") {
		t.Fatal("search term leaked into SQL text")
	}
}

/* ──────────────────────────── sorting ──────────────────────────── */

func TestPostQueryPlanner_Sorting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sort, order string
		want        string
	}{
		{"", "", "ORDER BY p.published_at DESC, p.slug ASC"},
		{"title", "asc", "ORDER BY p.title ASC, p.slug ASC"},
		{"bogus", "bogus", "ORDER BY p.published_at DESC, p.slug ASC"},
		{"title; DROP TABLE posts", "asc", "ORDER BY p.published_at ASC, p.slug ASC"},
	}
	for _, tt := range tests {
		q := repository.DefaultListingQuery()
		q.SortBy = repository.ParseSortField(tt.sort)
		q.Order = repository.ParseSortOrder(tt.order)
		plan := sqlite.NewPostQueryPlanner().Plan(q)
		if !strings.Contains(plan.Select.SQL, tt.want) {
			t.Errorf("sort=%q order=%q: SQL missing %q:\n%s", tt.sort, tt.order, tt.want, plan.Select.SQL)
		}
	}
}

func TestPostQueryPlanner_NormalizesPaging(t *testing.T) {
	t.Parallel()

	q := repository.ListingQuery{Page: 0, Limit: 500}
	plan := sqlite.NewPostQueryPlanner().Plan(q)
	if plan.Select.Args[0] != 50 || plan.Select.Args[1] != 0 {
		t.Fatalf("limit/offset = %v, want [50 0]", plan.Select.Args)
	}
}
