// Package search holds helpers shared by the substring search filters of both SQL dialects.
package search

import (
	"strings"
	"time"
)

// DefaultSearchTimeout bounds a single listing query that carries a search filter.
const DefaultSearchTimeout = 5 * time.Second

// likeEscaper escapes the LIKE metacharacters with a backslash.
// Queries using the pattern must declare ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike returns a "contains" pattern for term: the escaped term wrapped in '%'.
// The term is matched literally, so "100%" only matches the text "100%".
func EscapeLike(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
