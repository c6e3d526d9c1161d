package entity

import "fmt"

// MaxSlugLength bounds slugs accepted from the transport layer.
const MaxSlugLength = 100

// MaxSearchLength bounds the free-text search term of a listing.
const MaxSearchLength = 200

// ValidateSlug checks a path slug before it is used as a lookup key.
// Slugs are non-empty, at most MaxSlugLength bytes, and limited to [A-Za-z0-9_-],
// which rules out path traversal and quoting tricks.
func ValidateSlug(slug string) error {
	if slug == "" {
		return &ValidationError{Field: "slug", Message: "slug is required"}
	}
	if len(slug) > MaxSlugLength {
		return &ValidationError{
			Field:   "slug",
			Message: fmt.Sprintf("slug must not exceed %d characters", MaxSlugLength),
		}
	}
	if !isIdentifierASCII(slug) {
		return &ValidationError{Field: "slug", Message: "slug must contain only letters, digits, '-' or '_'"}
	}
	return nil
}

// ValidateSearch checks the free-text search term of a listing.
func ValidateSearch(term string) error {
	if len(term) > MaxSearchLength {
		return &ValidationError{
			Field:   "search",
			Message: fmt.Sprintf("search must not exceed %d characters", MaxSearchLength),
		}
	}
	return nil
}
