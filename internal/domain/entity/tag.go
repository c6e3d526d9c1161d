package entity

import "strings"

const (
	// MaxTagLength is the longest accepted tag, in bytes.
	MaxTagLength = 50
	// MaxTagCount caps how many tags a single listing filter may carry.
	MaxTagCount = 10
)

// Tag is a validated tag name: 1..MaxTagLength ASCII letters, digits, '-' or '_'.
// The zero value is not a valid tag; obtain one through NewTag or ParseTags.
type Tag string

// NewTag validates s and returns it as a Tag.
// Surrounding whitespace is not trimmed here; ParseTags does that per candidate.
func NewTag(s string) (Tag, bool) {
	if !isValidTag(s) {
		return "", false
	}
	return Tag(s), true
}

// String returns the tag name.
func (t Tag) String() string { return string(t) }

// ParseTags turns a raw comma-separated filter value into validated tags.
//
// Each candidate is trimmed; candidates that are empty, too long, or contain
// characters outside [A-Za-z0-9_-] are dropped silently. Collection stops once
// MaxTagCount valid tags have been gathered, so a long list of junk followed by
// good tags still yields the good ones.
//
// Example:
//
//	ParseTags("rust,invalid tag,python,../etc/passwd") // [rust python]
func ParseTags(raw string) []Tag {
	tags := make([]Tag, 0, 4)
	for _, part := range strings.Split(raw, ",") {
		if len(tags) == MaxTagCount {
			break
		}
		if tag, ok := NewTag(strings.TrimSpace(part)); ok {
			tags = append(tags, tag)
		}
	}
	return tags
}

// TagStrings converts tags to plain strings for binding as query parameters.
func TagStrings(tags []Tag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}

func isValidTag(s string) bool {
	if s == "" || len(s) > MaxTagLength {
		return false
	}
	return isIdentifierASCII(s)
}

// isIdentifierASCII reports whether every byte of s is in [A-Za-z0-9_-].
func isIdentifierASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}

// TagCount is one row of the tag aggregate: how many published items carry Tag.
type TagCount struct {
	Tag   string
	Count int64
}
