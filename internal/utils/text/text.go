// Package text provides small text measurements used when serving content.
package text

import (
	"math"
	"strings"
	"unicode/utf8"
)

// WordsPerMinute is the reading speed ReadTimeMinutes assumes.
const WordsPerMinute = 200

// CountRunes counts Unicode characters rather than bytes.
func CountRunes(s string) int {
	return utf8.RuneCountInString(s)
}

// CountWords counts whitespace-separated words.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// ReadTimeMinutes estimates reading time, rounded up, never less than one minute.
func ReadTimeMinutes(s string) int {
	minutes := int(math.Ceil(float64(CountWords(s)) / WordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}
