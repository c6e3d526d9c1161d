package search_test

import (
	"testing"

	"content-api/internal/pkg/search"
)

func TestEscapeLike(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "rust", want: "%rust%"},
		{in: "100%", want: `%100\%%`},
		{in: "my_var", want: `%my\_var%`},
		{in: `path\file`, want: `%path\\file%`},
		{in: "", want: "%%"},
	}
	for _, tt := range tests {
		if got := search.EscapeLike(tt.in); got != tt.want {
			t.Errorf("EscapeLike(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
