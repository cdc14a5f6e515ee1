package tools

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateOnRuneBoundary(t *testing.T) {
	tests := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{"under_limit", "pão de queijo", 100, "pão de queijo"},
		{"exact_limit", "abcd", 4, "abcd"},
		{"ascii_cut", "abcdef", 3, "abc"},
		// "ã" is two bytes, a cut at byte 2 would land inside it
		{"multibyte_backed_off", "pão", 2, "p"},
		{"multibyte_kept_whole", "pão", 3, "pã"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateOnRuneBoundary(tt.input, tt.limit)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("result %q is not valid UTF-8", got)
			}
		})
	}
}

func TestTruncateOnRuneBoundary_LongAccentedText(t *testing.T) {
	long := strings.Repeat("espaguete à bolonhesa ", 200)
	got := truncateOnRuneBoundary(long, maxSearchResultLength)
	if len(got) > maxSearchResultLength {
		t.Fatalf("length %d exceeds %d", len(got), maxSearchResultLength)
	}
	if !utf8.ValidString(got) {
		t.Fatal("truncated summary is not valid UTF-8")
	}
}
