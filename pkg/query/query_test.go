package query

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		maxChars  int
		want      string
		truncated bool
	}{
		{"verbatim", "The quick brown fox.", 100, "The quick brown fox.", false},
		{"collapses whitespace", "  The quick\n\tbrown   fox. ", 100, "The quick brown fox.", false},
		{"exact cap", "abcde", 5, "abcde", false},
		{"cut at word boundary", "alpha beta gamma delta", 13, "alpha beta", true},
		{"boundary right after cap", "alpha beta gamma", 10, "alpha beta", true},
		{"single long word", "supercalifragilistic", 5, "super", true},
		{"multibyte runes", "ééé ééé ééé", 5, "ééé", true},
		{"empty", "", 10, "", false},
		{"whitespace only", " \n ", 10, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Build(tt.text, tt.maxChars)
			assert.Equal(t, tt.want, q.Text)
			assert.Equal(t, tt.truncated, q.Truncated)
		})
	}
}

func TestBuildDefaultCap(t *testing.T) {
	long := strings.Repeat("word ", 1000)
	q := Build(long, 0)

	assert.True(t, q.Truncated)
	assert.LessOrEqual(t, len([]rune(q.Text)), DefaultMaxChars)
	assert.True(t, strings.HasPrefix(long, q.Text))
	assert.False(t, q.IsEmpty())
}

func TestBuildCapCountsRunesBeforeEncoding(t *testing.T) {
	text := strings.Repeat("é, ", 10)
	q := Build(text, 30)

	assert.False(t, q.Truncated)
	assert.Equal(t, 29, len([]rune(q.Text)))
	// "é" escapes to %C3%A9, "," to %2C and " " to "+".
	assert.Greater(t, len(url.QueryEscape(q.Text)), 30)
}
