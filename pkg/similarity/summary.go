package similarity

import "strings"

const (
	DefaultSummaryWords = 50
	ellipsis            = "..."
)

// Summarize returns the first maxWords whitespace-delimited words of text.
// The ellipsis is appended whenever maxWords words were taken, including
// when the text has exactly maxWords words.
func Summarize(text string, maxWords int) string {
	if maxWords <= 0 {
		maxWords = DefaultSummaryWords
	}

	words := strings.Fields(text)
	if len(words) < maxWords {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:maxWords], " ") + ellipsis
}
