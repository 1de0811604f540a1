// Package query derives a bounded search query from normalized text.
package query

import (
	"strings"
	"unicode"

	"github.com/xhad/copyscan/internal/models"
)

// DefaultMaxChars caps the query in runes, before URL encoding. The encoded
// q parameter is longer: punctuation escapes to three bytes and a non-ASCII
// rune to as many as twelve.
const DefaultMaxChars = 2048

// Build collapses whitespace and caps the query at maxChars runes. When the
// text is longer it is cut at the last word boundary inside the cap, so the
// leading content always survives. Empty text gives an empty query.
func Build(text string, maxChars int) models.Query {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	collapsed := strings.Join(strings.Fields(text), " ")
	runes := []rune(collapsed)
	if len(runes) <= maxChars {
		return models.Query{Text: collapsed}
	}

	cut := maxChars
	// Back up to a space so no word is split, unless the first word alone
	// exceeds the cap.
	for i := maxChars; i > 0; i-- {
		if unicode.IsSpace(runes[i]) {
			cut = i
			break
		}
	}

	return models.Query{
		Text:      strings.TrimRightFunc(string(runes[:cut]), unicode.IsSpace),
		Truncated: true,
	}
}
