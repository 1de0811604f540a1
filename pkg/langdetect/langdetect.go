// Package langdetect tags text with its likely natural language. The tag is
// advisory: every failure degrades to "unknown".
package langdetect

import (
	"unicode"

	"github.com/abadojack/whatlanggo"

	"github.com/xhad/copyscan/internal/models"
)

const minLetters = 3

// Detect returns an ISO 639-1 code such as "en", or "unknown".
func Detect(text string) (code string) {
	defer func() {
		if r := recover(); r != nil {
			code = models.LanguageUnknown
		}
	}()

	if countLetters(text) < minLetters {
		return models.LanguageUnknown
	}

	info := whatlanggo.Detect(text)
	code = info.Lang.Iso6391()
	if code == "" {
		return models.LanguageUnknown
	}
	return code
}

func countLetters(text string) int {
	n := 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			n++
			if n >= minLetters {
				return n
			}
		}
	}
	return n
}

var snowballLanguages = map[string]string{
	"en": "english",
	"es": "spanish",
	"fr": "french",
	"ru": "russian",
	"sv": "swedish",
	"no": "norwegian",
	"nb": "norwegian",
	"hu": "hungarian",
}

// SnowballLanguage maps an ISO 639-1 code to a snowball stemmer name, or "".
func SnowballLanguage(code string) string {
	return snowballLanguages[code]
}
