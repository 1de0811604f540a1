package processor

import (
	"regexp"
	"strings"

	"github.com/kljensen/snowball"
	"golang.org/x/text/unicode/norm"
)

// Terms are runs of two or more letters, digits or underscores.
var termPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

type ProcessorConfig struct {
	RemoveStopwords bool
	CustomStopwords []string
	// Stem applies snowball stemming when Language names a supported stemmer.
	Stem     bool
	Language string
}

type Processor struct {
	config    ProcessorConfig
	stopwords map[string]bool
}

func NewWithConfig(config ProcessorConfig) Processor {
	stopwords := make(map[string]bool)
	if config.RemoveStopwords {
		for _, w := range getStopwords() {
			stopwords[w] = true
		}
		for _, w := range config.CustomStopwords {
			stopwords[strings.ToLower(w)] = true
		}
	}

	return Processor{
		config:    config,
		stopwords: stopwords,
	}
}

// WithLanguage returns a copy of p that stems for the given snowball language.
func (p Processor) WithLanguage(language string) Processor {
	p.config.Language = language
	return p
}

// Tokenize splits text into comparable terms in document order.
func (p Processor) Tokenize(text string) []string {
	text = p.cleanText(text)
	if text == "" {
		return nil
	}

	terms := termPattern.FindAllString(text, -1)
	filtered := terms[:0]
	for _, term := range terms {
		if p.stopwords[term] {
			continue
		}
		if p.config.Stem && p.config.Language != "" {
			term = p.stem(term)
		}
		filtered = append(filtered, term)
	}

	return filtered
}

func (p Processor) cleanText(text string) string {
	text = norm.NFKC.String(text)
	text = strings.ToLower(text)

	// Replace multiple spaces with single space
	return strings.Join(strings.Fields(text), " ")
}

func (p Processor) stem(term string) string {
	stemmed, err := snowball.Stem(term, p.config.Language, false)
	if err != nil || stemmed == "" {
		return term
	}
	return stemmed
}

// Common English stopwords
func getStopwords() []string {
	return []string{
		"a", "an", "and", "are", "as", "at", "be", "by", "for",
		"from", "has", "he", "in", "is", "it", "its", "of", "on",
		"that", "the", "to", "was", "were", "will", "with",
	}
}
