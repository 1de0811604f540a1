// Package extractor turns fetched HTML into the plain text that gets scored.
package extractor

import (
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/xhad/copyscan/internal/models"
)

type Mode string

const (
	ModeParagraphs  Mode = "paragraphs"
	ModeReadability Mode = "readability"
)

var reWhitespace = regexp.MustCompile(`\s+`)

// Extract returns the text of every <p> element in document order, each
// trimmed and whitespace-collapsed, joined by a single space. Malformed
// markup yields whatever the parser recovers, never an error.
func Extract(rawHTML string) string {
	if strings.TrimSpace(rawHTML) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	parts := make([]string, 0)
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		text := collapse(s.Text())
		if text != "" {
			parts = append(parts, text)
		}
	})

	return strings.Join(parts, " ")
}

type Extractor struct {
	mode   Mode
	logger *slog.Logger
}

func New(mode Mode, logger *slog.Logger) *Extractor {
	if mode == "" {
		mode = ModeParagraphs
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		mode:   mode,
		logger: logger.With("component", "extractor"),
	}
}

// Extract returns "" for pages that were not fetched successfully.
func (e *Extractor) Extract(page models.FetchedPage) string {
	if !page.OK {
		return ""
	}

	if e.mode == ModeReadability {
		if text := readableText(page.RawHTML, page.URL); text != "" {
			return text
		}
		e.logger.Debug("readability yielded nothing, using paragraphs", "url", page.URL)
	}

	return Extract(page.RawHTML)
}

func readableText(rawHTML, pageURL string) string {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), parsedURL)
	if err != nil {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return ""
	}
	doc.Find("figure, aside, script, style, noscript").Remove()

	return collapse(doc.Text())
}

func collapse(s string) string {
	return strings.TrimSpace(reWhitespace.ReplaceAllString(s, " "))
}
