package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xhad/copyscan/internal/models"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "paragraphs in order",
			html: `<html><body><p>First one.</p><div>skip me</div><p>Second one.</p></body></html>`,
			want: "First one. Second one.",
		},
		{
			name: "whitespace collapsed",
			html: "<p>  spread \n\t over\n lines  </p><p>\n</p>",
			want: "spread over lines",
		},
		{
			name: "nested inline markup",
			html: `<p>The <b>quick</b> <a href="#">brown</a> fox</p>`,
			want: "The quick brown fox",
		},
		{
			name: "no paragraphs",
			html: `<html><body><div>only divs</div></body></html>`,
			want: "",
		},
		{
			name: "malformed",
			html: `<p>unclosed <p>another <div></span>`,
			want: "unclosed another",
		},
		{
			name: "empty",
			html: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.html))
		})
	}
}

func TestExtractorSkipsFailedPages(t *testing.T) {
	e := New(ModeParagraphs, nil)
	page := models.FetchedPage{URL: "https://example.com", RawHTML: "<p>text</p>", OK: false}
	assert.Empty(t, e.Extract(page))

	page.OK = true
	assert.Equal(t, "text", e.Extract(page))
}

func TestExtractorReadability(t *testing.T) {
	article := strings.Repeat("The main article body talks about foxes and dogs at length. ", 20)
	html := `<html><head><title>Foxes</title></head><body>
		<nav><p>Home About Contact</p></nav>
		<article><h1>Foxes</h1><p>` + article + `</p><p>` + article + `</p></article>
		<footer><p>Copyright footer</p></footer>
	</body></html>`

	e := New(ModeReadability, nil)
	got := e.Extract(models.FetchedPage{URL: "https://example.com/foxes", RawHTML: html, OK: true})

	assert.Contains(t, got, "The main article body talks about foxes")
	assert.NotContains(t, got, "  ")
}

func TestExtractorReadabilityFallback(t *testing.T) {
	e := New(ModeReadability, nil)
	page := models.FetchedPage{URL: "::not a url", RawHTML: "<p>fallback text</p>", OK: true}
	assert.Equal(t, "fallback text", e.Extract(page))
}
