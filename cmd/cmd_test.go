package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xhad/copyscan/internal/models"
)

const foxText = "The quick brown fox jumps over the lazy dog."

func TestPrintReport(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	printReport(&buf, &models.Report{
		Language:  "en",
		Threshold: 0.5,
		Results: models.ResultSet{
			{URL: "https://a.example/copy", Score: 0.91234, Summary: foxText},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Detected language: en")
	assert.Contains(t, out, "Found 1 potential matches.")
	assert.Contains(t, out, "https://a.example/copy")
	assert.Contains(t, out, "91.23%")

	buf.Reset()
	printReport(&buf, &models.Report{Language: "unknown", Threshold: 0.8})
	assert.Contains(t, buf.String(), "No matches above 0.80.")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short text", truncate("short \n text", 80))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}

func TestCheckCommandCSV(t *testing.T) {
	color.NoColor = true

	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "<html><body><p>%s</p></body></html>", foxText)
	}))
	defer site.Close()

	searchAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"items":[{"title":"copy","link":"%s/copy"}]}`, site.URL)
	}))
	defer searchAPI.Close()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(fmt.Sprintf(`
search:
  api_key: test-key
  engine_id: test-cx
  base_url: %s
fetcher:
  rate_limit: 100
`, searchAPI.URL)), 0o600))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"check", "--config", configPath, "--text", foxText, "--format", "csv", "--no-progress", "--threshold", "strict"})
	require.NoError(t, rootCmd.Execute())

	rows, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"URL", "Similarity", "Summary"}, rows[0])
	assert.Equal(t, []string{site.URL + "/copy", "100.00", foxText}, rows[1])
}
