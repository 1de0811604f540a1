package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/xhad/copyscan/internal/models"
)

func sampleReport() *models.Report {
	return &models.Report{
		ID:        "r-1",
		Threshold: 0.5,
		Order:     "retrieval",
		Results: models.ResultSet{
			{URL: "https://a.example/copy", Rank: 0, Score: 0.98765, Summary: "The quick brown fox, again"},
			{URL: "https://b.example/near", Rank: 2, Score: 0.6, Summary: "Partly \"quoted\""},
		},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": FormatJSON, "CSV": FormatCSV, "xlsx": FormatExcel, "excel": FormatExcel} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("pdf")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, sampleReport()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"URL", "Similarity", "Summary"}, rows[0])
	assert.Equal(t, []string{"https://a.example/copy", "98.77", "The quick brown fox, again"}, rows[1])
	assert.Equal(t, []string{"https://b.example/near", "60.00", "Partly \"quoted\""}, rows[2])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, &models.Report{}))
	assert.Equal(t, "URL,Similarity,Summary\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sampleReport()))

	var decoded struct {
		Total  int `json:"total"`
		Report struct {
			ID      string                    `json:"id"`
			Results []models.SimilarityResult `json:"results"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 2, decoded.Total)
	assert.Equal(t, "r-1", decoded.Report.ID)
	assert.Equal(t, 0.98765, decoded.Report.Results[0].Score)
}

func TestWriteExcel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatExcel, sampleReport()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Matches")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "URL", rows[0][0])
	assert.Equal(t, "https://a.example/copy", rows[1][0])
	assert.Equal(t, "98.77", rows[1][1])
	assert.Equal(t, "Partly \"quoted\"", rows[2][2])
}
