package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xhad/copyscan/internal/models"
)

func results(scores ...float64) models.ResultSet {
	rs := make(models.ResultSet, len(scores))
	for i, s := range scores {
		rs[i] = models.SimilarityResult{URL: string(rune('a' + i)), Rank: i, Score: s}
	}
	return rs
}

func TestFilterIsStrict(t *testing.T) {
	rs := results(0.8, 0.8000001, 0.79, 1.0)

	got := Filter(rs, Strict)
	assert.Equal(t, []string{"b", "d"}, got.URLs())

	// Input untouched.
	assert.Len(t, rs, 4)
}

func TestFilterPreservesOrder(t *testing.T) {
	rs := results(0.9, 0.1, 0.6, 0.51, 0.5)
	assert.Equal(t, []string{"a", "c", "d"}, Filter(rs, DefaultThreshold).URLs())
	assert.Empty(t, Filter(models.ResultSet{}, Lenient))
	assert.Empty(t, Filter(results(0, 0.2), 0.9))
}

func TestRank(t *testing.T) {
	rs := results(0.6, 0.9, 0.6, 0.7)
	// Shuffle into completion order.
	shuffled := models.ResultSet{rs[2], rs[0], rs[3], rs[1]}

	assert.Equal(t, []string{"a", "b", "c", "d"}, Rank(shuffled, OrderRetrieval).URLs())
	assert.Equal(t, []string{"b", "d", "a", "c"}, Rank(rs, OrderScore).URLs())
	assert.Equal(t, []string{"c", "a", "d", "b"}, shuffled.URLs())
}

func TestParseThreshold(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"lenient", 0.5, false},
		{"STRICT", 0.8, false},
		{"", DefaultThreshold, false},
		{"0.65", 0.65, false},
		{"0", 0, false},
		{"1", 0, true},
		{"-0.1", 0, true},
		{"high", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseThreshold(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidThreshold)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOrder(t *testing.T) {
	o, err := ParseOrder("")
	require.NoError(t, err)
	assert.Equal(t, OrderRetrieval, o)

	o, err = ParseOrder("Score")
	require.NoError(t, err)
	assert.Equal(t, OrderScore, o)

	_, err = ParseOrder("random")
	assert.ErrorIs(t, err, ErrInvalidOrder)
}
