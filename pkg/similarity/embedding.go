package similarity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xhad/copyscan/internal/types"
)

var ErrEmbeddingShape = errors.New("embedder returned an unexpected number of vectors")

// EmbeddingScorer compares texts by the cosine of their embedding vectors.
// Negative cosines are reported as 0 so scores stay in [0, 1].
type EmbeddingScorer struct {
	embedder types.Embedder
}

// NewEmbeddingScorer embeds both texts with embedder in a single call.
func NewEmbeddingScorer(embedder types.Embedder) *EmbeddingScorer {
	return &EmbeddingScorer{embedder: embedder}
}

func (s *EmbeddingScorer) Score(ctx context.Context, userText, candidateText string) (float64, error) {
	if strings.TrimSpace(userText) == "" || strings.TrimSpace(candidateText) == "" {
		return 0, nil
	}

	vectors, err := s.embedder.Embed(ctx, []string{userText, candidateText})
	if err != nil {
		return 0, fmt.Errorf("embedding texts: %w", err)
	}
	if len(vectors) != 2 {
		return 0, fmt.Errorf("%w: got %d, want 2", ErrEmbeddingShape, len(vectors))
	}
	if len(vectors[0]) != len(vectors[1]) {
		return 0, fmt.Errorf("%w: dimensions %d and %d differ", ErrEmbeddingShape, len(vectors[0]), len(vectors[1]))
	}

	var dot, normA, normB float64
	for i := range vectors[0] {
		a, b := float64(vectors[0][i]), float64(vectors[1][i])
		dot += a * b
		normA += a * a
		normB += b * b
	}
	return cosine(dot, normA, normB), nil
}
