package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubModel struct {
	out [][]float32
	err error
	got []string
}

func (s *stubModel) CreateEmbedding(_ context.Context, texts []string) ([][]float32, error) {
	s.got = texts
	return s.out, s.err
}

func TestNewEmbedderWithConfig(t *testing.T) {
	emb, err := NewEmbedderWithConfig(EmbedderConfig{})
	require.NoError(t, err)
	assert.Equal(t, "nomic-embed-text:latest", emb.Config.Model)
	assert.Equal(t, "http://localhost:11434", emb.Config.BaseURL)
}

func TestEmbed(t *testing.T) {
	model := &stubModel{out: [][]float32{{1, 0}, {0, 1}}}
	emb := &Embedder{model: model}

	vectors, err := emb.Embed(context.Background(), []string{"first", "second"})
	require.NoError(t, err)
	assert.Len(t, vectors, 2)
	assert.Equal(t, []string{"first", "second"}, model.got)
}

func TestEmbedErrors(t *testing.T) {
	emb := &Embedder{model: &stubModel{err: errors.New("model not found")}}
	_, err := emb.Embed(context.Background(), []string{"text"})
	assert.ErrorContains(t, err, "model not found")

	emb = &Embedder{model: &stubModel{out: [][]float32{{1}}}}
	_, err = emb.Embed(context.Background(), []string{"a", "b"})
	assert.ErrorContains(t, err, "got 1 vectors for 2 texts")
}
