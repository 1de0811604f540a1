package types

import (
	"context"

	"github.com/xhad/copyscan/internal/models"
)

// Core interfaces
type Normalizer interface {
	Normalize(ctx context.Context, data []byte, modality models.Modality) (models.NormalizedInput, error)
}

type Retriever interface {
	Retrieve(ctx context.Context, query models.Query) ([]models.Candidate, error)
}

type Fetcher interface {
	Fetch(ctx context.Context, url string) models.FetchedPage
}

type Extractor interface {
	Extract(page models.FetchedPage) string
}

type Scorer interface {
	Score(ctx context.Context, userText, candidateText string) (float64, error)
}

type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

type OCR interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}
