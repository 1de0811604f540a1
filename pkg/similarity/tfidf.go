// Package similarity scores how closely a candidate page's text matches the
// submitted text.
package similarity

import (
	"context"
	"math"
	"sort"

	"github.com/xhad/copyscan/pkg/processor"
)

// TFIDFScorer compares two texts by the cosine of their TF-IDF vectors,
// with IDF computed over the two-document corpus {userText, candidateText}.
type TFIDFScorer struct {
	processor processor.Processor
}

// NewTFIDFScorer tokenizes both texts with p.
func NewTFIDFScorer(p processor.Processor) *TFIDFScorer {
	return &TFIDFScorer{processor: p}
}

// Score never fails; the error is there to satisfy the scorer interface.
func (s *TFIDFScorer) Score(_ context.Context, userText, candidateText string) (float64, error) {
	return s.Similarity(userText, candidateText), nil
}

// Similarity returns a value in [0, 1]. Either side having no terms yields 0.
func (s *TFIDFScorer) Similarity(a, b string) float64 {
	countsA := termCounts(s.processor.Tokenize(a))
	countsB := termCounts(s.processor.Tokenize(b))
	if len(countsA) == 0 || len(countsB) == 0 {
		return 0
	}

	// Sorted vocabulary keeps the float sums identical for (a, b) and (b, a).
	vocab := make([]string, 0, len(countsA)+len(countsB))
	for term := range countsA {
		vocab = append(vocab, term)
	}
	for term := range countsB {
		if _, ok := countsA[term]; !ok {
			vocab = append(vocab, term)
		}
	}
	sort.Strings(vocab)

	const docs = 2.0
	var dot, normA, normB float64
	for _, term := range vocab {
		ca, cb := float64(countsA[term]), float64(countsB[term])
		df := 0.0
		if ca > 0 {
			df++
		}
		if cb > 0 {
			df++
		}
		idf := math.Log((1+docs)/(1+df)) + 1

		wa, wb := ca*idf, cb*idf
		dot += wa * wb
		normA += wa * wa
		normB += wb * wb
	}

	return cosine(dot, normA, normB)
}

func termCounts(terms []string) map[string]int {
	counts := make(map[string]int, len(terms))
	for _, t := range terms {
		counts[t]++
	}
	return counts
}

// cosine takes squared norms. It is symmetric in (normA, normB) and guards
// the zero-vector case.
func cosine(dot, normA, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}
	v := dot / math.Sqrt(normA*normB)
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
