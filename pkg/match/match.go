// Package match applies the similarity threshold and result ordering.
package match

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/xhad/copyscan/internal/models"
)

const (
	// Lenient tolerates paraphrase.
	Lenient = 0.5
	// Strict keeps near-verbatim copies only.
	Strict = 0.8

	DefaultThreshold = Lenient
)

var (
	ErrInvalidThreshold = errors.New("invalid threshold")
	ErrInvalidOrder     = errors.New("invalid result order")
)

type Order string

const (
	OrderRetrieval Order = "retrieval"
	OrderScore     Order = "score"
)

// Filter keeps results whose score is strictly greater than threshold.
// Input order is preserved and the input slice is not modified.
func Filter(results models.ResultSet, threshold float64) models.ResultSet {
	kept := make(models.ResultSet, 0, len(results))
	for _, r := range results {
		if r.Score > threshold {
			kept = append(kept, r)
		}
	}
	return kept
}

// Rank returns a copy of results in the requested order. Score order is
// descending with ties kept in retrieval order.
func Rank(results models.ResultSet, order Order) models.ResultSet {
	ranked := make(models.ResultSet, len(results))
	copy(ranked, results)

	switch order {
	case OrderScore:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Score > ranked[j].Score
		})
	default:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Rank < ranked[j].Rank
		})
	}
	return ranked
}

// ParseThreshold accepts a preset name or a number in [0, 1).
func ParseThreshold(s string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return DefaultThreshold, nil
	case "lenient":
		return Lenient, nil
	case "strict":
		return Strict, nil
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidThreshold, s)
	}
	if v < 0 || v >= 1 {
		return 0, fmt.Errorf("%w: %v not in [0, 1)", ErrInvalidThreshold, v)
	}
	return v, nil
}

func ParseOrder(s string) (Order, error) {
	switch Order(strings.ToLower(strings.TrimSpace(s))) {
	case "", OrderRetrieval:
		return OrderRetrieval, nil
	case OrderScore:
		return OrderScore, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidOrder, s)
}
