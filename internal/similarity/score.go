package similarity

import (
	"fmt"
	"math"

	"github.com/jonathan/title-scorer/internal/embedding"
	"github.com/jonathan/title-scorer/internal/types"
)

// Category boundaries. A score equal to a threshold belongs to the higher category.
const (
	GoodThreshold     = 0.80
	VeryGoodThreshold = 0.90
)

// Cosine returns dot(a, b) / (|a| * |b|), accumulated in float64.
func Cosine(a, b embedding.Embedding) (float64, error) {
	if len(a) != len(b) {
		return 0, &ScorerError{
			Reason:  ReasonDimensionMismatch,
			Message: fmt.Sprintf("vector lengths %d and %d differ", len(a), len(b)),
		}
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0, &ScorerError{
			Reason:  ReasonDegenerateVector,
			Message: "vector has zero norm",
		}
	}

	score := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	// Rounding can push identical vectors a hair past 1.
	return math.Max(-1, math.Min(1, score)), nil
}

// Classify buckets a score: below 0.80 is more work, below 0.90 is good, the rest very good.
func Classify(score float64) types.Category {
	switch {
	case score < GoodThreshold:
		return types.CategoryMoreWork
	case score < VeryGoodThreshold:
		return types.CategoryGood
	default:
		return types.CategoryVeryGood
	}
}

// Score compares two embeddings. It has no side effects.
func Score(a, b embedding.Embedding) (types.SimilarityResult, error) {
	s, err := Cosine(a, b)
	if err != nil {
		return types.SimilarityResult{}, err
	}
	return types.SimilarityResult{
		Score:    s,
		Category: Classify(s),
	}, nil
}
