// Package similarity scores two embeddings with cosine similarity and buckets the score.
package similarity

import "fmt"

// Reason classifies why two vectors could not be scored.
type Reason string

const (
	// ReasonDegenerateVector means one of the vectors has zero norm
	ReasonDegenerateVector Reason = "degenerate_vector"
	// ReasonDimensionMismatch means the vectors differ in length
	ReasonDimensionMismatch Reason = "dimension_mismatch"
)

// ScorerError reports vectors that cannot be compared.
type ScorerError struct {
	Reason  Reason
	Message string
}

func (e *ScorerError) Error() string {
	return fmt.Sprintf("similarity error: %s: %s", e.Reason, e.Message)
}
