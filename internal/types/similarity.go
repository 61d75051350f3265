package types

import "fmt"

// Category is the qualitative bucket a similarity score falls into.
type Category string

const (
	// CategoryMoreWork means the title needs more work (score below 0.80)
	CategoryMoreWork Category = "more_work"
	// CategoryGood means the title is a good match (0.80 up to, not including, 0.90)
	CategoryGood Category = "good"
	// CategoryVeryGood means the title is a very good match (0.90 and above)
	CategoryVeryGood Category = "very_good"
)

// String returns the human-readable label for the category.
func (c Category) String() string {
	switch c {
	case CategoryMoreWork:
		return "more work"
	case CategoryGood:
		return "good"
	case CategoryVeryGood:
		return "very good"
	default:
		return string(c)
	}
}

// SimilarityResult is a cosine similarity score and the category derived from it.
// Category is always computed from Score by the similarity package.
type SimilarityResult struct {
	Score    float64  `json:"score"`
	Category Category `json:"category"`
}

// LengthWarning reports a candidate title longer than the configured limit.
type LengthWarning struct {
	Length int `json:"length"`
	Limit  int `json:"limit"`
	Excess int `json:"excess"`
}

func (w *LengthWarning) String() string {
	return fmt.Sprintf("title is %d characters, %d over the %d character limit", w.Length, w.Excess, w.Limit)
}

// Evaluation is what the caller sees for one candidate title.
// Similarity and length are reported side by side and never mixed.
type Evaluation struct {
	Title         string           `json:"title"`
	Result        SimilarityResult `json:"result"`
	LengthWarning *LengthWarning   `json:"length_warning,omitempty"`
	Suggestion    string           `json:"suggestion,omitempty"`
}
