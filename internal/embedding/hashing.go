package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// HashingProvider embeds text locally by hashing word unigrams and bigrams into a fixed
// number of signed buckets and L2-normalizing the result. Output is bit-for-bit deterministic.
type HashingProvider struct {
	dimension int
}

// NewHashingProvider creates a HashingProvider. Non-positive dimensions use DefaultHashingDimension.
func NewHashingProvider(dimension int) *HashingProvider {
	if dimension <= 0 {
		dimension = DefaultHashingDimension
	}
	return &HashingProvider{dimension: dimension}
}

// Embed implements Provider. Text without any word characters yields a zero vector.
func (p *HashingProvider) Embed(_ context.Context, text string) (Embedding, error) {
	if err := checkInput(text); err != nil {
		return nil, err
	}

	vec := make([]float64, p.dimension)
	tokens := tokenize(text)
	for i, tok := range tokens {
		p.add(vec, tok)
		if i > 0 {
			p.add(vec, tokens[i-1]+" "+tok)
		}
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)

	out := make(Embedding, p.dimension)
	if norm == 0 {
		return out, nil
	}
	for i, v := range vec {
		out[i] = float32(v / norm)
	}
	return out, nil
}

func (p *HashingProvider) add(vec []float64, feature string) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(feature))
	sum := h.Sum32()
	idx := int(sum % uint32(p.dimension))
	if sum&(1<<31) != 0 {
		vec[idx]--
	} else {
		vec[idx]++
	}
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Dimension implements Provider.
func (p *HashingProvider) Dimension() int {
	return p.dimension
}

// Close implements Provider.
func (p *HashingProvider) Close() error {
	return nil
}
