package embedding

import (
	"context"
	"fmt"
	"strings"
)

// Embedding is a dense vector produced by one Provider.
// Vectors from different providers or models are not comparable.
type Embedding []float32

// Provider is an abstraction over embedding backends
type Provider interface {
	// Embed maps text to a vector of length Dimension(). Empty text is an EmbeddingError with ReasonEmptyInput.
	Embed(ctx context.Context, text string) (Embedding, error)
	// Dimension returns the length of every vector the provider produces
	Dimension() int
	// Close releases any resources held by the provider
	Close() error
}

// NewProvider creates a new embedding provider based on configuration
func NewProvider(ctx context.Context, config *Config, apiKey string) (Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini, "":
		return NewGeminiProvider(ctx, config, apiKey)
	case ProviderHashing:
		return NewHashingProvider(config.Dimension), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", config.Provider)
	}
}

// checkInput applies the empty-input policy shared by all providers.
func checkInput(text string) error {
	if strings.TrimSpace(text) == "" {
		return &EmbeddingError{Reason: ReasonEmptyInput, Message: "text is empty"}
	}
	return nil
}
