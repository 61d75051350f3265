package embedding

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// clientFactory creates the underlying genai client; replaced in tests.
type clientFactory func(ctx context.Context, opts ...option.ClientOption) (*genai.Client, error)

// GeminiProvider implements Provider for the Google Gemini embedding API.
// The genai client is created on the first Embed call and reused afterwards.
type GeminiProvider struct {
	apiKey    string
	model     string
	dimension int
	verbose   bool

	newClient clientFactory
	initOnce  sync.Once
	client    *genai.Client
	initErr   error
}

// NewGeminiProvider creates a new Gemini provider. No network connection is made until the first Embed.
func NewGeminiProvider(_ context.Context, config *Config, apiKey string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultGeminiConfig()
	}

	model := config.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	dimension := config.Dimension
	if dimension <= 0 {
		dimension = DefaultGeminiDimension
	}

	return &GeminiProvider{
		apiKey:    apiKey,
		model:     model,
		dimension: dimension,
		verbose:   config.Verbose,
		newClient: genai.NewClient,
	}, nil
}

// Embed implements Provider.
func (p *GeminiProvider) Embed(ctx context.Context, text string) (Embedding, error) {
	if err := checkInput(text); err != nil {
		return nil, err
	}

	client, err := p.getClient(ctx)
	if err != nil {
		return nil, err
	}

	if p.verbose {
		log.Printf("[EMBED] model=%s length=%d", p.model, len(text))
	}

	em := client.EmbeddingModel(p.model)
	em.TaskType = genai.TaskTypeSemanticSimilarity
	res, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, &EmbeddingError{Reason: ReasonProviderError, Message: "failed to embed content", Cause: err}
	}

	if res == nil || res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, &EmbeddingError{Reason: ReasonEmptyResponse, Message: "empty embedding received"}
	}

	return Embedding(res.Embedding.Values), nil
}

// getClient creates the genai client once. A failed creation is remembered and returned to every caller.
func (p *GeminiProvider) getClient(ctx context.Context) (*genai.Client, error) {
	p.initOnce.Do(func() {
		if p.verbose {
			log.Printf("[EMBED] initializing Gemini client for model %s", p.model)
		}
		// The client outlives ctx, which may be a per-request context.
		client, err := p.newClient(context.WithoutCancel(ctx), option.WithAPIKey(p.apiKey))
		if err != nil {
			p.initErr = &EmbeddingError{Reason: ReasonProviderError, Message: "failed to create Gemini client", Cause: err}
			return
		}
		p.client = client
	})
	return p.client, p.initErr
}

// Dimension implements Provider.
func (p *GeminiProvider) Dimension() int {
	return p.dimension
}

// Model returns the configured model name.
func (p *GeminiProvider) Model() string {
	return p.model
}

// Close releases resources held by the client
func (p *GeminiProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}
