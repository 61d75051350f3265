// Package embedding provides sentence-embedding providers behind a single Provider interface.
// Providers are constructed explicitly and injected; none of them hold package-level state.
package embedding

// ProviderName identifies an embedding backend
type ProviderName string

const (
	// ProviderGemini embeds text with the Google Gemini embedding API
	ProviderGemini ProviderName = "gemini"
	// ProviderHashing embeds text locally with deterministic feature hashing
	ProviderHashing ProviderName = "hashing"
)

const (
	// DefaultGeminiModel is the Gemini embedding model used when none is configured
	DefaultGeminiModel = "text-embedding-004"
	// DefaultGeminiDimension is the output size of DefaultGeminiModel
	DefaultGeminiDimension = 768
	// DefaultHashingDimension is the output size of the hashing provider
	DefaultHashingDimension = 384
)

// Config holds the embedding configuration for the application
type Config struct {
	Provider  ProviderName `json:"provider,omitempty"`
	Model     string       `json:"model,omitempty"`
	Dimension int          `json:"dimension,omitempty"`
	Verbose   bool         `json:"-"`
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider:  ProviderGemini,
		Model:     DefaultGeminiModel,
		Dimension: DefaultGeminiDimension,
	}
}

// DefaultHashingConfig returns the default local hashing configuration
func DefaultHashingConfig() *Config {
	return &Config{
		Provider:  ProviderHashing,
		Model:     "fnv1a-unigram-bigram",
		Dimension: DefaultHashingDimension,
	}
}

// WithModel returns a copy of the config using model
func (c *Config) WithModel(model string) *Config {
	cp := *c
	cp.Model = model
	return &cp
}
