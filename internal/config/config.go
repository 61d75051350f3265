// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"

	"github.com/jonathan/title-scorer/internal/embedding"
	"github.com/jonathan/title-scorer/internal/extraction"
	"github.com/jonathan/title-scorer/internal/fetch"
	"github.com/jonathan/title-scorer/internal/keywords"
	"github.com/jonathan/title-scorer/internal/schemas"
)

// EnvPrefix prefixes every environment variable read by LoadFromEnv (e.g. TITLE_CATALOG).
// Only GEMINI_API_KEY is also read without the prefix; a bare CATALOG or VERBOSE is ignored.
const EnvPrefix = "TITLE"

// Default values applied by Defaults.
const (
	DefaultTitleLimit      = 60
	DefaultTimeoutSeconds  = 30
	DefaultWarmConcurrency = 4
)

// Config represents the CLI configuration that can be loaded from a JSON file or the environment.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Catalog
	Catalog string `json:"catalog,omitempty" split_words:"true"` // Path or URL of the Address/Title catalog

	// Extraction
	Strategy        string `json:"strategy,omitempty" split_words:"true" validate:"omitempty,oneof=selector regex"`
	HeadingSelector string `json:"heading_selector,omitempty" split_words:"true"`
	BodySelector    string `json:"body_selector,omitempty" split_words:"true"`
	HeadingPattern  string `json:"heading_pattern,omitempty" split_words:"true"`
	BodyPattern     string `json:"body_pattern,omitempty" split_words:"true"`
	UseBrowser      bool   `json:"use_browser,omitempty" split_words:"true"` // Render pages with headless Chrome
	TimeoutSeconds  int    `json:"timeout_seconds,omitempty" split_words:"true" validate:"gte=0"`

	// Embedding
	APIKey             string `json:"api_key,omitempty" envconfig:"GEMINI_API_KEY"` // Gemini API key
	EmbeddingProvider  string `json:"embedding_provider,omitempty" split_words:"true" validate:"omitempty,oneof=gemini hashing"`
	EmbeddingModel     string `json:"embedding_model,omitempty" split_words:"true"`
	EmbeddingDimension int    `json:"embedding_dimension,omitempty" split_words:"true" validate:"gte=0"`

	// Keyword suggestions
	SearchConsoleSite        string   `json:"search_console_site,omitempty" split_words:"true"`
	SearchConsoleCredentials string   `json:"search_console_credentials,omitempty" split_words:"true"`
	SearchConsoleStartDate   string   `json:"search_console_start_date,omitempty" split_words:"true" validate:"omitempty,datetime=2006-01-02"`
	ExcludedTerms            []string `json:"excluded_terms,omitempty" split_words:"true"` // Brand terms never suggested

	// Session
	TitleLimit      int  `json:"title_limit,omitempty" split_words:"true" validate:"gte=0"`
	WarmConcurrency int  `json:"warm_concurrency,omitempty" split_words:"true" validate:"gte=0"`
	Verbose         bool `json:"verbose,omitempty" split_words:"true"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Strategy:          string(extraction.KindSelector),
		HeadingSelector:   extraction.DefaultHeadingSelector,
		BodySelector:      extraction.DefaultBodySelector,
		TimeoutSeconds:    DefaultTimeoutSeconds,
		EmbeddingProvider: string(embedding.ProviderGemini),
		EmbeddingModel:    embedding.DefaultGeminiModel,
		TitleLimit:        DefaultTitleLimit,
		WarmConcurrency:   DefaultWarmConcurrency,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := schemas.Validate(schemas.Config, data); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadFromEnv reads configuration from TITLE_* environment variables.
// Unset variables leave their fields at the zero value so the result can be merged.
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment config: %w", err)
	}
	return &cfg, nil
}

// Resolve combines the environment, an optional config file, and the built-in defaults, in that priority.
func Resolve(path string) (*Config, error) {
	envCfg, err := LoadFromEnv()
	if err != nil {
		return nil, err
	}

	merged := *envCfg
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		merged = merged.MergeWithDefaults(*fileCfg)
	}
	merged = merged.MergeWithDefaults(Defaults())

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.SearchConsoleCredentials != "" {
		if _, err := os.Stat(c.SearchConsoleCredentials); os.IsNotExist(err) {
			return fmt.Errorf("config error: search console credentials file not found: %s", c.SearchConsoleCredentials)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	mergeString(&result.Catalog, defaults.Catalog)
	mergeString(&result.Strategy, defaults.Strategy)
	mergeString(&result.HeadingSelector, defaults.HeadingSelector)
	mergeString(&result.BodySelector, defaults.BodySelector)
	mergeString(&result.HeadingPattern, defaults.HeadingPattern)
	mergeString(&result.BodyPattern, defaults.BodyPattern)
	mergeString(&result.APIKey, defaults.APIKey)
	mergeString(&result.EmbeddingProvider, defaults.EmbeddingProvider)
	mergeString(&result.EmbeddingModel, defaults.EmbeddingModel)
	mergeString(&result.SearchConsoleSite, defaults.SearchConsoleSite)
	mergeString(&result.SearchConsoleCredentials, defaults.SearchConsoleCredentials)
	mergeString(&result.SearchConsoleStartDate, defaults.SearchConsoleStartDate)

	// Int fields: use default if zero
	mergeInt(&result.TimeoutSeconds, defaults.TimeoutSeconds)
	mergeInt(&result.EmbeddingDimension, defaults.EmbeddingDimension)
	mergeInt(&result.TitleLimit, defaults.TitleLimit)
	mergeInt(&result.WarmConcurrency, defaults.WarmConcurrency)

	if len(result.ExcludedTerms) == 0 {
		result.ExcludedTerms = defaults.ExcludedTerms
	}

	// Bool fields: true anywhere wins, since unset and false look the same
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

func mergeString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

func mergeInt(dst *int, def int) {
	if *dst == 0 {
		*dst = def
	}
}

// ExtractionConfig returns the extraction strategy settings.
func (c *Config) ExtractionConfig() extraction.Config {
	return extraction.Config{
		Kind:            extraction.StrategyKind(c.Strategy),
		HeadingSelector: c.HeadingSelector,
		BodySelector:    c.BodySelector,
		HeadingPattern:  c.HeadingPattern,
		BodyPattern:     c.BodyPattern,
	}
}

// FetchOptions returns HTTP options for page and catalog downloads.
func (c *Config) FetchOptions() *fetch.Options {
	opts := fetch.DefaultOptions()
	if c.TimeoutSeconds > 0 {
		opts.Timeout = time.Duration(c.TimeoutSeconds) * time.Second
	}
	opts.Verbose = c.Verbose
	return opts
}

// EmbeddingConfig returns the embedding provider settings.
func (c *Config) EmbeddingConfig() *embedding.Config {
	cfg := &embedding.Config{
		Provider:  embedding.ProviderName(c.EmbeddingProvider),
		Model:     c.EmbeddingModel,
		Dimension: c.EmbeddingDimension,
		Verbose:   c.Verbose,
	}
	if cfg.Provider == embedding.ProviderHashing && cfg.Model == embedding.DefaultGeminiModel {
		cfg.Model = embedding.DefaultHashingConfig().Model
	}
	return cfg
}

// KeywordOptions returns Search Console settings. SiteURL is empty when suggestions are disabled.
func (c *Config) KeywordOptions() keywords.Options {
	return keywords.Options{
		SiteURL:         c.SearchConsoleSite,
		StartDate:       c.SearchConsoleStartDate,
		ExcludedTerms:   c.ExcludedTerms,
		CredentialsFile: c.SearchConsoleCredentials,
		Verbose:         c.Verbose,
	}
}
