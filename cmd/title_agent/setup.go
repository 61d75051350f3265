package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/title-scorer/internal/cache"
	"github.com/jonathan/title-scorer/internal/catalog"
	"github.com/jonathan/title-scorer/internal/config"
	"github.com/jonathan/title-scorer/internal/embedding"
	"github.com/jonathan/title-scorer/internal/extraction"
	"github.com/jonathan/title-scorer/internal/fetch"
	"github.com/jonathan/title-scorer/internal/keywords"
	"github.com/jonathan/title-scorer/internal/session"
	"github.com/jonathan/title-scorer/internal/types"
)

// app holds the components shared by every command.
type app struct {
	cfg      *config.Config
	entries  []types.CatalogEntry
	provider embedding.Provider
	cache    *cache.ContentCache
	session  *session.Session
}

// resolveConfig merges flags over environment, config file, and defaults.
func resolveConfig() (*config.Config, error) {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return nil, err
	}

	overrides := config.Config{
		Catalog:           catalogSource,
		EmbeddingProvider: providerFlag,
		Strategy:          strategyFlag,
		UseBrowser:        useBrowserFlag,
		Verbose:           verboseFlag,
	}
	merged := overrides.MergeWithDefaults(*cfg)
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	if merged.Catalog == "" {
		return nil, fmt.Errorf("catalog is required (use --catalog, TITLE_CATALOG, or the config file)")
	}
	return &merged, nil
}

// loadEntries reads the configured catalog.
func loadEntries(ctx context.Context, cfg *config.Config) ([]types.CatalogEntry, error) {
	entries, err := catalog.Load(ctx, cfg.Catalog, cfg.FetchOptions())
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog %s has no entries", cfg.Catalog)
	}
	return entries, nil
}

// newApp wires the catalog, extractor, embedding provider, content cache, and session.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, err
	}

	entries, err := loadEntries(ctx, cfg)
	if err != nil {
		return nil, err
	}

	strategy, err := extraction.NewStrategy(cfg.ExtractionConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to build extraction strategy: %w", err)
	}

	var fetcher extraction.Fetcher
	if cfg.UseBrowser {
		fetcher = &fetch.BrowserFetcher{Timeout: cfg.FetchOptions().Timeout, Verbose: cfg.Verbose}
	} else {
		fetcher = fetch.NewHTTPFetcher(cfg.FetchOptions())
	}
	extractor := extraction.NewExtractor(fetcher, strategy, cfg.Verbose)

	provider, err := embedding.NewProvider(ctx, cfg.EmbeddingConfig(), cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding provider: %w", err)
	}

	contentCache := cache.New(extractor, provider, cfg.Verbose)

	opts := []session.Option{
		session.WithTitleLimit(cfg.TitleLimit),
		session.WithVerbose(cfg.Verbose),
	}
	if cfg.SearchConsoleSite != "" {
		suggester, err := keywords.NewSearchConsoleSuggester(ctx, cfg.KeywordOptions())
		if err != nil {
			// Suggestions are advisory; scoring works without them.
			fmt.Fprintf(os.Stderr, "Warning: keyword suggestions disabled: %v\n", err)
		} else {
			opts = append(opts, session.WithSuggester(suggester))
		}
	}

	return &app{
		cfg:      cfg,
		entries:  entries,
		provider: provider,
		cache:    contentCache,
		session:  session.New(contentCache, provider, opts...),
	}, nil
}

// Close releases the embedding provider.
func (a *app) Close() {
	if err := a.provider.Close(); err != nil && a.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "Warning: failed to close embedding provider: %v\n", err)
	}
}

// entryAt returns the entry at a 1-based catalog position.
func (a *app) entryAt(index int) (types.CatalogEntry, error) {
	if index < 1 || index > len(a.entries) {
		return types.CatalogEntry{}, fmt.Errorf("invalid selection %d: choose a number between 1 and %d", index, len(a.entries))
	}
	return a.entries[index-1], nil
}
