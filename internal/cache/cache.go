// Package cache holds one content embedding per page URL for the lifetime of a session.
package cache

import (
	"context"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/jonathan/title-scorer/internal/embedding"
	"github.com/jonathan/title-scorer/internal/types"
)

// DefaultWarmConcurrency bounds parallel fetches during Warm.
const DefaultWarmConcurrency = 4

// ContentExtractor retrieves normalized page content for a URL.
type ContentExtractor interface {
	Extract(ctx context.Context, url string) (*types.ExtractedContent, error)
}

// ContentCache maps page URLs to content embeddings.
// Only successes are stored; a failed lookup is attempted again on the next call.
// Concurrent lookups for the same URL share a single extraction and embedding.
type ContentCache struct {
	extractor ContentExtractor
	provider  embedding.Provider
	verbose   bool

	mu      sync.RWMutex
	entries map[string]embedding.Embedding
	group   singleflight.Group
}

// New creates an empty ContentCache.
func New(extractor ContentExtractor, provider embedding.Provider, verbose bool) *ContentCache {
	return &ContentCache{
		extractor: extractor,
		provider:  provider,
		verbose:   verbose,
		entries:   make(map[string]embedding.Embedding),
	}
}

// GetOrFetch returns the content embedding for entry, extracting and embedding the page on first use.
func (c *ContentCache) GetOrFetch(ctx context.Context, entry types.CatalogEntry) (embedding.Embedding, error) {
	if emb, ok := c.lookup(entry.URL); ok {
		if c.verbose {
			log.Printf("[CACHE] hit %s", entry.URL)
		}
		return emb, nil
	}

	v, err, shared := c.group.Do(entry.URL, func() (any, error) {
		// Another caller may have stored it between lookup and Do.
		if emb, ok := c.lookup(entry.URL); ok {
			return emb, nil
		}
		return c.load(ctx, entry.URL)
	})
	if err != nil {
		return nil, err
	}
	if c.verbose && shared {
		log.Printf("[CACHE] shared in-flight result for %s", entry.URL)
	}
	return v.(embedding.Embedding), nil
}

func (c *ContentCache) load(ctx context.Context, url string) (embedding.Embedding, error) {
	if c.verbose {
		log.Printf("[CACHE] miss %s", url)
	}

	content, err := c.extractor.Extract(ctx, url)
	if err != nil {
		return nil, err
	}

	emb, err := c.provider.Embed(ctx, content.CombinedText)
	if err != nil {
		return nil, fmt.Errorf("failed to embed content of %s: %w", url, err)
	}

	c.mu.Lock()
	c.entries[url] = emb
	c.mu.Unlock()

	return emb, nil
}

func (c *ContentCache) lookup(url string) (embedding.Embedding, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	emb, ok := c.entries[url]
	return emb, ok
}

// Has reports whether url has a stored embedding.
func (c *ContentCache) Has(url string) bool {
	_, ok := c.lookup(url)
	return ok
}

// Len returns the number of stored embeddings.
func (c *ContentCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// WarmFailure records an entry that could not be pre-embedded.
type WarmFailure struct {
	Entry types.CatalogEntry
	Err   error
}

// Warm pre-embeds every entry with at most concurrency lookups in flight.
// A failing entry does not stop the others; failures are returned in catalog order.
func (c *ContentCache) Warm(ctx context.Context, entries []types.CatalogEntry, concurrency int) []WarmFailure {
	if concurrency <= 0 {
		concurrency = DefaultWarmConcurrency
	}

	errs := make([]error, len(entries))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, entry := range entries {
		g.Go(func() error {
			_, errs[i] = c.GetOrFetch(gCtx, entry)
			return nil
		})
	}
	_ = g.Wait()

	var failures []WarmFailure
	for i, err := range errs {
		if err != nil {
			failures = append(failures, WarmFailure{Entry: entries[i], Err: err})
		}
	}

	if c.verbose {
		log.Printf("[CACHE] warmed %d/%d entries", len(entries)-len(failures), len(entries))
	}
	return failures
}
