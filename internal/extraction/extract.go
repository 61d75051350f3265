package extraction

import (
	"context"
	"errors"
	"log"

	"github.com/jonathan/title-scorer/internal/types"
)

// Fetcher retrieves the raw HTML of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Extractor fetches a page once and extracts normalized heading and body text.
// It does not retry and does not cache.
type Extractor struct {
	fetcher  Fetcher
	strategy Strategy
	verbose  bool
}

// NewExtractor creates an Extractor. A nil strategy uses the default selector strategy.
func NewExtractor(fetcher Fetcher, strategy Strategy, verbose bool) *Extractor {
	if strategy == nil {
		strategy = DefaultSelectorStrategy()
	}
	return &Extractor{
		fetcher:  fetcher,
		strategy: strategy,
		verbose:  verbose,
	}
}

// Extract fetches url and returns its content, or an *ExtractionError.
func (e *Extractor) Extract(ctx context.Context, url string) (*types.ExtractedContent, error) {
	html, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		if e.verbose {
			log.Printf("[EXTRACT] fetch failed for %s: %v", url, err)
		}
		return nil, &ExtractionError{URL: url, Reason: ReasonHTTPError, Cause: err}
	}

	rawHeading, rawBody, err := e.strategy.Extract(html)
	if err != nil {
		if e.verbose {
			log.Printf("[EXTRACT] strategy failed for %s: %v", url, err)
		}
		return nil, &ExtractionError{URL: url, Reason: ReasonMissingFields, Cause: err}
	}

	heading := NormalizeText(rawHeading)
	body := NormalizeText(rawBody)
	switch {
	case heading == "":
		return nil, &ExtractionError{URL: url, Reason: ReasonMissingFields, Cause: ErrHeadingNotFound}
	case body == "":
		return nil, &ExtractionError{URL: url, Reason: ReasonMissingFields, Cause: ErrBodyNotFound}
	}

	if e.verbose {
		log.Printf("[EXTRACT] %s: heading %d chars, body %d chars", url, len(heading), len(body))
	}

	return types.NewExtractedContent(url, heading, body), nil
}

// IsHTTPError reports whether err is an extraction failure caused by the fetch.
func IsHTTPError(err error) bool {
	return IsReason(err, ReasonHTTPError)
}

// IsMissingFields reports whether err is an extraction failure caused by absent regions.
func IsMissingFields(err error) bool {
	return IsReason(err, ReasonMissingFields) || errors.Is(err, ErrHeadingNotFound) || errors.Is(err, ErrBodyNotFound)
}
