// Package fetch provides single-attempt URL fetching for page extraction and catalog downloads.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; TitleAgent/1.0)"

// Result holds the raw content from a URL fetch.
type Result struct {
	URL         string
	HTML        string
	ContentType string
	StatusCode  int
}

// Error represents an error during URL fetching.
// StatusCode is zero when no response was received.
type Error struct {
	URL        string
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
	Verbose   bool
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// URL retrieves content from a URL with a single GET. There is no retry.
// Any non-2xx status is an error; the result is still returned so callers can inspect it.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &Error{
			URL:     urlStr,
			Message: "invalid URL",
			Cause:   err,
		}
	}

	client := &http.Client{
		Timeout: opts.Timeout,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to create request",
			Cause:   err,
		}
	}

	if opts.UserAgent != "" {
		req.Header.Set("User-Agent", opts.UserAgent)
	}
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	if opts.Verbose {
		log.Printf("[FETCH] GET %s", urlStr)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "HTTP request failed",
			Cause:   err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{
			URL:        urlStr,
			Message:    "failed to read response body",
			StatusCode: resp.StatusCode,
			Cause:      err,
		}
	}

	result := &Result{
		URL:         urlStr,
		HTML:        string(bodyBytes),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}

	if opts.Verbose {
		log.Printf("[FETCH] %s -> %d (%d bytes)", urlStr, resp.StatusCode, len(bodyBytes))
	}

	if err := checkStatus(urlStr, resp.StatusCode); err != nil {
		return result, err
	}

	return result, nil
}

// checkStatus returns an *Error for any non-2xx status.
func checkStatus(urlStr string, status int) error {
	if status < 200 || status > 299 {
		return &Error{
			URL:        urlStr,
			Message:    fmt.Sprintf("HTTP status %d", status),
			StatusCode: status,
		}
	}
	return nil
}

// HTTPFetcher fetches page HTML over plain HTTP.
type HTTPFetcher struct {
	Options *Options
}

// NewHTTPFetcher creates an HTTPFetcher. A nil opts uses DefaultOptions.
func NewHTTPFetcher(opts *Options) *HTTPFetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTTPFetcher{Options: opts}
}

// Fetch returns the raw HTML of the page at urlStr.
func (f *HTTPFetcher) Fetch(ctx context.Context, urlStr string) (string, error) {
	result, err := URL(ctx, urlStr, f.Options)
	if err != nil {
		return "", err
	}
	return result.HTML, nil
}
