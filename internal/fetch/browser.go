// Package fetch - browser.go provides headless browser rendering for JavaScript-heavy pages.
package fetch

import (
	"context"
	"log"
	"time"

	"github.com/chromedp/chromedp"
)

// WithBrowser renders a page in a headless browser and returns the rendered HTML.
// A non-2xx status on the main document is reported as an *Error, like URL does.
// Requires Chrome/Chromium to be installed on the system.
func WithBrowser(ctx context.Context, url string, timeout time.Duration, verbose bool) (string, error) {
	if verbose {
		log.Printf("[BROWSER] Starting headless browser for: %s", url)
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	resp, err := chromedp.RunResponse(browserCtx, chromedp.Navigate(url))
	if err != nil {
		return "", &Error{
			URL:     url,
			Message: "browser navigation failed",
			Cause:   err,
		}
	}
	// resp is nil for pages served without a network response, e.g. about:blank.
	if resp != nil {
		if verbose {
			log.Printf("[BROWSER] %s -> %d", url, resp.Status)
		}
		if err := checkStatus(url, int(resp.Status)); err != nil {
			return "", err
		}
	}

	var html string
	err = chromedp.Run(browserCtx,
		chromedp.WaitReady("body"),
		// Give client-side rendering a moment to fill in the article.
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{
			URL:     url,
			Message: "browser rendering failed",
			Cause:   err,
		}
	}

	if verbose {
		log.Printf("[BROWSER] Rendered HTML: %d bytes", len(html))
	}

	return html, nil
}

// BrowserFetcher fetches page HTML by rendering it in headless Chrome.
type BrowserFetcher struct {
	Timeout time.Duration
	Verbose bool
}

// Fetch renders urlStr and returns the resulting HTML.
func (f *BrowserFetcher) Fetch(ctx context.Context, urlStr string) (string, error) {
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return WithBrowser(ctx, urlStr, timeout, f.Verbose)
}
