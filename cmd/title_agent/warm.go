package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jonathan/title-scorer/internal/cache"
	"github.com/jonathan/title-scorer/internal/observability"
	"github.com/spf13/cobra"
)

var warmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Check that every catalog page can be fetched and embedded",
	Long: `Extract and embed the content of every catalog entry concurrently, reporting the pages that failed.
Embeddings live only as long as the process; use 'interactive --warm' to pre-fill the cache for a session.`,
	RunE: runWarm,
}

var warmConcurrency int

func init() {
	warmCmd.Flags().IntVar(&warmConcurrency, "concurrency", 0, "Maximum pages fetched at once (overrides config)")

	rootCmd.AddCommand(warmCmd)
}

func runWarm(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	start := time.Now()
	warmCache(ctx, a, os.Stdout)
	_, _ = fmt.Fprintf(os.Stdout, "Finished in %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}

// warmCache embeds every catalog page into the app's cache and prints a report.
func warmCache(ctx context.Context, a *app, out io.Writer) []cache.WarmFailure {
	concurrency := a.cfg.WarmConcurrency
	if warmConcurrency > 0 {
		concurrency = warmConcurrency
	}

	failures := a.cache.Warm(ctx, a.entries, concurrency)
	observability.NewPrinter(out).PrintWarmReport(len(a.entries), failures)
	return failures
}
