package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/title-scorer/internal/observability"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score candidate meta titles for one catalog entry",
	Long:  "Fetch the page of the selected catalog entry, then score each --title against its content.",
	RunE:  runScore,
}

var (
	scoreIndex  int
	scoreTitles []string
)

func init() {
	scoreCmd.Flags().IntVarP(&scoreIndex, "index", "n", 0, "1-based catalog entry number (required)")
	scoreCmd.Flags().StringArrayVarP(&scoreTitles, "title", "t", nil, "Candidate meta title (repeatable)")

	_ = scoreCmd.MarkFlagRequired("index")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	if scoreIndex < 1 {
		return fmt.Errorf("--index must be 1 or greater")
	}

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	entry, err := a.entryAt(scoreIndex)
	if err != nil {
		return err
	}

	selection, err := a.session.SelectEntry(ctx, entry)
	if err != nil {
		return fmt.Errorf("could not fetch content for %s: %w", entry.URL, err)
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintSelection(selection)

	for _, title := range scoreTitles {
		eval, err := a.session.EvaluateTitle(ctx, title)
		if err != nil {
			return fmt.Errorf("failed to score %q: %w", title, err)
		}
		_, _ = fmt.Fprintf(os.Stdout, "\nTitle: %s\n", title)
		printer.PrintEvaluation(eval)
	}

	return nil
}
