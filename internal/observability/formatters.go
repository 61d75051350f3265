// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/title-scorer/internal/cache"
	"github.com/jonathan/title-scorer/internal/session"
	"github.com/jonathan/title-scorer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of failures to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// PrintEntries outputs the numbered catalog, one title per line. Numbering starts at 1.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintEntries(entries []types.CatalogEntry) {
	fmt.Fprintln(p.out, "Choose a title from the following list:")
	for i, entry := range entries {
		title := entry.Title
		if title == "" {
			title = entry.URL
		}
		fmt.Fprintf(p.out, "%d. %s\n", i+1, title)
	}
}

// PrintSelection outputs the selected entry, the score of its current title, and any keyword suggestion.
func (p *Printer) PrintSelection(sel *session.Selection) {
	if sel == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title: %s\n", sel.Entry.Title))
	sb.WriteString(fmt.Sprintf("URL:   %s\n", sel.Entry.URL))

	if sel.Baseline != nil {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Current score: %.4f (%s)\n", sel.Baseline.Result.Score, sel.Baseline.Result.Category))
		if w := sel.Baseline.LengthWarning; w != nil {
			sb.WriteString(fmt.Sprintf("Current title is %d characters over the limit\n", w.Excess))
		}
	}

	if sel.Suggestion != "" {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Top query: %s\n", sel.Suggestion))
	}

	p.printBox("SELECTED PAGE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEvaluation outputs the score and category of a candidate title, then its length warning and suggestion.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintEvaluation(eval *types.Evaluation) {
	if eval == nil {
		return
	}

	fmt.Fprintf(p.out, "Similarity score between the new title and the content from 0 to 1: %.4f\n", eval.Result.Score)
	fmt.Fprintf(p.out, "This similarity is categorized as: %s\n", eval.Result.Category)
	if w := eval.LengthWarning; w != nil {
		fmt.Fprintf(p.out, "Your meta title is too long! Remove %d characters.\n", w.Excess)
	}
	if eval.Suggestion != "" {
		fmt.Fprintf(p.out, "The top query for this page is: %s. Use it in your new meta title!\n", eval.Suggestion)
	}
}

// PrintWarmReport summarizes a cache warm-up.
func (p *Printer) PrintWarmReport(total int, failures []cache.WarmFailure) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Pages:     %d\n", total))
	sb.WriteString(fmt.Sprintf("Cached:    %d\n", total-len(failures)))
	sb.WriteString(fmt.Sprintf("Failed:    %d\n", len(failures)))

	if len(failures) > 0 {
		sb.WriteString("\n")
		count := min(len(failures), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", failures[i].Entry.URL))
			sb.WriteString(fmt.Sprintf("    %v\n", failures[i].Err))
		}
		if len(failures) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(failures)-maxItemsToShow))
		}
	}

	p.printBox("CACHE WARM-UP", strings.TrimSuffix(sb.String(), "\n"))
}
