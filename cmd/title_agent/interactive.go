package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jonathan/title-scorer/internal/embedding"
	"github.com/jonathan/title-scorer/internal/observability"
	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Choose pages and score new meta titles in a prompt loop",
	Long: `Print the catalog, select a page by number, then enter candidate meta titles one at a time.
Type 'exit' to return to the catalog, or 0 at the catalog prompt to quit.
With --warm every page is fetched and embedded up front so selections answer immediately.`,
	RunE: runInteractive,
}

var interactiveWarm bool

func init() {
	interactiveCmd.Flags().BoolVar(&interactiveWarm, "warm", false, "Fetch and embed every catalog page before the first prompt")

	rootCmd.AddCommand(interactiveCmd)
}

var (
	errInvalidInput     = errors.New("invalid input, please enter a number")
	errInvalidSelection = errors.New("invalid selection, please choose a valid title number")
)

const exitToken = "exit"

func runInteractive(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if interactiveWarm {
		warmCache(ctx, a, os.Stdout)
	}
	return interact(ctx, a, os.Stdin, os.Stdout)
}

// parseSelection converts a catalog prompt answer into a 1-based entry number.
// Zero means quit.
func parseSelection(input string, count int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, errInvalidInput
	}
	if n < 0 || n > count {
		return 0, errInvalidSelection
	}
	return n, nil
}

// isExitToken reports whether a title prompt answer leaves the selected entry.
func isExitToken(input string) bool {
	return strings.EqualFold(strings.TrimSpace(input), exitToken)
}

// interact runs the catalog and title prompts until the user quits or in is exhausted.
//
//nolint:errcheck // writing to the terminal; errors are not recoverable
func interact(ctx context.Context, a *app, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	printer := observability.NewPrinter(out)

	for {
		fmt.Fprintln(out)
		printer.PrintEntries(a.entries)
		fmt.Fprint(out, "Enter the number of the title you want to work with (or 0 to exit): ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		index, err := parseSelection(scanner.Text(), len(a.entries))
		if err != nil {
			fmt.Fprintf(out, "%s\n", capitalize(err.Error()))
			continue
		}
		if index == 0 {
			fmt.Fprintln(out, "Exiting the program.")
			return nil
		}

		entry, _ := a.entryAt(index)
		fmt.Fprintf(out, "\nYou selected the title: '%s'\n", entry.Title)
		fmt.Fprintf(out, "Fetching content from URL: %s...\n", entry.URL)

		selection, err := a.session.SelectEntry(ctx, entry)
		if err != nil {
			fmt.Fprintf(out, "Could not fetch content for this URL: %v\n", err)
			continue
		}
		printer.PrintSelection(selection)

		for {
			fmt.Fprint(out, "\nEnter a new title (or type 'exit' to quit): ")
			if !scanner.Scan() {
				a.session.Exit()
				return scanner.Err()
			}
			title := scanner.Text()
			if isExitToken(title) {
				fmt.Fprintln(out, "Exiting this title.")
				a.session.Exit()
				break
			}

			eval, err := a.session.EvaluateTitle(ctx, title)
			if err != nil {
				if embedding.IsEmptyInput(err) {
					fmt.Fprintln(out, "The title is empty, please enter some text.")
				} else {
					fmt.Fprintf(out, "Could not score this title: %v\n", err)
				}
				continue
			}
			printer.PrintEvaluation(eval)
		}
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
