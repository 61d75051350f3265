package main

import (
	"context"
	"os"

	"github.com/jonathan/title-scorer/internal/observability"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the catalog entries",
	Long:  "Load the catalog and print each entry's current meta title with its 1-based number.",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	entries, err := loadEntries(context.Background(), cfg)
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintEntries(entries)
	return nil
}
