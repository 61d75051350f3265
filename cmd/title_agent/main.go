// Package main provides the entry point for the meta title scoring CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "title_agent",
	Short: "Meta title similarity scorer",
	Long:  "Title Agent scores candidate meta titles against the content of the page they describe, using embedding cosine similarity.",
}

var (
	configPath     string
	catalogSource  string
	providerFlag   string
	strategyFlag   string
	useBrowserFlag bool
	verboseFlag    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVarP(&catalogSource, "catalog", "c", "", "Catalog CSV/JSON file or spreadsheet URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&providerFlag, "provider", "", "Embedding provider: gemini or hashing (overrides config)")
	rootCmd.PersistentFlags().StringVar(&strategyFlag, "strategy", "", "Extraction strategy: selector or regex (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&useBrowserFlag, "browser", false, "Render pages with headless Chrome")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose logging")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
