package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rented123/tenant-screener/internal/risk"
)

var keywordsFile string

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Print or validate the risk keyword configuration",
	Long: `Prints the active risk keyword lists as JSON. With --file the given
override file is loaded and compiled first, so a bad pattern fails here
instead of at check time.`,
	RunE: runKeywords,
}

func init() {
	keywordsCmd.Flags().StringVar(&keywordsFile, "file", "", "Keyword override file to validate and print")
	rootCmd.AddCommand(keywordsCmd)
}

func runKeywords(_ *cobra.Command, _ []string) error {
	keywords := risk.DefaultKeywords()
	if keywordsFile != "" {
		loaded, err := risk.LoadKeywords(keywordsFile)
		if err != nil {
			return err
		}
		keywords = loaded
	}
	if _, err := keywords.Compile(); err != nil {
		return fmt.Errorf("keyword config does not compile: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(keywords)
}
