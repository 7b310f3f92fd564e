// Package main provides the entry point for the tenant screening agent.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "screening_agent",
	Short: "Tenant background screening agent",
	Long:  "Runs tenant background checks by fusing AI web-search findings with identity-graph records, scores the result against a fixed risk rule set, and delivers PDF reports via CLI or REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
