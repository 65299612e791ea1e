// Package main provides the match_agent CLI: the matching API server, one-off ranking
// commands and the résumé event consumer.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logJSON  bool
	logDebug bool
)

var rootCmd = &cobra.Command{
	Use:   "match_agent",
	Short: "Applicant matching for job postings",
	Long:  "match_agent ranks candidates with parsed résumés against job postings and serves the rankings over HTTP.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML or JSON); TALENT_MATCH_* env vars override it")
	rootCmd.PersistentFlags().BoolVarP(&logDebug, "debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&logJSON, "json", "j", false, "json format for logging")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
