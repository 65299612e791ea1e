package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-match/internal/matching"
	"github.com/jonathan/talent-match/internal/observability"
	"github.com/jonathan/talent-match/internal/schemas"
	"github.com/jonathan/talent-match/internal/types"
	schemafiles "github.com/jonathan/talent-match/schemas"
)

var (
	scoreJobFile    string
	scoreResumeFile string
	scoreJSON       bool
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one résumé against one job posting from JSON files",
	Long:  "Validate a job posting and a parsed résumé against their JSON schemas and print the match breakdown. No database is needed.",
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&scoreJobFile, "job", "", "Path to job posting JSON (required)")
	scoreCmd.Flags().StringVar(&scoreResumeFile, "resume", "", "Path to parsed résumé JSON (required)")
	scoreCmd.Flags().BoolVar(&scoreJSON, "output-json", false, "Print the breakdown as JSON")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	if scoreJobFile == "" || scoreResumeFile == "" {
		return fmt.Errorf("--job and --resume are required")
	}
	return scoreFiles(cmd.OutOrStdout(), scoreJobFile, scoreResumeFile, scoreJSON)
}

// scoreFiles loads both documents, validates them and writes the breakdown to out
func scoreFiles(out io.Writer, jobPath, resumePath string, asJSON bool) error {
	var job types.JobPosting
	if err := loadValidated(schemafiles.JobPosting, jobPath, &job); err != nil {
		return err
	}
	var resume types.ParsedResume
	if err := loadValidated(schemafiles.ParsedResume, resumePath, &resume); err != nil {
		return err
	}

	breakdown := matching.Score(&job, &resume)

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(breakdown)
	}
	observability.NewPrinter(out).PrintBreakdown(fmt.Sprintf("%s vs %s", resume.Username, job.Title), breakdown)
	return nil
}

// loadValidated checks path against schemaName and decodes it into v
func loadValidated(schemaName, path string, v any) error {
	if err := schemas.ValidateFile(schemaName, path); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}
