package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/talent-match/internal/observability"
	"github.com/jonathan/talent-match/internal/types"
)

var (
	matchJobID     string
	matchCandidate string
	matchLimit     int
	matchMinScore  int
	matchExclude   []string
	matchJSON      bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank applicants for a stored job posting",
	Long: `Rank every candidate with a parsed résumé against a job posting from the database and print the best matches.
With --candidate-id, print the full score breakdown of that one candidate instead.`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&matchJobID, "job-id", "", "Job posting ID (required)")
	matchCmd.Flags().StringVar(&matchCandidate, "candidate-id", "", "Score a single candidate and show the breakdown")
	matchCmd.Flags().IntVar(&matchLimit, "limit", 0, "Maximum applicants to return (default matching.limit)")
	matchCmd.Flags().IntVar(&matchMinScore, "min-score", -1, "Minimum score (default matching.min-score)")
	matchCmd.Flags().StringSliceVar(&matchExclude, "exclude", nil, "Candidate IDs to exclude")
	matchCmd.Flags().BoolVar(&matchJSON, "output-json", false, "Print results as JSON")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	jobID, err := parseID("job-id", matchJobID)
	if err != nil {
		return err
	}
	exclude, err := parseIDList(matchExclude)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if matchCandidate != "" {
		return runApplicantMatch(cmd, a, jobID)
	}

	opts := matchOptions(a.cfg.Matching.Limit, a.cfg.Matching.MinScore, matchLimit, matchMinScore)
	opts.ExcludeApplicants = exclude
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	results, err := a.matcher().GetMatchingApplicants(ctx, jobID, opts)
	if err != nil {
		return err
	}

	if matchJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	job, err := a.db.GetJobPostingByID(ctx, jobID)
	if err != nil {
		return err
	}
	summary := types.JobSummary{ID: jobID}
	if job != nil {
		summary = job.Summary()
	}
	observability.NewPrinter(os.Stdout).PrintMatches(summary, results)
	return nil
}

// runApplicantMatch prints how one candidate scores against the job
func runApplicantMatch(cmd *cobra.Command, a *app, jobID uuid.UUID) error {
	candidateID, err := parseID("candidate-id", matchCandidate)
	if err != nil {
		return err
	}

	match, err := a.matcher().GetApplicantMatch(cmd.Context(), jobID, candidateID)
	if err != nil {
		return err
	}

	if matchJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(match)
	}
	title := fmt.Sprintf("%s vs %s", match.Resume.Username, match.Job.Title)
	observability.NewPrinter(os.Stdout).PrintBreakdown(title, match.Breakdown)
	return nil
}

// matchOptions overlays flag values on configured defaults. A flag limit <= 0 or a
// negative min score keeps the default.
func matchOptions(defaultLimit, defaultMinScore, limit, minScore int) types.MatchOptions {
	opts := types.MatchOptions{Limit: defaultLimit, MinScore: defaultMinScore}
	if limit > 0 {
		opts.Limit = limit
	}
	if minScore >= 0 {
		opts.MinScore = minScore
	}
	return opts
}

// parseIDList parses candidate ids, ignoring blanks
func parseIDList(values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("invalid candidate ID %q: %w", v, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
