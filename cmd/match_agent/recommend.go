package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-match/internal/observability"
)

var (
	recommendBusinessID string
	recommendLimit      int
	recommendMinScore   int
	recommendJSON       bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend applicants for every open job of a business",
	RunE:  runRecommend,
}

func init() {
	recommendCmd.Flags().StringVar(&recommendBusinessID, "business-id", "", "Business ID (required)")
	recommendCmd.Flags().IntVar(&recommendLimit, "limit", 0, "Maximum applicants per job (default matching.recommend-limit)")
	recommendCmd.Flags().IntVar(&recommendMinScore, "min-score", -1, "Minimum score (default matching.min-score)")
	recommendCmd.Flags().BoolVar(&recommendJSON, "output-json", false, "Print results as JSON")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	businessID, err := parseID("business-id", recommendBusinessID)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	opts := matchOptions(a.cfg.Matching.RecommendLimit, a.cfg.Matching.MinScore, recommendLimit, recommendMinScore)
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	recs, err := a.matcher().RecommendForBusiness(ctx, businessID, opts)
	if err != nil {
		return err
	}

	if recommendJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	}
	observability.NewPrinter(os.Stdout).PrintRecommendations(recs)
	return nil
}
