package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/talent-match/internal/ingestion"
	"github.com/jonathan/talent-match/internal/llm"
)

var (
	parseInputFile   string
	parseCandidateID string
	parseUsername    string
	parseAPIKey      string
	parseDryRun      bool
)

var parseResumeCmd = &cobra.Command{
	Use:   "parse-resume",
	Short: "Extract a parsed résumé from résumé text with Gemini and store it",
	Long:  "Read a plain-text or HTML résumé, extract skills, experience, education and titles with Gemini, and store the result for the candidate.",
	RunE:  runParseResume,
}

func init() {
	parseResumeCmd.Flags().StringVarP(&parseInputFile, "in", "i", "", "Path to résumé text or HTML (required)")
	parseResumeCmd.Flags().StringVar(&parseCandidateID, "candidate-id", "", "Candidate ID (required unless --dry-run)")
	parseResumeCmd.Flags().StringVar(&parseUsername, "username", "", "Candidate username (required)")
	parseResumeCmd.Flags().StringVar(&parseAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	parseResumeCmd.Flags().BoolVar(&parseDryRun, "dry-run", false, "Print the extraction without storing it")
	rootCmd.AddCommand(parseResumeCmd)
}

func runParseResume(cmd *cobra.Command, _ []string) error {
	if parseInputFile == "" {
		return fmt.Errorf("--in is required")
	}
	if parseUsername == "" {
		return fmt.Errorf("--username is required")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	apiKey := parseAPIKey
	if apiKey == "" {
		apiKey = cfg.Gemini.APIKey
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	text, err := ingestion.ReadResumeFile(parseInputFile)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	geminiCfg := llm.ConfigForModel(cfg.Gemini.Model)

	if parseDryRun {
		client, err := llm.NewGeminiClient(ctx, geminiCfg, apiKey, nil)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		extractor, err := llm.NewResumeExtractor(client, zap.NewNop())
		if err != nil {
			return err
		}
		input, err := extractor.Extract(ctx, parseUsername, ingestion.CleanText(text))
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(input)
	}

	candidateID, err := parseID("candidate-id", parseCandidateID)
	if err != nil {
		return err
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	client, err := llm.NewGeminiClient(ctx, geminiCfg, apiKey, a.logger)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	extractor, err := llm.NewResumeExtractor(client, a.logger)
	if err != nil {
		return err
	}
	svc := ingestion.NewService(a.db, a.invalidator(), extractor, a.logger)
	resume, err := svc.IngestText(ctx, candidateID, parseUsername, text)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Stored parsed résumé for %s (%d skills, %d positions, %d education entries)\n",
		resume.Username, len(resume.TechnicalSkills), len(resume.WorkExperience), len(resume.Education))
	return nil
}
