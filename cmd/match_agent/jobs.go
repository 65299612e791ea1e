package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/talent-match/internal/types"
	schemafiles "github.com/jonathan/talent-match/schemas"
)

var (
	jobsInFile      string
	jobsBusinessID  string
	jobsJobID       string
	jobsCandidateID string
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Manage the job postings and applications matching reads",
}

var jobsImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Create or replace a job posting from a JSON file",
	Long: `Validate a job posting file against its JSON schema and store it.
A posting with an existing id is replaced, which also changes its cached rankings.`,
	RunE: runJobsImport,
}

var jobsCloseCmd = &cobra.Command{
	Use:   "close",
	Short: "Close a job posting so business recommendations skip it",
	RunE:  runJobsClose,
}

var jobsApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Record that a candidate applied to a job",
	Long:  "Record an application. Applicants are left out of the job's matching-applicants ranking.",
	RunE:  runJobsApply,
}

func init() {
	jobsImportCmd.Flags().StringVar(&jobsInFile, "in", "", "Path to job posting JSON (required)")
	jobsImportCmd.Flags().StringVar(&jobsBusinessID, "business-id", "", "Owning business, overrides business_id in the file")

	jobsCloseCmd.Flags().StringVar(&jobsJobID, "job-id", "", "Job posting ID (required)")

	jobsApplyCmd.Flags().StringVar(&jobsJobID, "job-id", "", "Job posting ID (required)")
	jobsApplyCmd.Flags().StringVar(&jobsCandidateID, "candidate-id", "", "Candidate ID (required)")

	jobsCmd.AddCommand(jobsImportCmd, jobsCloseCmd, jobsApplyCmd)
	rootCmd.AddCommand(jobsCmd)
}

func runJobsImport(cmd *cobra.Command, _ []string) error {
	job, err := loadJobFile(jobsInFile, jobsBusinessID)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	saved, err := a.db.UpsertJobPosting(ctx, job)
	if err != nil {
		return err
	}
	a.logger.Info("job posting stored",
		zap.String("job_id", saved.ID.String()),
		zap.String("business_id", saved.BusinessID.String()),
		zap.String("status", saved.Status),
	)
	fmt.Fprintln(cmd.OutOrStdout(), saved.ID)
	return nil
}

func runJobsClose(cmd *cobra.Command, _ []string) error {
	jobID, err := parseID("job-id", jobsJobID)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if err := a.db.CloseJobPosting(ctx, jobID); err != nil {
		return err
	}
	a.logger.Info("job posting closed", zap.String("job_id", jobID.String()))
	return nil
}

func runJobsApply(cmd *cobra.Command, _ []string) error {
	jobID, err := parseID("job-id", jobsJobID)
	if err != nil {
		return err
	}
	candidateID, err := parseID("candidate-id", jobsCandidateID)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if err := a.db.RecordApplication(ctx, jobID, candidateID); err != nil {
		return err
	}
	a.logger.Info("application recorded",
		zap.String("job_id", jobID.String()),
		zap.String("candidate_id", candidateID.String()),
	)
	return nil
}

// loadJobFile validates and decodes a job posting file. businessID, when set, replaces
// the file's business_id; a posting must end up with an owner.
func loadJobFile(path, businessID string) (*types.JobPosting, error) {
	if path == "" {
		return nil, fmt.Errorf("--in is required")
	}

	var job types.JobPosting
	if err := loadValidated(schemafiles.JobPosting, path, &job); err != nil {
		return nil, err
	}

	if businessID != "" {
		id, err := parseID("business-id", businessID)
		if err != nil {
			return nil, err
		}
		job.BusinessID = id
	}
	if job.BusinessID == uuid.Nil {
		return nil, fmt.Errorf("%s: business_id is required (set it in the file or pass --business-id)", path)
	}
	return &job, nil
}
