package matching

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/jonathan/talent-match/internal/types"
)

// GetBulkRecommendations ranks candidates for each job. A job that fails records its error
// in the result and does not stop the others.
func (m *Matcher) GetBulkRecommendations(ctx context.Context, jobIDs []uuid.UUID, opts types.MatchOptions) map[uuid.UUID]types.BulkRecommendation {
	ctx, span := tracer.Start(ctx, "Matcher.GetBulkRecommendations")
	defer span.End()
	span.SetAttributes(attribute.Int("jobs.count", len(jobIDs)))

	recommendations := make(map[uuid.UUID]types.BulkRecommendation, len(jobIDs))
	for _, jobID := range jobIDs {
		job, err := m.loadJob(ctx, jobID)
		if err != nil {
			m.logger.Warn("recommendation skipped", zap.String("job_id", jobID.String()), zap.Error(err))
			recommendations[jobID] = types.BulkRecommendation{
				Job:        types.JobSummary{ID: jobID},
				Applicants: []types.MatchResult{},
				Error:      err.Error(),
			}
			continue
		}
		recommendations[jobID] = m.recommendJob(ctx, job, opts)
	}
	return recommendations
}

// RecommendForBusiness ranks candidates for every job of the business that is not closed
func (m *Matcher) RecommendForBusiness(ctx context.Context, businessID uuid.UUID, opts types.MatchOptions) (map[uuid.UUID]types.BulkRecommendation, error) {
	ctx, span := tracer.Start(ctx, "Matcher.RecommendForBusiness")
	defer span.End()
	span.SetAttributes(attribute.String("business.id", businessID.String()))

	jobs, err := m.jobs.ListOpenJobPostingsByBusiness(ctx, businessID)
	if err != nil {
		span.RecordError(err)
		return nil, &StoreError{Message: "failed to list business jobs", Cause: err}
	}

	recommendations := make(map[uuid.UUID]types.BulkRecommendation, len(jobs))
	for i := range jobs {
		if jobs[i].IsClosed() {
			continue
		}
		recommendations[jobs[i].ID] = m.recommendJob(ctx, &jobs[i], opts)
	}
	return recommendations, nil
}

func (m *Matcher) recommendJob(ctx context.Context, job *types.JobPosting, opts types.MatchOptions) types.BulkRecommendation {
	rec := types.BulkRecommendation{Job: job.Summary(), Applicants: []types.MatchResult{}}
	results, err := m.matchJob(ctx, job, opts)
	if err != nil {
		m.logger.Warn("recommendation failed", zap.String("job_id", job.ID.String()), zap.Error(err))
		rec.Error = err.Error()
		return rec
	}
	rec.Applicants = results
	rec.TotalFound = len(results)
	return rec
}

// GetApplicantMatch scores one candidate against one job and returns the full breakdown
func (m *Matcher) GetApplicantMatch(ctx context.Context, jobID, candidateID uuid.UUID) (*types.ApplicantMatch, error) {
	ctx, span := tracer.Start(ctx, "Matcher.GetApplicantMatch")
	defer span.End()
	span.SetAttributes(
		attribute.String("job.id", jobID.String()),
		attribute.String("candidate.id", candidateID.String()),
	)

	job, err := m.loadJob(ctx, jobID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return m.MatchApplicant(ctx, job, candidateID)
}

// MatchApplicant scores one candidate against a job the caller already loaded
func (m *Matcher) MatchApplicant(ctx context.Context, job *types.JobPosting, candidateID uuid.UUID) (*types.ApplicantMatch, error) {
	ctx, span := tracer.Start(ctx, "Matcher.MatchApplicant")
	defer span.End()

	resume, err := m.resumes.GetParsedResumeByCandidate(ctx, candidateID)
	if err != nil {
		span.RecordError(err)
		return nil, &StoreError{Message: "failed to load resume", Cause: err}
	}
	if resume == nil || !resume.HasParsedData() {
		return nil, &CandidateNotFoundError{CandidateID: candidateID}
	}

	return &types.ApplicantMatch{
		Job:       job.Summary(),
		Resume:    resume,
		Breakdown: m.scoreFn(job, resume),
	}, nil
}
