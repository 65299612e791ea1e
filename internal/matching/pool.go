package matching

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/jonathan/talent-match/internal/types"
)

// ResumeStore reads parsed résumés
type ResumeStore interface {
	// ListEligibleResumes returns résumés with parsed data whose candidate is not excluded.
	// Implementations may return extra rows; the pool filters again.
	ListEligibleResumes(ctx context.Context, exclude []uuid.UUID) ([]types.ParsedResume, error)
	// GetParsedResumeByCandidate returns nil, nil when the candidate has no résumé
	GetParsedResumeByCandidate(ctx context.Context, candidateID uuid.UUID) (*types.ParsedResume, error)
}

// CandidatePool selects the résumés that take part in a ranking
type CandidatePool struct {
	store  ResumeStore
	logger *zap.Logger
}

// NewCandidatePool creates a pool over the given store
func NewCandidatePool(store ResumeStore, logger *zap.Logger) *CandidatePool {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CandidatePool{store: store, logger: logger}
}

// FetchEligible returns every résumé with at least one populated field whose candidate is
// not in exclude. Order follows the store; the pool is global, not pre-filtered by job.
func (p *CandidatePool) FetchEligible(ctx context.Context, exclude []uuid.UUID) ([]types.ParsedResume, error) {
	ctx, span := tracer.Start(ctx, "CandidatePool.FetchEligible")
	defer span.End()

	resumes, err := p.store.ListEligibleResumes(ctx, exclude)
	if err != nil {
		span.RecordError(err)
		return nil, &StoreError{Message: "failed to list eligible resumes", Cause: err}
	}

	excluded := make(map[uuid.UUID]bool, len(exclude))
	for _, id := range exclude {
		excluded[id] = true
	}

	eligible := make([]types.ParsedResume, 0, len(resumes))
	for _, r := range resumes {
		if excluded[r.CandidateID] || !r.HasParsedData() {
			continue
		}
		eligible = append(eligible, r)
	}

	span.SetAttributes(
		attribute.Int("candidates.fetched", len(resumes)),
		attribute.Int("candidates.eligible", len(eligible)),
		attribute.Int("candidates.excluded", len(exclude)),
	)
	p.logger.Debug("candidate pool fetched",
		zap.Int("fetched", len(resumes)),
		zap.Int("eligible", len(eligible)),
		zap.Int("excluded", len(exclude)),
	)

	return eligible, nil
}
