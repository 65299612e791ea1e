package matching

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"runtime"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/talent-match/internal/types"
)

var tracer = otel.Tracer("github.com/jonathan/talent-match/internal/matching")

// JobStore reads job postings
type JobStore interface {
	// GetJobPostingByID returns nil, nil when the job does not exist
	GetJobPostingByID(ctx context.Context, id uuid.UUID) (*types.JobPosting, error)
	// ListOpenJobPostingsByBusiness returns the business's jobs that are not closed
	ListOpenJobPostingsByBusiness(ctx context.Context, businessID uuid.UUID) ([]types.JobPosting, error)
}

// ResultCache stores ranked results keyed by CacheKey. Entries live under an invalidation
// generation; writing under a superseded generation leaves the entry unreachable.
type ResultCache interface {
	Generation(ctx context.Context) (int64, error)
	GetMatches(ctx context.Context, generation int64, key string) ([]types.MatchResult, bool, error)
	SetMatches(ctx context.Context, generation int64, key string, results []types.MatchResult) error
}

// MatchPublisher is notified after a ranking is computed
type MatchPublisher interface {
	PublishMatchesComputed(ctx context.Context, jobID uuid.UUID, results []types.MatchResult) error
}

// Config holds the dependencies of a Matcher. Cache and Publisher are optional.
type Config struct {
	Jobs      JobStore
	Resumes   ResumeStore
	Cache     ResultCache
	Publisher MatchPublisher
	Logger    *zap.Logger
	Workers   int // concurrent scorers, defaults to GOMAXPROCS
}

// Matcher ranks the candidate pool against job postings
type Matcher struct {
	jobs      JobStore
	resumes   ResumeStore
	pool      *CandidatePool
	cache     ResultCache
	publisher MatchPublisher
	logger    *zap.Logger
	workers   int
	scoreFn   func(*types.JobPosting, *types.ParsedResume) types.MatchBreakdown
}

// NewMatcher creates a Matcher from cfg
func NewMatcher(cfg Config) *Matcher {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Matcher{
		jobs:      cfg.Jobs,
		resumes:   cfg.Resumes,
		pool:      NewCandidatePool(cfg.Resumes, logger),
		cache:     cfg.Cache,
		publisher: cfg.Publisher,
		logger:    logger,
		workers:   workers,
		scoreFn:   Score,
	}
}

// GetMatchingApplicants ranks the eligible candidates for a job. Results have
// score >= opts.MinScore, are sorted by descending score (ties keep pool order) and hold at
// most opts.Limit entries. A missing job yields an error matching ErrJobNotFound.
func (m *Matcher) GetMatchingApplicants(ctx context.Context, jobID uuid.UUID, opts types.MatchOptions) ([]types.MatchResult, error) {
	ctx, span := tracer.Start(ctx, "Matcher.GetMatchingApplicants")
	defer span.End()
	span.SetAttributes(attribute.String("job.id", jobID.String()))

	job, err := m.loadJob(ctx, jobID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	results, err := m.matchJob(ctx, job, opts)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("results.count", len(results)))
	return results, nil
}

// MatchJob ranks the eligible candidates for a job the caller already loaded
func (m *Matcher) MatchJob(ctx context.Context, job *types.JobPosting, opts types.MatchOptions) ([]types.MatchResult, error) {
	ctx, span := tracer.Start(ctx, "Matcher.MatchJob")
	defer span.End()
	span.SetAttributes(attribute.String("job.id", job.ID.String()))

	results, err := m.matchJob(ctx, job, opts)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("results.count", len(results)))
	return results, nil
}

// loadJob fetches a job and converts a missing row into JobNotFoundError
func (m *Matcher) loadJob(ctx context.Context, jobID uuid.UUID) (*types.JobPosting, error) {
	job, err := m.jobs.GetJobPostingByID(ctx, jobID)
	if err != nil {
		return nil, &StoreError{Message: "failed to load job", Cause: err}
	}
	if job == nil {
		return nil, &JobNotFoundError{JobID: jobID}
	}
	return job, nil
}

// matchJob runs the pipeline for an already loaded job
func (m *Matcher) matchJob(ctx context.Context, job *types.JobPosting, opts types.MatchOptions) ([]types.MatchResult, error) {
	opts = normalizeOptions(opts)
	key := CacheKey(job, opts)

	// Read before the pool so a résumé write during scoring strands this ranking
	// under the old generation.
	generation, cacheable := m.cacheGeneration(ctx)
	if cacheable {
		cached, ok, err := m.cache.GetMatches(ctx, generation, key)
		if err != nil {
			m.logger.Warn("match cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			m.logger.Debug("match cache hit", zap.String("job_id", job.ID.String()))
			return cached, nil
		}
	}

	candidates, err := m.pool.FetchEligible(ctx, opts.ExcludeApplicants)
	if err != nil {
		return nil, err
	}

	scored, err := m.scoreAll(ctx, job, candidates)
	if err != nil {
		return nil, err
	}

	results := Rank(scored, opts.MinScore, opts.Limit)

	m.logger.Info("matching applicants computed",
		zap.String("job_id", job.ID.String()),
		zap.Int("candidates", len(candidates)),
		zap.Int("returned", len(results)),
		zap.Int("min_score", opts.MinScore),
		zap.Int("limit", opts.Limit),
	)

	if cacheable {
		if err := m.cache.SetMatches(ctx, generation, key, results); err != nil {
			m.logger.Warn("match cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	if m.publisher != nil {
		if err := m.publisher.PublishMatchesComputed(ctx, job.ID, results); err != nil {
			m.logger.Warn("failed to publish match results", zap.String("job_id", job.ID.String()), zap.Error(err))
		}
	}

	return results, nil
}

// cacheGeneration reports the current cache generation. The cache is skipped when
// it is not configured or the generation cannot be read.
func (m *Matcher) cacheGeneration(ctx context.Context) (int64, bool) {
	if m.cache == nil {
		return 0, false
	}
	generation, err := m.cache.Generation(ctx)
	if err != nil {
		m.logger.Warn("match cache generation read failed", zap.Error(err))
		return 0, false
	}
	return generation, true
}

// scoreAll scores every candidate concurrently, keeping pool order.
// Candidates whose scoring panics are logged and left out.
func (m *Matcher) scoreAll(ctx context.Context, job *types.JobPosting, candidates []types.ParsedResume) ([]types.MatchResult, error) {
	scored := make([]*types.MatchResult, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)
	for i := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scored[i] = m.scoreCandidate(job, &candidates[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scoring interrupted: %w", err)
	}

	results := make([]types.MatchResult, 0, len(candidates))
	for _, r := range scored {
		if r != nil {
			results = append(results, *r)
		}
	}
	return results, nil
}

// scoreCandidate scores one résumé and returns nil if scoring panics
func (m *Matcher) scoreCandidate(job *types.JobPosting, resume *types.ParsedResume) (result *types.MatchResult) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("scoring failed, candidate skipped",
				zap.String("job_id", job.ID.String()),
				zap.String("candidate_id", resume.CandidateID.String()),
				zap.Any("panic", r),
			)
			result = nil
		}
	}()

	breakdown := m.scoreFn(job, resume)
	return &types.MatchResult{
		CandidateID: resume.CandidateID,
		ResumeID:    resume.ID,
		Username:    resume.Username,
		Score:       breakdown.Score,
		Reasons:     breakdown.Reasons,
	}
}

// Rank keeps results with score >= minScore, sorts them by descending score with ties in
// input order, and truncates to limit.
func Rank(results []types.MatchResult, minScore, limit int) []types.MatchResult {
	kept := make([]types.MatchResult, 0, len(results))
	for _, r := range results {
		if r.Score >= minScore {
			kept = append(kept, r)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score > kept[j].Score
	})

	if limit >= 0 && len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}

// normalizeOptions applies the default limit and clamps minScore to [0,100]
func normalizeOptions(opts types.MatchOptions) types.MatchOptions {
	if opts.Limit <= 0 {
		opts.Limit = types.DefaultMatchLimit
	}
	opts.MinScore = min(max(opts.MinScore, 0), 100)
	return opts
}

// CacheKey identifies a ranking by job version and options. Editing the job changes
// UpdatedAt and so the key. Exclusions are order-independent.
func CacheKey(job *types.JobPosting, opts types.MatchOptions) string {
	ids := make([]string, 0, len(opts.ExcludeApplicants))
	for _, id := range opts.ExcludeApplicants {
		ids = append(ids, id.String())
	}
	sort.Strings(ids)
	sum := sha256.Sum256([]byte(strings.Join(ids, ",")))
	return fmt.Sprintf("%s:%d:%d:%d:%s", job.ID, job.UpdatedAt.UnixMicro(), opts.Limit, opts.MinScore, hex.EncodeToString(sum[:8]))
}
