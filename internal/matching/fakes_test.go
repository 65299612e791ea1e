package matching

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/talent-match/internal/types"
)

type fakeJobStore struct {
	jobs       map[uuid.UUID]*types.JobPosting
	byBusiness map[uuid.UUID][]types.JobPosting
	err        error
}

func (f *fakeJobStore) GetJobPostingByID(_ context.Context, id uuid.UUID) (*types.JobPosting, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.jobs[id], nil
}

func (f *fakeJobStore) ListOpenJobPostingsByBusiness(_ context.Context, businessID uuid.UUID) ([]types.JobPosting, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byBusiness[businessID], nil
}

// fakeResumeStore ignores exclusions so the pool's own filtering is exercised
type fakeResumeStore struct {
	resumes []types.ParsedResume
	err     error
	calls   int
	onList  func()
}

func (f *fakeResumeStore) ListEligibleResumes(_ context.Context, _ []uuid.UUID) ([]types.ParsedResume, error) {
	f.calls++
	if f.onList != nil {
		f.onList()
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.resumes, nil
}

func (f *fakeResumeStore) GetParsedResumeByCandidate(_ context.Context, candidateID uuid.UUID) (*types.ParsedResume, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.resumes {
		if f.resumes[i].CandidateID == candidateID {
			r := f.resumes[i]
			return &r, nil
		}
	}
	return nil, nil
}

// fakeCache mirrors the Redis cache: entries are addressed by generation and key
type fakeCache struct {
	mu         sync.Mutex
	generation int64
	entries    map[string][]types.MatchResult
	getErr     error
	genErr     error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]types.MatchResult)}
}

func (c *fakeCache) Generation(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation, c.genErr
}

func (c *fakeCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
}

func (c *fakeCache) GetMatches(_ context.Context, generation int64, key string) ([]types.MatchResult, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	r, ok := c.entries[fmt.Sprintf("%d:%s", generation, key)]
	return r, ok, nil
}

func (c *fakeCache) SetMatches(_ context.Context, generation int64, key string, results []types.MatchResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[fmt.Sprintf("%d:%s", generation, key)] = results
	return nil
}

type publishedMatches struct {
	jobID   uuid.UUID
	results []types.MatchResult
}

type fakePublisher struct {
	published []publishedMatches
}

func (p *fakePublisher) PublishMatchesComputed(_ context.Context, jobID uuid.UUID, results []types.MatchResult) error {
	p.published = append(p.published, publishedMatches{jobID: jobID, results: results})
	return nil
}

func resumeFor(username string) types.ParsedResume {
	return types.ParsedResume{
		ID:              uuid.New(),
		CandidateID:     uuid.New(),
		Username:        username,
		TechnicalSkills: []string{"go"},
	}
}
