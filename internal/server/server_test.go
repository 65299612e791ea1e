package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-match/internal/matching"
	"github.com/jonathan/talent-match/internal/server/ratelimit"
	"github.com/jonathan/talent-match/internal/types"
)

// fakeMatcher records the options it was called with
type fakeMatcher struct {
	results   []types.MatchResult
	recs      map[uuid.UUID]types.BulkRecommendation
	match     *types.ApplicantMatch
	err       error
	gotOpts   types.MatchOptions
	gotJobID  uuid.UUID
	gotCandID uuid.UUID
}

func (f *fakeMatcher) MatchJob(_ context.Context, job *types.JobPosting, opts types.MatchOptions) ([]types.MatchResult, error) {
	f.gotJobID = job.ID
	f.gotOpts = opts
	return f.results, f.err
}

func (f *fakeMatcher) RecommendForBusiness(_ context.Context, _ uuid.UUID, opts types.MatchOptions) (map[uuid.UUID]types.BulkRecommendation, error) {
	f.gotOpts = opts
	return f.recs, f.err
}

func (f *fakeMatcher) MatchApplicant(_ context.Context, job *types.JobPosting, candidateID uuid.UUID) (*types.ApplicantMatch, error) {
	f.gotJobID = job.ID
	f.gotCandID = candidateID
	return f.match, f.err
}

type fakeJobs struct {
	jobs map[uuid.UUID]*types.JobPosting
	err  error
}

func (f *fakeJobs) GetJobPostingByID(_ context.Context, id uuid.UUID) (*types.JobPosting, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.jobs[id], nil
}

type fakeApplications struct {
	ids []uuid.UUID
	err error
}

func (f *fakeApplications) ListApplicantIDsByJob(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	return f.ids, f.err
}

type fakeIngester struct {
	input   *types.ParsedResumeInput
	deleted uuid.UUID
	err     error
}

func (f *fakeIngester) Delete(_ context.Context, candidateID uuid.UUID) error {
	f.deleted = candidateID
	return f.err
}

func (f *fakeIngester) Ingest(_ context.Context, candidateID uuid.UUID, input *types.ParsedResumeInput) (*types.ParsedResume, error) {
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	return input.ToResume(candidateID), nil
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

type testServer struct {
	*Server
	matcher *fakeMatcher
	jobs    *fakeJobs
	apps    *fakeApplications
	resumes *fakeIngester
}

func newTestServer() *testServer {
	ts := &testServer{
		matcher: &fakeMatcher{},
		jobs:    &fakeJobs{jobs: map[uuid.UUID]*types.JobPosting{}},
		apps:    &fakeApplications{},
		resumes: &fakeIngester{},
	}
	ts.Server = New(Config{DefaultMinScore: types.DefaultMatchMinScore}, Deps{
		Matcher:      ts.matcher,
		Jobs:         ts.jobs,
		Applications: ts.apps,
		Resumes:      ts.resumes,
	})
	return ts
}

func (ts *testServer) addJob(businessID uuid.UUID) *types.JobPosting {
	job := &types.JobPosting{ID: uuid.New(), BusinessID: businessID, Title: "Backend Engineer", Status: types.JobStatusOpen}
	ts.jobs.jobs[job.ID] = job
	return job
}

func (ts *testServer) do(method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["error"]
}

// TestHealthEndpoint tests the /health endpoint
func TestHealthEndpoint(t *testing.T) {
	s := newTestServer()

	w := s.do(http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestHealthEndpoint_Degraded(t *testing.T) {
	s := newTestServer()
	s.checks = map[string]Pinger{
		"database": fakePinger{},
		"redis":    fakePinger{err: errors.New("connection refused")},
	}

	w := s.do(http.MethodGet, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp["status"])
	assert.Equal(t, "ok", resp["database"])
	assert.Equal(t, "unavailable", resp["redis"])
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer()

	w := s.do(http.MethodOptions, "/jobs/"+uuid.NewString()+"/matching-applicants")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimitMiddleware(t *testing.T) {
	s := newTestServer()
	s.rateLimiter = ratelimit.NewLimiter(&ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Hour,
		DefaultBurst:  1,
	})
	defer s.rateLimiter.Stop()
	job := s.addJob(uuid.New())
	target := "/jobs/" + job.ID.String() + "/matching-applicants"

	first := s.do(http.MethodGet, target)
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))

	second := s.do(http.MethodGet, target)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	assert.Equal(t, "rate_limit_exceeded", resp["error"])
}

func TestHandleError_HidesInternalDetails(t *testing.T) {
	s := newTestServer()
	job := s.addJob(uuid.New())
	s.matcher.err = &matching.StoreError{Message: "failed to list resumes", Cause: errors.New("password=secret")}

	w := s.do(http.MethodGet, "/jobs/"+job.ID.String()+"/matching-applicants")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", decodeError(t, w))
}

func TestStart_ListenFailureStopsRateLimiter(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	s := New(Config{Port: port, RateLimit: ratelimit.NewConfig(true, 60, 10, nil, nil)}, Deps{})
	err = s.Start(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "server error")
	select {
	case <-s.rateLimiter.Done():
	default:
		t.Fatal("rate limiter cleanup still running")
	}
}

func TestNew_Defaults(t *testing.T) {
	s := New(Config{}, Deps{})
	assert.Equal(t, types.DefaultMatchLimit, s.cfg.DefaultLimit)
	assert.Equal(t, types.DefaultRecommendLimit, s.cfg.RecommendLimit)
	assert.NotNil(t, s.logger)
}
