package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/talent-match/internal/matching"
	"github.com/jonathan/talent-match/internal/types"
)

// MatchingApplicantsResponse is the body of GET /jobs/{id}/matching-applicants
type MatchingApplicantsResponse struct {
	Job        types.JobSummary    `json:"job"`
	Applicants []types.MatchResult `json:"applicants"`
	TotalFound int                 `json:"total_found"`
	Filters    MatchFilters        `json:"filters"`
}

// MatchFilters echoes the options a ranking was computed with
type MatchFilters struct {
	Limit    int `json:"limit"`
	MinScore int `json:"min_score"`
	Excluded int `json:"excluded"`
}

// RecommendationsResponse is the body of GET /businesses/{id}/recommendations
type RecommendationsResponse struct {
	BusinessID      uuid.UUID                              `json:"business_id"`
	Recommendations map[uuid.UUID]types.BulkRecommendation `json:"recommendations"`
	TotalJobs       int                                    `json:"total_jobs"`
}

// handleMatchingApplicants ranks the candidate pool for one job. Candidates who already
// applied are excluded along with any ids passed in ?exclude=.
func (s *Server) handleMatchingApplicants(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.pathUUID(w, r, "id", "job ID")
	if !ok {
		return
	}

	opts, err := s.parseMatchOptions(r, s.cfg.DefaultLimit)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	job, ok := s.loadOwnedJob(w, r, jobID)
	if !ok {
		return
	}

	if s.applications != nil {
		applied, err := s.applications.ListApplicantIDsByJob(r.Context(), jobID)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		opts.ExcludeApplicants = mergeIDs(opts.ExcludeApplicants, applied)
	}

	results, err := s.matcher.MatchJob(r.Context(), job, opts)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if results == nil {
		results = []types.MatchResult{}
	}

	s.jsonResponse(w, http.StatusOK, MatchingApplicantsResponse{
		Job:        job.Summary(),
		Applicants: results,
		TotalFound: len(results),
		Filters: MatchFilters{
			Limit:    opts.Limit,
			MinScore: opts.MinScore,
			Excluded: len(opts.ExcludeApplicants),
		},
	})
}

// handleApplicantMatch returns the score breakdown of one candidate for one job
func (s *Server) handleApplicantMatch(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.pathUUID(w, r, "id", "job ID")
	if !ok {
		return
	}
	candidateID, ok := s.pathUUID(w, r, "candidate_id", "candidate ID")
	if !ok {
		return
	}
	job, ok := s.loadOwnedJob(w, r, jobID)
	if !ok {
		return
	}

	match, err := s.matcher.MatchApplicant(r.Context(), job, candidateID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, match)
}

// handleBusinessRecommendations ranks candidates for every open job of a business
func (s *Server) handleBusinessRecommendations(w http.ResponseWriter, r *http.Request) {
	businessID, ok := s.pathUUID(w, r, "id", "business ID")
	if !ok {
		return
	}

	opts, err := s.parseMatchOptions(r, s.cfg.RecommendLimit)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	recs, err := s.matcher.RecommendForBusiness(r.Context(), businessID, opts)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, RecommendationsResponse{
		BusinessID:      businessID,
		Recommendations: recs,
		TotalJobs:       len(recs),
	})
}

// loadOwnedJob loads a job and, when ?business_id= is given, checks that the business owns
// it. Jobs of other businesses are reported as not found.
func (s *Server) loadOwnedJob(w http.ResponseWriter, r *http.Request, jobID uuid.UUID) (*types.JobPosting, bool) {
	var owner uuid.UUID
	if raw := r.URL.Query().Get("business_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid business_id")
			return nil, false
		}
		owner = id
	}

	job, err := s.jobs.GetJobPostingByID(r.Context(), jobID)
	if err != nil {
		s.handleError(w, r, err)
		return nil, false
	}
	if job == nil || (owner != uuid.Nil && job.BusinessID != owner) {
		s.handleError(w, r, &matching.JobNotFoundError{JobID: jobID})
		return nil, false
	}
	return job, true
}

// parseMatchOptions reads limit, min_score and exclude from the query string
func (s *Server) parseMatchOptions(r *http.Request, defaultLimit int) (types.MatchOptions, error) {
	q := r.URL.Query()
	opts := types.MatchOptions{Limit: defaultLimit, MinScore: s.cfg.DefaultMinScore}

	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return opts, &ErrValidation{Field: "limit", Message: "must be an integer"}
		}
		opts.Limit = n
	}
	if raw := q.Get("min_score"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return opts, &ErrValidation{Field: "min_score", Message: "must be an integer"}
		}
		opts.MinScore = n
	}
	for _, raw := range q["exclude"] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := uuid.Parse(part)
			if err != nil {
				return opts, &ErrValidation{Field: "exclude", Message: "invalid candidate ID " + part}
			}
			opts.ExcludeApplicants = append(opts.ExcludeApplicants, id)
		}
	}

	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// pathUUID parses a path parameter and writes a 400 on failure
func (s *Server) pathUUID(w http.ResponseWriter, r *http.Request, name, label string) (uuid.UUID, bool) {
	raw := r.PathValue(name)
	if raw == "" {
		s.errorResponse(w, http.StatusBadRequest, label+" is required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid "+label)
		return uuid.Nil, false
	}
	return id, true
}

// mergeIDs appends ids from extra that are not already in base
func mergeIDs(base, extra []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(base)+len(extra))
	out := make([]uuid.UUID, 0, len(base)+len(extra))
	for _, list := range [][]uuid.UUID{base, extra} {
		for _, id := range list {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}
