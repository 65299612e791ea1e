package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Default matching options
const (
	DefaultMatchLimit     = 20
	DefaultMatchMinScore  = 30
	DefaultRecommendLimit = 10
)

// MatchResult is one ranked candidate for a job. It is computed per request and never persisted.
type MatchResult struct {
	CandidateID uuid.UUID `json:"candidate_id"`
	ResumeID    uuid.UUID `json:"resume_id"`
	Username    string    `json:"username"`
	Score       int       `json:"score"`   // 0-100
	Reasons     []string  `json:"reasons"` // never empty
}

// SubScores holds the five normalized factor scores, each in [0,1]
type SubScores struct {
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
	Education  float64 `json:"education"`
	Field      float64 `json:"field"`
	Title      float64 `json:"title"`
}

// MatchBreakdown is the full explanation of a single job/résumé score
type MatchBreakdown struct {
	Score           int       `json:"score"`
	SubScores       SubScores `json:"sub_scores"`
	MatchedSkills   []string  `json:"matched_skills"`
	ExperienceYears float64   `json:"experience_years"`
	Reasons         []string  `json:"reasons"`
}

// ApplicantMatch is the detailed view of one candidate against one job
type ApplicantMatch struct {
	Job       JobSummary     `json:"job"`
	Resume    *ParsedResume  `json:"resume"`
	Breakdown MatchBreakdown `json:"breakdown"`
}

// MatchOptions controls filtering and truncation of match results
type MatchOptions struct {
	Limit             int         `json:"limit" validate:"min=1,max=100"`
	MinScore          int         `json:"min_score" validate:"min=0,max=100"`
	ExcludeApplicants []uuid.UUID `json:"exclude_applicants,omitempty"`
}

// DefaultMatchOptions returns limit=20, minScore=30 and no exclusions
func DefaultMatchOptions() MatchOptions {
	return MatchOptions{
		Limit:    DefaultMatchLimit,
		MinScore: DefaultMatchMinScore,
	}
}

// Validate validates the MatchOptions using the validator.
func (o *MatchOptions) Validate() error {
	validate := validator.New()
	return validate.Struct(o)
}

// BulkRecommendation holds the results for one job of a bulk request
type BulkRecommendation struct {
	Job        JobSummary    `json:"job"`
	Applicants []MatchResult `json:"applicants"`
	TotalFound int           `json:"total_found"`
	Error      string        `json:"error,omitempty"`
}
