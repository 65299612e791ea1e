package types

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ParsedResume is the structured extraction produced from an uploaded CV
type ParsedResume struct {
	ID              uuid.UUID        `json:"id"`
	CandidateID     uuid.UUID        `json:"candidate_id"`
	Username        string           `json:"username"`
	TechnicalSkills []string         `json:"technical_skills"`
	WorkExperience  []WorkExperience `json:"work_experience"`
	Education       []Education      `json:"education"`
	JobTitles       []string         `json:"job_titles"`
	ParsedAt        time.Time        `json:"parsed_at"`
}

// WorkExperience is one entry of a candidate's work history. All fields are optional.
type WorkExperience struct {
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	Description string `json:"description,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Duration    string `json:"duration,omitempty"` // e.g. "2 years", "18 months"
}

// Education is one education entry. Degree is free text containing a level keyword.
type Education struct {
	Degree string `json:"degree,omitempty"`
	School string `json:"school,omitempty"`
	Field  string `json:"field,omitempty"`
}

// HasParsedData reports whether at least one extracted field is populated.
// Only résumés with parsed data are eligible for matching.
func (r *ParsedResume) HasParsedData() bool {
	return hasText(r.TechnicalSkills) ||
		len(r.WorkExperience) > 0 ||
		len(r.Education) > 0 ||
		hasText(r.JobTitles)
}

func hasText(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// ParsedResumeInput is the request body used to store a candidate's parsed résumé
type ParsedResumeInput struct {
	Username        string           `json:"username" validate:"required,min=1,max=100"`
	TechnicalSkills []string         `json:"technical_skills" validate:"omitempty,dive,max=200"`
	WorkExperience  []WorkExperience `json:"work_experience"`
	Education       []Education      `json:"education"`
	JobTitles       []string         `json:"job_titles" validate:"omitempty,dive,max=200"`
}

// Validate validates the ParsedResumeInput using the validator.
func (in *ParsedResumeInput) Validate() error {
	validate := validator.New()
	return validate.Struct(in)
}

// ToResume converts the input into a ParsedResume owned by candidateID
func (in *ParsedResumeInput) ToResume(candidateID uuid.UUID) *ParsedResume {
	return &ParsedResume{
		CandidateID:     candidateID,
		Username:        in.Username,
		TechnicalSkills: in.TechnicalSkills,
		WorkExperience:  in.WorkExperience,
		Education:       in.Education,
		JobTitles:       in.JobTitles,
	}
}
