// Package types provides type definitions for structured data used throughout the talent-match system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// Job status values
const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

// Experience level values accepted on a job posting
const (
	ExperienceNone    = "none"
	ExperienceIntern  = "intern"
	ExperienceFresher = "fresher"
	ExperienceJunior  = "junior"
	ExperienceMid     = "mid"
	ExperienceSenior  = "senior"
	ExperienceLead    = "lead"
	ExperienceManager = "manager"
)

// Degree values accepted on a job posting
const (
	DegreeNone       = "none"
	DegreeHighSchool = "high-school"
	DegreeAssociate  = "associate"
	DegreeBachelor   = "bachelor"
	DegreeMaster     = "master"
	DegreePhD        = "phd"
)

// JobPosting is a job published by a business. The matching core only reads it.
type JobPosting struct {
	ID          uuid.UUID `json:"id"`
	BusinessID  uuid.UUID `json:"business_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Techniques  string    `json:"techniques,omitempty"` // free text tech stack
	Experience  string    `json:"experience,omitempty"` // required experience level
	Degree      string    `json:"degree,omitempty"`     // required degree
	Field       string    `json:"field,omitempty"`      // field / industry
	Type        string    `json:"type,omitempty"`       // employment type
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsClosed reports whether the posting no longer accepts candidates
func (j *JobPosting) IsClosed() bool {
	return j.Status == JobStatusClosed
}

// JobSummary is the compact job view returned alongside match results
type JobSummary struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Field      string    `json:"field,omitempty"`
	Experience string    `json:"experience,omitempty"`
	Type       string    `json:"type,omitempty"`
}

// Summary returns the compact view of the posting
func (j *JobPosting) Summary() JobSummary {
	return JobSummary{
		ID:         j.ID,
		Title:      j.Title,
		Field:      j.Field,
		Experience: j.Experience,
		Type:       j.Type,
	}
}
