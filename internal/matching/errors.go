package matching

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrJobNotFound is matched by errors.Is when a job id does not resolve
var ErrJobNotFound = errors.New("job not found")

// ErrCandidateNotFound is matched by errors.Is when a candidate has no eligible résumé
var ErrCandidateNotFound = errors.New("candidate not found")

// JobNotFoundError reports a job id that does not resolve to a posting
type JobNotFoundError struct {
	JobID uuid.UUID
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job not found: %s", e.JobID)
}

// Is makes errors.Is(err, ErrJobNotFound) succeed
func (e *JobNotFoundError) Is(target error) bool {
	return target == ErrJobNotFound
}

// CandidateNotFoundError reports a candidate without an eligible parsed résumé
type CandidateNotFoundError struct {
	CandidateID uuid.UUID
}

func (e *CandidateNotFoundError) Error() string {
	return fmt.Sprintf("candidate not found or has no parsed resume: %s", e.CandidateID)
}

// Is makes errors.Is(err, ErrCandidateNotFound) succeed
func (e *CandidateNotFoundError) Is(target error) bool {
	return target == ErrCandidateNotFound
}

// StoreError wraps a failure of the job or résumé store
type StoreError struct {
	Message string
	Cause   error
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("store error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("store error: %s", e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}
