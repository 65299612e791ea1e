package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/talent-match/internal/ingestion"
	"github.com/jonathan/talent-match/internal/matching"
	"github.com/jonathan/talent-match/internal/types"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "limit", Message: "must be an integer"}
	assert.Equal(t, "validation error: limit - must be an integer", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	badOpts := types.MatchOptions{Limit: 500}

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "job not found",
			err:      &matching.JobNotFoundError{JobID: uuid.New()},
			expected: http.StatusNotFound,
		},
		{
			name:     "wrapped candidate not found",
			err:      fmt.Errorf("lookup: %w", &matching.CandidateNotFoundError{CandidateID: uuid.New()}),
			expected: http.StatusNotFound,
		},
		{
			name:     "ErrValidation",
			err:      &ErrValidation{Field: "exclude", Message: "bad id"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "ingestion validation",
			err:      &ingestion.ValidationError{Message: "candidate id is required"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "validator errors",
			err:      badOpts.Validate(),
			expected: http.StatusBadRequest,
		},
		{
			name:     "store error",
			err:      &matching.StoreError{Message: "failed to load job", Cause: errors.New("timeout")},
			expected: http.StatusInternalServerError,
		},
		{
			name:     "unknown",
			err:      errors.New("boom"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
