package types

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDefaultMatchOptions(t *testing.T) {
	opts := DefaultMatchOptions()
	assert.Equal(t, 20, opts.Limit)
	assert.Equal(t, 30, opts.MinScore)
	assert.Empty(t, opts.ExcludeApplicants)
	assert.NoError(t, opts.Validate())
}

func TestMatchOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    MatchOptions
		wantErr bool
	}{
		{"bounds", MatchOptions{Limit: 1, MinScore: 0}, false},
		{"upper bounds", MatchOptions{Limit: 100, MinScore: 100}, false},
		{"zero limit", MatchOptions{Limit: 0, MinScore: 30}, true},
		{"limit too high", MatchOptions{Limit: 101, MinScore: 30}, true},
		{"negative min score", MatchOptions{Limit: 20, MinScore: -1}, true},
		{"min score too high", MatchOptions{Limit: 20, MinScore: 101}, true},
		{"with exclusions", MatchOptions{Limit: 20, MinScore: 30, ExcludeApplicants: []uuid.UUID{uuid.New()}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestJobPosting_SummaryAndStatus(t *testing.T) {
	job := JobPosting{
		ID:         uuid.New(),
		BusinessID: uuid.New(),
		Title:      "Data Engineer",
		Field:      "data",
		Experience: ExperienceMid,
		Type:       "full-time",
		Status:     JobStatusOpen,
	}

	assert.False(t, job.IsClosed())
	assert.Equal(t, JobSummary{ID: job.ID, Title: "Data Engineer", Field: "data", Experience: "mid", Type: "full-time"}, job.Summary())

	job.Status = JobStatusClosed
	assert.True(t, job.IsClosed())
}
