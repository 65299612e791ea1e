package ingestion

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-match/internal/types"
)

type fakeWriter struct {
	saved   []*types.ParsedResume
	deleted []uuid.UUID
	err     error
}

func (f *fakeWriter) DeleteParsedResume(_ context.Context, candidateID uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, candidateID)
	return nil
}

func (f *fakeWriter) UpsertParsedResume(_ context.Context, r *types.ParsedResume) (*types.ParsedResume, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.saved = append(f.saved, r)
	out := *r
	out.ID = uuid.New()
	return &out, nil
}

type fakeInvalidator struct {
	calls int
	err   error
}

func (f *fakeInvalidator) Invalidate(context.Context) error {
	f.calls++
	return f.err
}

type fakeExtractor struct {
	gotText string
	input   *types.ParsedResumeInput
	err     error
}

func (f *fakeExtractor) Extract(_ context.Context, _ string, text string) (*types.ParsedResumeInput, error) {
	f.gotText = text
	return f.input, f.err
}

func validInput() *types.ParsedResumeInput {
	return &types.ParsedResumeInput{
		Username:        " alice ",
		TechnicalSkills: []string{" Go ", "", "SQL"},
		WorkExperience: []types.WorkExperience{
			{Title: " Backend Engineer ", Duration: "3 years"},
			{},
		},
		Education: []types.Education{{Degree: "Bachelor of Science"}, {School: "  "}},
		JobTitles: []string{"Backend Engineer"},
	}
}

func TestIngest_StoresNormalizedResume(t *testing.T) {
	writer := &fakeWriter{}
	inv := &fakeInvalidator{}
	svc := NewService(writer, inv, nil, nil)
	candidateID := uuid.New()

	saved, err := svc.Ingest(context.Background(), candidateID, validInput())
	require.NoError(t, err)
	require.Len(t, writer.saved, 1)

	assert.Equal(t, candidateID, saved.CandidateID)
	assert.Equal(t, "alice", saved.Username)
	assert.Equal(t, []string{"Go", "SQL"}, saved.TechnicalSkills)
	require.Len(t, saved.WorkExperience, 1)
	assert.Equal(t, "Backend Engineer", saved.WorkExperience[0].Title)
	assert.Len(t, saved.Education, 1)
	assert.Equal(t, 1, inv.calls)
}

func TestIngest_ValidationErrors(t *testing.T) {
	svc := NewService(&fakeWriter{}, nil, nil, nil)

	tests := []struct {
		name        string
		candidateID uuid.UUID
		input       *types.ParsedResumeInput
	}{
		{"nil candidate", uuid.Nil, validInput()},
		{"nil payload", uuid.New(), nil},
		{"missing username", uuid.New(), &types.ParsedResumeInput{TechnicalSkills: []string{"Go"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Ingest(context.Background(), tt.candidateID, tt.input)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestIngest_StoreFailure(t *testing.T) {
	inv := &fakeInvalidator{}
	svc := NewService(&fakeWriter{err: errors.New("db down")}, inv, nil, nil)

	_, err := svc.Ingest(context.Background(), uuid.New(), validInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to store resume")
	assert.Equal(t, 0, inv.calls)
}

func TestIngest_InvalidationFailureIsNotFatal(t *testing.T) {
	inv := &fakeInvalidator{err: errors.New("redis down")}
	svc := NewService(&fakeWriter{}, inv, nil, nil)

	saved, err := svc.Ingest(context.Background(), uuid.New(), validInput())
	require.NoError(t, err)
	assert.NotNil(t, saved)
	assert.Equal(t, 1, inv.calls)
}

func TestIngestText(t *testing.T) {
	ext := &fakeExtractor{input: validInput()}
	writer := &fakeWriter{}
	svc := NewService(writer, nil, ext, nil)

	_, err := svc.IngestText(context.Background(), uuid.New(), "alice", "Go   developer\r\n\r\n\r\n\r\nSQL")
	require.NoError(t, err)
	assert.Equal(t, "Go developer\n\nSQL", ext.gotText)
	assert.Len(t, writer.saved, 1)
}

func TestIngestText_Errors(t *testing.T) {
	_, err := NewService(&fakeWriter{}, nil, nil, nil).IngestText(context.Background(), uuid.New(), "alice", "text")
	require.Error(t, err)

	ext := &fakeExtractor{err: errors.New("model unavailable")}
	_, err = NewService(&fakeWriter{}, nil, ext, nil).IngestText(context.Background(), uuid.New(), "alice", "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model unavailable")
}

func TestDelete(t *testing.T) {
	writer := &fakeWriter{}
	inv := &fakeInvalidator{}
	svc := NewService(writer, inv, nil, nil)
	candidateID := uuid.New()

	require.NoError(t, svc.Delete(context.Background(), candidateID))
	assert.Equal(t, []uuid.UUID{candidateID}, writer.deleted)
	assert.Equal(t, 1, inv.calls)

	var verr *ValidationError
	require.ErrorAs(t, svc.Delete(context.Background(), uuid.Nil), &verr)

	failing := NewService(&fakeWriter{err: errors.New("db down")}, inv, nil, nil)
	err := failing.Delete(context.Background(), candidateID)
	require.Error(t, err)
	assert.Equal(t, 1, inv.calls)
}
