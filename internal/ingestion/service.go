package ingestion

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/talent-match/internal/types"
)

// ResumeWriter persists parsed résumés
type ResumeWriter interface {
	UpsertParsedResume(ctx context.Context, r *types.ParsedResume) (*types.ParsedResume, error)
	DeleteParsedResume(ctx context.Context, candidateID uuid.UUID) error
}

// CacheInvalidator drops cached rankings that may include a changed résumé
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Extractor turns résumé text into a parsed résumé payload
type Extractor interface {
	Extract(ctx context.Context, username, text string) (*types.ParsedResumeInput, error)
}

// ValidationError reports a payload rejected before storage
type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid resume: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid resume: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Service stores candidate résumés. Invalidator and Extractor are optional.
type Service struct {
	store       ResumeWriter
	invalidator CacheInvalidator
	extractor   Extractor
	logger      *zap.Logger
}

// NewService creates an ingestion service
func NewService(store ResumeWriter, invalidator CacheInvalidator, extractor Extractor, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, invalidator: invalidator, extractor: extractor, logger: logger}
}

// Ingest validates input and replaces the candidate's stored résumé with it
func (s *Service) Ingest(ctx context.Context, candidateID uuid.UUID, input *types.ParsedResumeInput) (*types.ParsedResume, error) {
	if candidateID == uuid.Nil {
		return nil, &ValidationError{Message: "candidate id is required"}
	}
	if input == nil {
		return nil, &ValidationError{Message: "resume payload is required"}
	}
	if err := input.Validate(); err != nil {
		return nil, &ValidationError{Message: "payload failed validation", Cause: err}
	}

	resume := normalize(input.ToResume(candidateID))

	saved, err := s.store.UpsertParsedResume(ctx, resume)
	if err != nil {
		return nil, fmt.Errorf("failed to store resume: %w", err)
	}

	s.invalidate(ctx)

	s.logger.Info("resume stored",
		zap.String("candidate_id", candidateID.String()),
		zap.Bool("eligible", saved.HasParsedData()),
	)
	return saved, nil
}

// Delete removes the candidate's résumé so they drop out of the candidate pool
func (s *Service) Delete(ctx context.Context, candidateID uuid.UUID) error {
	if candidateID == uuid.Nil {
		return &ValidationError{Message: "candidate id is required"}
	}
	if err := s.store.DeleteParsedResume(ctx, candidateID); err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	s.invalidate(ctx)
	s.logger.Info("resume deleted", zap.String("candidate_id", candidateID.String()))
	return nil
}

// invalidate drops cached rankings. Failures only cost freshness until the TTL expires.
func (s *Service) invalidate(ctx context.Context) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.Invalidate(ctx); err != nil {
		s.logger.Warn("failed to invalidate match cache", zap.Error(err))
	}
}

// IngestText extracts a résumé from free text and stores it
func (s *Service) IngestText(ctx context.Context, candidateID uuid.UUID, username, text string) (*types.ParsedResume, error) {
	if s.extractor == nil {
		return nil, fmt.Errorf("no resume extractor configured")
	}

	input, err := s.extractor.Extract(ctx, username, CleanText(text))
	if err != nil {
		return nil, err
	}
	return s.Ingest(ctx, candidateID, input)
}

// normalize trims free-text values and drops blank list entries
func normalize(r *types.ParsedResume) *types.ParsedResume {
	r.Username = strings.TrimSpace(r.Username)
	r.TechnicalSkills = trimAll(r.TechnicalSkills)
	r.JobTitles = trimAll(r.JobTitles)

	experience := make([]types.WorkExperience, 0, len(r.WorkExperience))
	for _, e := range r.WorkExperience {
		e = types.WorkExperience{
			Title:       strings.TrimSpace(e.Title),
			Company:     strings.TrimSpace(e.Company),
			Description: strings.TrimSpace(e.Description),
			Industry:    strings.TrimSpace(e.Industry),
			Duration:    strings.TrimSpace(e.Duration),
		}
		if e != (types.WorkExperience{}) {
			experience = append(experience, e)
		}
	}
	r.WorkExperience = experience

	education := make([]types.Education, 0, len(r.Education))
	for _, e := range r.Education {
		e = types.Education{
			Degree: strings.TrimSpace(e.Degree),
			School: strings.TrimSpace(e.School),
			Field:  strings.TrimSpace(e.Field),
		}
		if e != (types.Education{}) {
			education = append(education, e)
		}
	}
	r.Education = education

	return r
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
