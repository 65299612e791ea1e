package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/jonathan/talent-match/internal/types"
)

// Conn is the subset of *nats.Conn used for publishing
type Conn interface {
	Publish(subject string, data []byte) error
}

// Publisher announces computed rankings on NATS
type Publisher struct {
	conn    Conn
	subject string
	logger  *zap.Logger
	now     func() time.Time
}

// NewPublisher creates a Publisher. An empty subject falls back to DefaultMatchesSubject.
func NewPublisher(conn Conn, subject string, logger *zap.Logger) *Publisher {
	if subject == "" {
		subject = DefaultMatchesSubject
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{conn: conn, subject: subject, logger: logger, now: time.Now}
}

// PublishMatchesComputed publishes the ranked candidate ids and scores for a job
func (p *Publisher) PublishMatchesComputed(ctx context.Context, jobID uuid.UUID, results []types.MatchResult) error {
	_, span := tracer.Start(ctx, "Publisher.PublishMatchesComputed")
	defer span.End()

	event := MatchesComputedEvent{
		JobID:      jobID,
		Total:      len(results),
		Applicants: make([]MatchedApplicant, 0, len(results)),
		ComputedAt: p.now().UTC(),
	}
	for _, r := range results {
		event.Applicants = append(event.Applicants, MatchedApplicant{
			CandidateID: r.CandidateID,
			Score:       r.Score,
		})
	}

	data, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to marshal matches event: %w", err)
	}

	span.SetAttributes(
		attribute.String("nats.subject", p.subject),
		attribute.Int("message.size", len(data)),
	)

	if err := p.conn.Publish(p.subject, data); err != nil {
		span.RecordError(err)
		p.logger.Error("failed to publish matches event",
			zap.String("job_id", jobID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to publish matches event: %w", err)
	}

	p.logger.Debug("published matches event",
		zap.String("job_id", jobID.String()),
		zap.String("subject", p.subject),
		zap.Int("total", event.Total))
	return nil
}
