package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/jonathan/talent-match/internal/types"
)

// ResumeIngester stores a parsed résumé for a candidate
type ResumeIngester interface {
	Ingest(ctx context.Context, candidateID uuid.UUID, input *types.ParsedResumeInput) (*types.ParsedResume, error)
}

// Subscriber consumes résumé-parsed events from a NATS queue group
type Subscriber struct {
	nc       *nats.Conn
	subject  string
	queue    string
	ingester ResumeIngester
	logger   *zap.Logger
	sub      *nats.Subscription
}

// NewSubscriber creates a Subscriber. Empty subject or queue fall back to defaults.
func NewSubscriber(nc *nats.Conn, subject, queue string, ingester ResumeIngester, logger *zap.Logger) *Subscriber {
	if subject == "" {
		subject = DefaultResumeSubject
	}
	if queue == "" {
		queue = "talent-match"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Subscriber{
		nc:       nc,
		subject:  subject,
		queue:    queue,
		ingester: ingester,
		logger:   logger,
	}
}

// Start registers the queue subscription
func (s *Subscriber) Start() error {
	sub, err := s.nc.QueueSubscribe(s.subject, s.queue, s.handleMsg)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", s.subject, err)
	}
	s.sub = sub
	s.logger.Info("registered NATS subscription",
		zap.String("subject", s.subject),
		zap.String("queue", s.queue))
	return nil
}

// Stop drains the subscription so in-flight messages finish
func (s *Subscriber) Stop() error {
	if s.sub == nil {
		return nil
	}
	return s.sub.Drain()
}

func (s *Subscriber) handleMsg(msg *nats.Msg) {
	if err := s.HandleMessage(context.Background(), msg.Data); err != nil {
		s.logger.Error("failed to process resume event",
			zap.Error(err),
			zap.String("subject", msg.Subject))
	}
}

// HandleMessage decodes one ResumeParsedEvent and stores the résumé it carries
func (s *Subscriber) HandleMessage(ctx context.Context, data []byte) error {
	ctx, span := tracer.Start(ctx, "Subscriber.HandleMessage")
	defer span.End()

	var event ResumeParsedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to decode resume event: %w", err)
	}
	if event.CandidateID == uuid.Nil {
		return fmt.Errorf("resume event has no candidate_id")
	}
	span.SetAttributes(attribute.String("candidate.id", event.CandidateID.String()))

	if _, err := s.ingester.Ingest(ctx, event.CandidateID, &event.Resume); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to ingest resume for %s: %w", event.CandidateID, err)
	}

	s.logger.Info("processed resume event", zap.String("candidate_id", event.CandidateID.String()))
	return nil
}
