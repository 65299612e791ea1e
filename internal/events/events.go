// Package events connects the matching service to NATS. It consumes résumé-parsed events
// and publishes a notification whenever a ranking is computed.
package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"

	"github.com/jonathan/talent-match/internal/types"
)

var tracer = otel.Tracer("github.com/jonathan/talent-match/internal/events")

const (
	// DefaultResumeSubject carries ResumeParsedEvent payloads
	DefaultResumeSubject = "resumes.parsed"
	// DefaultMatchesSubject carries MatchesComputedEvent payloads
	DefaultMatchesSubject = "matches.computed"

	connectTimeout = 10 * time.Second
)

// ResumeParsedEvent is emitted by the résumé parser once a CV has been extracted
type ResumeParsedEvent struct {
	CandidateID uuid.UUID               `json:"candidate_id"`
	Resume      types.ParsedResumeInput `json:"resume"`
}

// MatchesComputedEvent summarizes a freshly computed ranking
type MatchesComputedEvent struct {
	JobID      uuid.UUID          `json:"job_id"`
	Total      int                `json:"total"`
	Applicants []MatchedApplicant `json:"applicants"`
	ComputedAt time.Time          `json:"computed_at"`
}

// MatchedApplicant is one ranked candidate inside a MatchesComputedEvent
type MatchedApplicant struct {
	CandidateID uuid.UUID `json:"candidate_id"`
	Score       int       `json:"score"`
}

// Connect opens a NATS connection that keeps reconnecting after failures
func Connect(url, name string) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name(name),
		nats.Timeout(connectTimeout),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	}
	return nats.Connect(url, opts...)
}
