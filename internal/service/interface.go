package service

import (
	"context"
	"time"

	"github.com/coachlens/grading-server/internal/repository/models"
	"github.com/coachlens/grading-server/internal/scorer"
)

// CallRepository defines the call storage operations the services need.
type CallRepository interface {
	Get(ctx context.Context, id string) (models.Call, error)
	SetStatus(ctx context.Context, id string, status models.CallStatus, now time.Time) error
}

// QueueRepository defines the grading queue storage operations. Enqueue
// reports false when the call already has an item in flight.
type QueueRepository interface {
	Enqueue(ctx context.Context, item models.QueueItem) (bool, error)
	Get(ctx context.Context, id string) (models.QueueItem, error)
	GetByCall(ctx context.Context, callID string) (models.QueueItem, error)
	GetActiveByCall(ctx context.Context, callID string) (models.QueueItem, error)
	SelectEligible(ctx context.Context, now time.Time, limit int) ([]models.QueueItem, error)
	Claim(ctx context.Context, id string, now time.Time) (bool, error)
	MarkCompleted(ctx context.Context, id string, now time.Time) error
	Reschedule(ctx context.Context, id string, attempts int, scheduledAt time.Time, lastError string) error
	MarkFailed(ctx context.Context, id string, attempts int, lastError string, now time.Time) error
}

// SessionRepository defines the session and audit trail storage operations.
type SessionRepository interface {
	Create(ctx context.Context, s models.Session) error
	Get(ctx context.Context, id string) (models.Session, error)
	GetByCall(ctx context.Context, callID string) (models.Session, error)
	TransitionStatus(ctx context.Context, id string, from, to models.SessionStatus, now time.Time) (bool, error)
	SetResult(ctx context.Context, id string, percentage float64, pass bool, now time.Time) error
	AppendAudit(ctx context.Context, e models.AuditEntry) error
	ListAudit(ctx context.Context, sessionID string) ([]models.AuditEntry, error)
}

// ScoreRepository defines score and report storage operations.
type ScoreRepository interface {
	SaveEvaluation(ctx context.Context, scores []models.Score, report models.Report) error
	GetBySession(ctx context.Context, sessionID string) ([]models.Score, error)
	GetReport(ctx context.Context, sessionID string) (models.Report, error)
}

// TemplateRepository defines template read operations.
type TemplateRepository interface {
	Get(ctx context.Context, id string) (models.Template, error)
	GetDefaultActive(ctx context.Context, orgID string) (models.Template, error)
}

// Scorer is the external evaluation provider boundary.
type Scorer interface {
	Score(ctx context.Context, req scorer.Request) (*scorer.Response, error)
}

// SessionProvisioner guarantees a call has a grading session, creating one
// from the default template when none exists.
type SessionProvisioner interface {
	EnsureForCall(ctx context.Context, call models.Call) (models.Session, error)
}

// Evaluator is the grading orchestrator as seen by the queue.
type Evaluator interface {
	Evaluate(ctx context.Context, call models.Call, session models.Session) (*EvaluationResult, error)
}
