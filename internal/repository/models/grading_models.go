package models

import (
	"database/sql"
	"time"

	"github.com/coachlens/grading-server/internal/scoring"
)

// CallStatus mirrors the queue item's progress so a call is visibly
// retryable rather than stuck "processing".
type CallStatus string

const (
	CallPending    CallStatus = "pending"
	CallProcessing CallStatus = "processing"
	CallAnalyzed   CallStatus = "analyzed"
	CallFailed     CallStatus = "failed"
)

type SessionStatus string

const (
	SessionPending    SessionStatus = "pending"
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
	SessionCancelled  SessionStatus = "cancelled"
	SessionDisputed   SessionStatus = "disputed"
	SessionReviewed   SessionStatus = "reviewed"
)

// Terminal reports whether grading work for the session is finished.
// Reviewed and disputed sessions remain terminal for grading purposes.
func (s SessionStatus) Terminal() bool {
	switch s {
	case SessionCompleted, SessionCancelled, SessionDisputed, SessionReviewed:
		return true
	}
	return false
}

type QueueStatus string

const (
	QueueQueued     QueueStatus = "queued"
	QueueProcessing QueueStatus = "processing"
	QueueCompleted  QueueStatus = "completed"
	QueueFailed     QueueStatus = "failed"
)

type TemplateStatus string

const (
	TemplateDraft    TemplateStatus = "draft"
	TemplateActive   TemplateStatus = "active"
	TemplateArchived TemplateStatus = "archived"
)

type Call struct {
	ID         string
	OrgID      string
	Transcript string
	Status     CallStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Template is the live, editable rubric. Sessions never reference it
// directly; they carry a frozen snapshot taken at creation time.
type Template struct {
	ID            string
	OrgID         string
	Name          string
	ScoringMethod scoring.ScoringMethod
	PassThreshold float64
	Status        TemplateStatus
	IsDefault     bool
	Version       int
	Criteria      []scoring.Criterion
	Groups        []scoring.CriteriaGroup
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Session struct {
	ID              string
	OrgID           string
	CallID          string
	TemplateID      string
	TemplateVersion int
	Snapshot        scoring.TemplateSnapshot
	Status          SessionStatus
	PercentageScore sql.NullFloat64
	PassStatus      sql.NullBool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Score is one criterion's answer within a session, upserted on
// (session, criterion).
type Score struct {
	SessionID           string
	CriterionID         string
	Value               any
	IsNA                bool
	RawScore            float64
	NormalizedScore     float64
	WeightedScore       float64
	IsAutoFailTriggered bool
	IsMalformed         bool
	Comment             string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Report is the per-session summary artifact written alongside scores.
type Report struct {
	SessionID          string
	CompositeScore     float64
	PassStatus         bool
	Summary            string
	Strengths          []string
	Improvements       []string
	Objections         []string
	Sentiment          string
	TalkRatio          string
	CompetitorMentions []string
	ModelUsed          string
	ProcessingTimeMs   int64
	TokensUsed         int64
	CreatedAt          time.Time
}

type QueueItem struct {
	ID          string
	CallID      string
	Status      QueueStatus
	Priority    int
	ScheduledAt time.Time
	Attempts    int
	MaxAttempts int
	LastError   sql.NullString
	StartedAt   sql.NullTime
	CompletedAt sql.NullTime
	CreatedAt   time.Time
}

// AuditEntry is one append-only record of a session status transition.
type AuditEntry struct {
	ID         int64
	SessionID  string
	Actor      string
	FromStatus SessionStatus
	ToStatus   SessionStatus
	Reason     string
	Detail     string
	CreatedAt  time.Time
}
