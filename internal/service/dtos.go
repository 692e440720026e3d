package service

import "github.com/coachlens/grading-server/internal/repository/models"

// EvaluationResult is the outcome of one complete orchestrated evaluation.
type EvaluationResult struct {
	SessionID         string
	Scores            []models.Score
	Report            models.Report
	Composite         float64
	Pass              bool
	AutoFailTriggered bool
	// Unscored lists snapshot criterion IDs the provider did not answer.
	// They are surfaced, never defaulted to zero.
	Unscored []string
}

// CompositeResult is the recomputed session outcome.
type CompositeResult struct {
	Percentage float64
	PassStatus bool
}

// SessionAction is a requested state machine transition.
type SessionAction string

const (
	ActionStart    SessionAction = "start"
	ActionComplete SessionAction = "complete"
	ActionCancel   SessionAction = "cancel"
	ActionReview   SessionAction = "review"
	ActionDispute  SessionAction = "dispute"
)
