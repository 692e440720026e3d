package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/coachlens/grading-server/internal/repository/models"
	"github.com/coachlens/grading-server/internal/scoring"
)

// sessionTransitions is the state machine: action -> allowed prior status ->
// next status. Anything absent is rejected as a state conflict.
var sessionTransitions = map[SessionAction]map[models.SessionStatus]models.SessionStatus{
	ActionStart: {
		models.SessionPending: models.SessionInProgress,
	},
	ActionComplete: {
		models.SessionInProgress: models.SessionCompleted,
	},
	ActionCancel: {
		models.SessionPending:    models.SessionCancelled,
		models.SessionInProgress: models.SessionCancelled,
	},
	ActionReview: {
		models.SessionCompleted: models.SessionReviewed,
	},
	ActionDispute: {
		models.SessionCompleted: models.SessionDisputed,
		models.SessionReviewed:  models.SessionDisputed,
	},
}

// SessionService owns the grading session lifecycle: snapshot freezing at
// creation, the status state machine with its append-only audit trail, and
// composite recomputation from persisted state.
type SessionService struct {
	sessions  SessionRepository
	templates TemplateRepository
	scores    ScoreRepository
	queue     QueueRepository
	logger    *zap.Logger
}

func NewSessionService(sessions SessionRepository, templates TemplateRepository, scores ScoreRepository, queue QueueRepository, logger *zap.Logger) *SessionService {
	if sessions == nil || templates == nil || scores == nil || queue == nil {
		panic("session service dependencies must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	return &SessionService{
		sessions:  sessions,
		templates: templates,
		scores:    scores,
		queue:     queue,
		logger:    logger.Named("session"),
	}
}

// CreateSession starts a grading instance for a call, freezing the template
// into an owned snapshot. templateID may be empty to use the organization's
// default active template.
func (s *SessionService) CreateSession(ctx context.Context, call models.Call, templateID string) (models.Session, error) {
	var tpl models.Template
	var err error
	if templateID == "" {
		tpl, err = s.templates.GetDefaultActive(ctx, call.OrgID)
	} else {
		tpl, err = s.templates.Get(ctx, templateID)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, fmt.Errorf("%w: template for call %s", ErrNotFound, call.ID)
		}
		return models.Session{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	if tpl.Status != models.TemplateActive {
		return models.Session{}, fmt.Errorf("%w: template %s is %s", ErrInvalidTemplate, tpl.ID, tpl.Status)
	}
	if err := validateWeights(tpl.Criteria); err != nil {
		return models.Session{}, err
	}

	snapshot, err := freezeSnapshot(tpl)
	if err != nil {
		return models.Session{}, fmt.Errorf("freeze template snapshot: %w", err)
	}

	now := time.Now()
	session := models.Session{
		ID:              uuid.NewString(),
		OrgID:           call.OrgID,
		CallID:          call.ID,
		TemplateID:      tpl.ID,
		TemplateVersion: tpl.Version,
		Snapshot:        snapshot,
		Status:          models.SessionPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return models.Session{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	s.logger.Info("session created",
		zap.String("session_id", session.ID),
		zap.String("call_id", call.ID),
		zap.String("template_id", tpl.ID),
		zap.Int("template_version", tpl.Version))
	return session, nil
}

// EnsureForCall returns the call's existing session or creates one from the
// organization's default active template.
func (s *SessionService) EnsureForCall(ctx context.Context, call models.Call) (models.Session, error) {
	session, err := s.sessions.GetByCall(ctx, call.ID)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return s.CreateSession(ctx, call, "")
}

// Transition applies one state machine action. Invalid actions for the
// current status are rejected outright; every applied transition is recorded
// in the append-only audit trail with actor, reason and prior status.
func (s *SessionService) Transition(ctx context.Context, sessionID string, action SessionAction, actor, reason string) (models.SessionStatus, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: session %s", ErrNotFound, sessionID)
		}
		return "", fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	allowed, ok := sessionTransitions[action]
	if !ok {
		return "", fmt.Errorf("%w: unknown action %q", ErrInvalidTransition, action)
	}
	next, ok := allowed[session.Status]
	if !ok {
		return "", fmt.Errorf("%w: cannot %s a %s session", ErrInvalidTransition, action, session.Status)
	}

	if action == ActionCancel {
		if err := s.ensureNotProcessing(ctx, session.CallID); err != nil {
			return "", err
		}
	}

	now := time.Now()
	moved, err := s.sessions.TransitionStatus(ctx, sessionID, session.Status, next, now)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	if !moved {
		// Lost an optimistic race; the caller sees a state conflict.
		return "", fmt.Errorf("%w: session %s changed concurrently", ErrInvalidTransition, sessionID)
	}

	detail, _ := json.Marshal(map[string]string{
		"previous_status": string(session.Status),
		"reason":          reason,
	})
	entry := models.AuditEntry{
		SessionID:  sessionID,
		Actor:      actor,
		FromStatus: session.Status,
		ToStatus:   next,
		Reason:     reason,
		Detail:     string(detail),
		CreatedAt:  now,
	}
	if err := s.sessions.AppendAudit(ctx, entry); err != nil {
		s.logger.Error("audit append failed", zap.String("session_id", sessionID), zap.Error(err))
	}

	s.logger.Info("session transitioned",
		zap.String("session_id", sessionID),
		zap.String("action", string(action)),
		zap.String("from", string(session.Status)),
		zap.String("to", string(next)),
		zap.String("actor", actor))
	return next, nil
}

// ensureNotProcessing rejects cancellation while the call's grading job is
// being executed. Cancellation is advisory to the queue otherwise.
func (s *SessionService) ensureNotProcessing(ctx context.Context, callID string) error {
	item, err := s.queue.GetByCall(ctx, callID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	if item.Status == models.QueueProcessing {
		return fmt.Errorf("%w: call %s", ErrGradingInFlight, callID)
	}
	return nil
}

// ComputeComposite recomputes the session's composite score and pass status
// purely from its persisted score rows and frozen snapshot, independent of
// the live template, and stores the result on the session.
func (s *SessionService) ComputeComposite(ctx context.Context, sessionID string) (CompositeResult, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CompositeResult{}, fmt.Errorf("%w: session %s", ErrNotFound, sessionID)
		}
		return CompositeResult{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	rows, err := s.scores.GetBySession(ctx, sessionID)
	if err != nil {
		return CompositeResult{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	engineScores := make([]scoring.CriterionScore, 0, len(rows))
	for _, r := range rows {
		engineScores = append(engineScores, scoring.CriterionScore{
			CriterionID:       r.CriterionID,
			IsNA:              r.IsNA,
			Raw:               r.RawScore,
			Normalized:        r.NormalizedScore,
			Weighted:          r.WeightedScore,
			Malformed:         r.IsMalformed,
			AutoFailTriggered: r.IsAutoFailTriggered,
		})
	}

	composite := scoring.ComputeComposite(engineScores, session.Snapshot.Criteria)
	pass := scoring.PassStatus(composite, session.Snapshot.PassThreshold, scoring.AnyAutoFail(engineScores))

	if err := s.sessions.SetResult(ctx, sessionID, composite, pass, time.Now()); err != nil {
		return CompositeResult{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	return CompositeResult{Percentage: composite, PassStatus: pass}, nil
}

// GetReport returns the session's persisted summary report.
func (s *SessionService) GetReport(ctx context.Context, sessionID string) (models.Report, error) {
	report, err := s.scores.GetReport(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Report{}, fmt.Errorf("%w: report for session %s", ErrNotFound, sessionID)
		}
		return models.Report{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return report, nil
}

// AuditTrail returns the session's transition history, oldest first.
func (s *SessionService) AuditTrail(ctx context.Context, sessionID string) ([]models.AuditEntry, error) {
	entries, err := s.sessions.ListAudit(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return entries, nil
}

// validateWeights enforces the template invariant that criterion weights sum
// to exactly 100.
func validateWeights(criteria []scoring.Criterion) error {
	if len(criteria) == 0 {
		return fmt.Errorf("%w: template has no criteria", ErrInvalidTemplate)
	}
	var sum float64
	for _, c := range criteria {
		sum += c.Weight
	}
	if math.Abs(sum-100) > 1e-6 {
		return fmt.Errorf("%w: criteria weights sum to %.2f, want 100", ErrInvalidTemplate, sum)
	}
	return nil
}

// freezeSnapshot deep-copies the template into an owned snapshot so later
// template edits cannot reach historical sessions through shared slices.
func freezeSnapshot(tpl models.Template) (scoring.TemplateSnapshot, error) {
	snapshot := scoring.TemplateSnapshot{
		TemplateID:      tpl.ID,
		TemplateVersion: tpl.Version,
		Name:            tpl.Name,
		ScoringMethod:   tpl.ScoringMethod,
		PassThreshold:   tpl.PassThreshold,
	}

	raw, err := json.Marshal(struct {
		Criteria []scoring.Criterion     `json:"criteria"`
		Groups   []scoring.CriteriaGroup `json:"groups"`
	}{tpl.Criteria, tpl.Groups})
	if err != nil {
		return scoring.TemplateSnapshot{}, err
	}
	var copied struct {
		Criteria []scoring.Criterion     `json:"criteria"`
		Groups   []scoring.CriteriaGroup `json:"groups"`
	}
	if err := json.Unmarshal(raw, &copied); err != nil {
		return scoring.TemplateSnapshot{}, err
	}
	snapshot.Criteria = copied.Criteria
	snapshot.Groups = copied.Groups
	return snapshot, nil
}
