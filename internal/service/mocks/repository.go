// Package mocks provides hand-written func-field mocks of the service layer
// interfaces for testing.
package mocks

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/coachlens/grading-server/internal/repository/models"
)

type MockCallRepository struct {
	GetFunc       func(ctx context.Context, id string) (models.Call, error)
	SetStatusFunc func(ctx context.Context, id string, status models.CallStatus, now time.Time) error
}

func (m *MockCallRepository) Get(ctx context.Context, id string) (models.Call, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return models.Call{}, errors.New("GetFunc not implemented")
}

func (m *MockCallRepository) SetStatus(ctx context.Context, id string, status models.CallStatus, now time.Time) error {
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(ctx, id, status, now)
	}
	return nil
}

type MockQueueRepository struct {
	EnqueueFunc         func(ctx context.Context, item models.QueueItem) (bool, error)
	GetFunc             func(ctx context.Context, id string) (models.QueueItem, error)
	GetByCallFunc       func(ctx context.Context, callID string) (models.QueueItem, error)
	GetActiveByCallFunc func(ctx context.Context, callID string) (models.QueueItem, error)
	SelectEligibleFunc  func(ctx context.Context, now time.Time, limit int) ([]models.QueueItem, error)
	ClaimFunc           func(ctx context.Context, id string, now time.Time) (bool, error)
	MarkCompletedFunc   func(ctx context.Context, id string, now time.Time) error
	RescheduleFunc      func(ctx context.Context, id string, attempts int, scheduledAt time.Time, lastError string) error
	MarkFailedFunc      func(ctx context.Context, id string, attempts int, lastError string, now time.Time) error
}

func (m *MockQueueRepository) Enqueue(ctx context.Context, item models.QueueItem) (bool, error) {
	if m.EnqueueFunc != nil {
		return m.EnqueueFunc(ctx, item)
	}
	return false, errors.New("EnqueueFunc not implemented")
}

func (m *MockQueueRepository) Get(ctx context.Context, id string) (models.QueueItem, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return models.QueueItem{}, errors.New("GetFunc not implemented")
}

func (m *MockQueueRepository) GetByCall(ctx context.Context, callID string) (models.QueueItem, error) {
	if m.GetByCallFunc != nil {
		return m.GetByCallFunc(ctx, callID)
	}
	return models.QueueItem{}, errors.New("GetByCallFunc not implemented")
}

// GetActiveByCall defaults to no active item, matching a quiet queue.
func (m *MockQueueRepository) GetActiveByCall(ctx context.Context, callID string) (models.QueueItem, error) {
	if m.GetActiveByCallFunc != nil {
		return m.GetActiveByCallFunc(ctx, callID)
	}
	return models.QueueItem{}, sql.ErrNoRows
}

func (m *MockQueueRepository) SelectEligible(ctx context.Context, now time.Time, limit int) ([]models.QueueItem, error) {
	if m.SelectEligibleFunc != nil {
		return m.SelectEligibleFunc(ctx, now, limit)
	}
	return nil, errors.New("SelectEligibleFunc not implemented")
}

func (m *MockQueueRepository) Claim(ctx context.Context, id string, now time.Time) (bool, error) {
	if m.ClaimFunc != nil {
		return m.ClaimFunc(ctx, id, now)
	}
	return false, errors.New("ClaimFunc not implemented")
}

func (m *MockQueueRepository) MarkCompleted(ctx context.Context, id string, now time.Time) error {
	if m.MarkCompletedFunc != nil {
		return m.MarkCompletedFunc(ctx, id, now)
	}
	return errors.New("MarkCompletedFunc not implemented")
}

func (m *MockQueueRepository) Reschedule(ctx context.Context, id string, attempts int, scheduledAt time.Time, lastError string) error {
	if m.RescheduleFunc != nil {
		return m.RescheduleFunc(ctx, id, attempts, scheduledAt, lastError)
	}
	return errors.New("RescheduleFunc not implemented")
}

func (m *MockQueueRepository) MarkFailed(ctx context.Context, id string, attempts int, lastError string, now time.Time) error {
	if m.MarkFailedFunc != nil {
		return m.MarkFailedFunc(ctx, id, attempts, lastError, now)
	}
	return errors.New("MarkFailedFunc not implemented")
}

type MockSessionRepository struct {
	CreateFunc           func(ctx context.Context, s models.Session) error
	GetFunc              func(ctx context.Context, id string) (models.Session, error)
	GetByCallFunc        func(ctx context.Context, callID string) (models.Session, error)
	TransitionStatusFunc func(ctx context.Context, id string, from, to models.SessionStatus, now time.Time) (bool, error)
	SetResultFunc        func(ctx context.Context, id string, percentage float64, pass bool, now time.Time) error
	AppendAuditFunc      func(ctx context.Context, e models.AuditEntry) error
	ListAuditFunc        func(ctx context.Context, sessionID string) ([]models.AuditEntry, error)
}

func (m *MockSessionRepository) Create(ctx context.Context, s models.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, s)
	}
	return errors.New("CreateFunc not implemented")
}

func (m *MockSessionRepository) Get(ctx context.Context, id string) (models.Session, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return models.Session{}, errors.New("GetFunc not implemented")
}

func (m *MockSessionRepository) GetByCall(ctx context.Context, callID string) (models.Session, error) {
	if m.GetByCallFunc != nil {
		return m.GetByCallFunc(ctx, callID)
	}
	return models.Session{}, errors.New("GetByCallFunc not implemented")
}

func (m *MockSessionRepository) TransitionStatus(ctx context.Context, id string, from, to models.SessionStatus, now time.Time) (bool, error) {
	if m.TransitionStatusFunc != nil {
		return m.TransitionStatusFunc(ctx, id, from, to, now)
	}
	return true, nil
}

func (m *MockSessionRepository) SetResult(ctx context.Context, id string, percentage float64, pass bool, now time.Time) error {
	if m.SetResultFunc != nil {
		return m.SetResultFunc(ctx, id, percentage, pass, now)
	}
	return nil
}

func (m *MockSessionRepository) AppendAudit(ctx context.Context, e models.AuditEntry) error {
	if m.AppendAuditFunc != nil {
		return m.AppendAuditFunc(ctx, e)
	}
	return nil
}

func (m *MockSessionRepository) ListAudit(ctx context.Context, sessionID string) ([]models.AuditEntry, error) {
	if m.ListAuditFunc != nil {
		return m.ListAuditFunc(ctx, sessionID)
	}
	return nil, errors.New("ListAuditFunc not implemented")
}

type MockScoreRepository struct {
	SaveEvaluationFunc func(ctx context.Context, scores []models.Score, report models.Report) error
	GetBySessionFunc   func(ctx context.Context, sessionID string) ([]models.Score, error)
	GetReportFunc      func(ctx context.Context, sessionID string) (models.Report, error)
}

func (m *MockScoreRepository) SaveEvaluation(ctx context.Context, scores []models.Score, report models.Report) error {
	if m.SaveEvaluationFunc != nil {
		return m.SaveEvaluationFunc(ctx, scores, report)
	}
	return errors.New("SaveEvaluationFunc not implemented")
}

func (m *MockScoreRepository) GetBySession(ctx context.Context, sessionID string) ([]models.Score, error) {
	if m.GetBySessionFunc != nil {
		return m.GetBySessionFunc(ctx, sessionID)
	}
	return nil, errors.New("GetBySessionFunc not implemented")
}

func (m *MockScoreRepository) GetReport(ctx context.Context, sessionID string) (models.Report, error) {
	if m.GetReportFunc != nil {
		return m.GetReportFunc(ctx, sessionID)
	}
	return models.Report{}, errors.New("GetReportFunc not implemented")
}

type MockTemplateRepository struct {
	GetFunc              func(ctx context.Context, id string) (models.Template, error)
	GetDefaultActiveFunc func(ctx context.Context, orgID string) (models.Template, error)
}

func (m *MockTemplateRepository) Get(ctx context.Context, id string) (models.Template, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return models.Template{}, errors.New("GetFunc not implemented")
}

func (m *MockTemplateRepository) GetDefaultActive(ctx context.Context, orgID string) (models.Template, error) {
	if m.GetDefaultActiveFunc != nil {
		return m.GetDefaultActiveFunc(ctx, orgID)
	}
	return models.Template{}, errors.New("GetDefaultActiveFunc not implemented")
}
