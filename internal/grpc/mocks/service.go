package mocks

import (
	"context"
	"errors"

	"github.com/coachlens/grading-server/internal/repository/models"
	"github.com/coachlens/grading-server/internal/service"
)

// MockQueueService is a function-based mock of the queue service for
// testing the handler layer.
type MockQueueService struct {
	EnqueueFunc      func(ctx context.Context, callID string, priority int) (string, error)
	ProcessBatchFunc func(ctx context.Context, maxItems int) (int, error)
}

func (m *MockQueueService) Enqueue(ctx context.Context, callID string, priority int) (string, error) {
	if m.EnqueueFunc != nil {
		return m.EnqueueFunc(ctx, callID, priority)
	}
	return "", errors.New("EnqueueFunc not implemented")
}

func (m *MockQueueService) ProcessBatch(ctx context.Context, maxItems int) (int, error) {
	if m.ProcessBatchFunc != nil {
		return m.ProcessBatchFunc(ctx, maxItems)
	}
	return 0, errors.New("ProcessBatchFunc not implemented")
}

// MockSessionService is a function-based mock of the session service for
// testing the handler layer.
type MockSessionService struct {
	ComputeCompositeFunc func(ctx context.Context, sessionID string) (service.CompositeResult, error)
	TransitionFunc       func(ctx context.Context, sessionID string, action service.SessionAction, actor, reason string) (models.SessionStatus, error)
	GetReportFunc        func(ctx context.Context, sessionID string) (models.Report, error)
}

func (m *MockSessionService) ComputeComposite(ctx context.Context, sessionID string) (service.CompositeResult, error) {
	if m.ComputeCompositeFunc != nil {
		return m.ComputeCompositeFunc(ctx, sessionID)
	}
	return service.CompositeResult{}, errors.New("ComputeCompositeFunc not implemented")
}

func (m *MockSessionService) Transition(ctx context.Context, sessionID string, action service.SessionAction, actor, reason string) (models.SessionStatus, error) {
	if m.TransitionFunc != nil {
		return m.TransitionFunc(ctx, sessionID, action, actor, reason)
	}
	return "", errors.New("TransitionFunc not implemented")
}

func (m *MockSessionService) GetReport(ctx context.Context, sessionID string) (models.Report, error) {
	if m.GetReportFunc != nil {
		return m.GetReportFunc(ctx, sessionID)
	}
	return models.Report{}, errors.New("GetReportFunc not implemented")
}
