package grpc

import (
	"context"
	"time"

	"github.com/coachlens/grading-server/internal/repository/models"
	"github.com/coachlens/grading-server/internal/service"
)

// Cacher defines the interface for cache operations.
type Cacher interface {
	Close() error
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// QueueService drives grading job submission and batch execution.
type QueueService interface {
	Enqueue(ctx context.Context, callID string, priority int) (string, error)
	ProcessBatch(ctx context.Context, maxItems int) (int, error)
}

// SessionService exposes session results and lifecycle transitions.
type SessionService interface {
	ComputeComposite(ctx context.Context, sessionID string) (service.CompositeResult, error)
	Transition(ctx context.Context, sessionID string, action service.SessionAction, actor, reason string) (models.SessionStatus, error)
	GetReport(ctx context.Context, sessionID string) (models.Report, error)
}
