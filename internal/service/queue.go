package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/coachlens/grading-server/internal/repository/models"
)

const (
	defaultBatchSize   = 10
	defaultMaxAttempts = 3
	defaultConcurrency = 4
)

// QueueService drives asynchronous grading work. It is pull-based: any
// number of pollers may invoke ProcessBatch concurrently, and the atomic
// claim transition guarantees each item is executed at most once.
type QueueService struct {
	queue       QueueRepository
	calls       CallRepository
	sessions    SessionRepository
	provisioner SessionProvisioner
	evaluator   Evaluator
	logger      *zap.Logger
	maxAttempts int
	concurrency int
}

func NewQueueService(queue QueueRepository, calls CallRepository, sessions SessionRepository, provisioner SessionProvisioner, evaluator Evaluator, logger *zap.Logger, maxAttempts, concurrency int) *QueueService {
	if queue == nil || calls == nil || sessions == nil || provisioner == nil || evaluator == nil {
		panic("queue service dependencies must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &QueueService{
		queue:       queue,
		calls:       calls,
		sessions:    sessions,
		provisioner: provisioner,
		evaluator:   evaluator,
		logger:      logger.Named("queue"),
		maxAttempts: maxAttempts,
		concurrency: concurrency,
	}
}

// backoffDelay returns the retry delay after the given attempt count:
// 2^attempts minutes.
func backoffDelay(attempts int) time.Duration {
	return time.Duration(1<<attempts) * time.Minute
}

// Enqueue creates a grading job for the call, provisioning a session first
// so workers never pick up a job with nothing to grade. A call carries at
// most one active job: enqueueing while one is queued or processing hands
// back the existing item instead of creating a second. The call stays
// pending until a worker claims the item.
func (s *QueueService) Enqueue(ctx context.Context, callID string, priority int) (string, error) {
	call, err := s.calls.Get(ctx, callID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: call %s", ErrNotFound, callID)
		}
		return "", fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	if _, err := s.provisioner.EnsureForCall(ctx, call); err != nil {
		return "", err
	}

	now := time.Now()
	item := models.QueueItem{
		ID:          uuid.NewString(),
		CallID:      callID,
		Status:      models.QueueQueued,
		Priority:    priority,
		ScheduledAt: now,
		MaxAttempts: s.maxAttempts,
		CreatedAt:   now,
	}
	inserted, err := s.queue.Enqueue(ctx, item)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	if !inserted {
		existing, err := s.queue.GetActiveByCall(ctx, callID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return "", fmt.Errorf("%w: lost enqueue race for call %s", ErrStorageFailure, callID)
			}
			return "", fmt.Errorf("%w: %v", ErrStorageFailure, err)
		}
		s.logger.Info("grading job already active",
			zap.String("queue_item_id", existing.ID),
			zap.String("call_id", callID))
		return existing.ID, nil
	}

	s.logger.Info("grading job enqueued",
		zap.String("queue_item_id", item.ID),
		zap.String("call_id", callID),
		zap.Int("priority", priority))
	return item.ID, nil
}

// ProcessBatch claims and executes up to maxItems eligible queue items.
// Items are processed concurrently with bounded parallelism; one item's
// failure never aborts the rest of the batch.
func (s *QueueService) ProcessBatch(ctx context.Context, maxItems int) (int, error) {
	if maxItems <= 0 {
		maxItems = defaultBatchSize
	}

	items, err := s.queue.SelectEligible(ctx, time.Now(), maxItems)
	if err != nil {
		return 0, fmt.Errorf("%w: select eligible: %v", ErrStorageFailure, err)
	}
	if len(items) == 0 {
		return 0, nil
	}

	var processed atomic.Int64
	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for _, item := range items {
		item := item
		g.Go(func() error {
			if s.processItem(ctx, item) {
				processed.Add(1)
			}
			// Per-item errors are translated into queue transitions, never
			// returned, so the group is not cancelled mid-batch.
			return nil
		})
	}
	_ = g.Wait()

	return int(processed.Load()), nil
}

// processItem claims one item and runs it to a terminal transition for this
// invocation. Returns false when the claim was lost to another poller.
func (s *QueueService) processItem(ctx context.Context, item models.QueueItem) bool {
	now := time.Now()

	claimed, err := s.queue.Claim(ctx, item.ID, now)
	if err != nil {
		s.logger.Error("claim failed", zap.String("queue_item_id", item.ID), zap.Error(err))
		return false
	}
	if !claimed {
		// Another claimant won the race; harmless.
		return false
	}

	if err := s.calls.SetStatus(ctx, item.CallID, models.CallProcessing, now); err != nil {
		s.logger.Warn("call status mirror failed", zap.String("call_id", item.CallID), zap.Error(err))
	}

	err = s.runEvaluation(ctx, item)
	switch {
	case err == nil:
		s.complete(ctx, item)
	case errors.Is(err, ErrSessionTerminal):
		// Advisory cancellation: the session ended while the job was in
		// flight, so the result is discarded rather than persisted.
		s.discard(ctx, item, err)
	default:
		s.handleFailure(ctx, item, err)
	}
	return true
}

func (s *QueueService) runEvaluation(ctx context.Context, item models.QueueItem) error {
	call, err := s.calls.Get(ctx, item.CallID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: call %s", ErrNotFound, item.CallID)
		}
		return fmt.Errorf("%w: load call: %v", ErrStorageFailure, err)
	}

	session, err := s.sessions.GetByCall(ctx, item.CallID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: no session for call %s", ErrNotFound, item.CallID)
		}
		return fmt.Errorf("%w: load session: %v", ErrStorageFailure, err)
	}
	if session.Status.Terminal() {
		return fmt.Errorf("%w: session %s is %s", ErrSessionTerminal, session.ID, session.Status)
	}

	now := time.Now()
	if moved, err := s.sessions.TransitionStatus(ctx, session.ID, models.SessionPending, models.SessionInProgress, now); err == nil && moved {
		s.audit(ctx, session.ID, models.SessionPending, models.SessionInProgress, "system", "automated grading started")
	}

	result, err := s.evaluator.Evaluate(ctx, call, session)
	if err != nil {
		return err
	}
	if len(result.Unscored) > 0 {
		s.logger.Warn("provider left criteria unscored",
			zap.String("session_id", session.ID),
			zap.Strings("criterion_ids", result.Unscored))
	}

	now = time.Now()
	if moved, err := s.sessions.TransitionStatus(ctx, session.ID, models.SessionInProgress, models.SessionCompleted, now); err == nil && moved {
		s.audit(ctx, session.ID, models.SessionInProgress, models.SessionCompleted, "system", "automated grading completed")
	}
	return nil
}

func (s *QueueService) complete(ctx context.Context, item models.QueueItem) {
	now := time.Now()
	if err := s.queue.MarkCompleted(ctx, item.ID, now); err != nil {
		s.logger.Error("mark completed failed", zap.String("queue_item_id", item.ID), zap.Error(err))
		return
	}
	if err := s.calls.SetStatus(ctx, item.CallID, models.CallAnalyzed, now); err != nil {
		s.logger.Warn("call status mirror failed", zap.String("call_id", item.CallID), zap.Error(err))
	}
	s.logger.Info("grading job completed",
		zap.String("queue_item_id", item.ID),
		zap.String("call_id", item.CallID))
}

func (s *QueueService) discard(ctx context.Context, item models.QueueItem, cause error) {
	now := time.Now()
	if err := s.queue.MarkCompleted(ctx, item.ID, now); err != nil {
		s.logger.Error("mark completed failed", zap.String("queue_item_id", item.ID), zap.Error(err))
		return
	}
	if err := s.calls.SetStatus(ctx, item.CallID, models.CallPending, now); err != nil {
		s.logger.Warn("call status mirror failed", zap.String("call_id", item.CallID), zap.Error(err))
	}
	s.logger.Info("grading result discarded",
		zap.String("queue_item_id", item.ID),
		zap.String("call_id", item.CallID),
		zap.String("cause", cause.Error()))
}

// handleFailure applies the retry policy: requeue with exponential backoff
// while attempts remain, otherwise terminate the item and the call as failed.
func (s *QueueService) handleFailure(ctx context.Context, item models.QueueItem, cause error) {
	now := time.Now()
	attempts := item.Attempts + 1

	if attempts < item.MaxAttempts {
		scheduledAt := now.Add(backoffDelay(attempts))
		if err := s.queue.Reschedule(ctx, item.ID, attempts, scheduledAt, cause.Error()); err != nil {
			s.logger.Error("reschedule failed", zap.String("queue_item_id", item.ID), zap.Error(err))
			return
		}
		// The call returns to pending so it reads as retryable, not stuck.
		if err := s.calls.SetStatus(ctx, item.CallID, models.CallPending, now); err != nil {
			s.logger.Warn("call status mirror failed", zap.String("call_id", item.CallID), zap.Error(err))
		}
		s.logger.Warn("grading job rescheduled",
			zap.String("queue_item_id", item.ID),
			zap.String("call_id", item.CallID),
			zap.Int("attempts", attempts),
			zap.Time("scheduled_at", scheduledAt),
			zap.Error(cause))
		return
	}

	if err := s.queue.MarkFailed(ctx, item.ID, attempts, cause.Error(), now); err != nil {
		s.logger.Error("mark failed failed", zap.String("queue_item_id", item.ID), zap.Error(err))
		return
	}
	if err := s.calls.SetStatus(ctx, item.CallID, models.CallFailed, now); err != nil {
		s.logger.Warn("call status mirror failed", zap.String("call_id", item.CallID), zap.Error(err))
	}
	s.logger.Error("grading job failed permanently",
		zap.String("queue_item_id", item.ID),
		zap.String("call_id", item.CallID),
		zap.Int("attempts", attempts),
		zap.Error(cause))
}

func (s *QueueService) audit(ctx context.Context, sessionID string, from, to models.SessionStatus, actor, reason string) {
	entry := models.AuditEntry{
		SessionID:  sessionID,
		Actor:      actor,
		FromStatus: from,
		ToStatus:   to,
		Reason:     reason,
		CreatedAt:  time.Now(),
	}
	if err := s.sessions.AppendAudit(ctx, entry); err != nil {
		s.logger.Error("audit append failed", zap.String("session_id", sessionID), zap.Error(err))
	}
}
