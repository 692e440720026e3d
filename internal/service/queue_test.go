package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/coachlens/grading-server/internal/repository/models"
	"github.com/coachlens/grading-server/internal/scorer"
	"github.com/coachlens/grading-server/internal/service/mocks"
)

// evaluatorStub lives in-package because mocks cannot import service types
// without a cycle.
type evaluatorStub struct {
	mu    sync.Mutex
	calls int
	fn    func(ctx context.Context, call models.Call, session models.Session) (*EvaluationResult, error)
}

func (e *evaluatorStub) Evaluate(ctx context.Context, call models.Call, session models.Session) (*EvaluationResult, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()
	if e.fn != nil {
		return e.fn(ctx, call, session)
	}
	return &EvaluationResult{SessionID: session.ID, Composite: 88, Pass: true}, nil
}

func (e *evaluatorStub) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

// provisionerStub satisfies SessionProvisioner without pulling the full
// session service into queue tests.
type provisionerStub struct {
	calls int
	fn    func(ctx context.Context, call models.Call) (models.Session, error)
}

func (p *provisionerStub) EnsureForCall(ctx context.Context, call models.Call) (models.Session, error) {
	p.calls++
	if p.fn != nil {
		return p.fn(ctx, call)
	}
	return testSession(), nil
}

func queueItem(attempts int) models.QueueItem {
	return models.QueueItem{
		ID:          "item-1",
		CallID:      "call-1",
		Status:      models.QueueQueued,
		Attempts:    attempts,
		MaxAttempts: 3,
		ScheduledAt: time.Now(),
		CreatedAt:   time.Now(),
	}
}

// queueFixture wires a QueueService against tracking mocks with a healthy
// default path: one eligible item, claim succeeds, call and session load.
type queueFixture struct {
	queue       *mocks.MockQueueRepository
	calls       *mocks.MockCallRepository
	sessions    *mocks.MockSessionRepository
	provisioner *provisionerStub
	evaluator   *evaluatorStub
	callStatus  []models.CallStatus

	completed   []string
	rescheduled []struct {
		attempts    int
		scheduledAt time.Time
		lastError   string
	}
	failed []struct {
		attempts  int
		lastError string
	}
}

func newQueueFixture(item models.QueueItem) *queueFixture {
	f := &queueFixture{evaluator: &evaluatorStub{}, provisioner: &provisionerStub{}}
	f.queue = &mocks.MockQueueRepository{
		SelectEligibleFunc: func(ctx context.Context, now time.Time, limit int) ([]models.QueueItem, error) {
			return []models.QueueItem{item}, nil
		},
		ClaimFunc: func(ctx context.Context, id string, now time.Time) (bool, error) {
			return true, nil
		},
		MarkCompletedFunc: func(ctx context.Context, id string, now time.Time) error {
			f.completed = append(f.completed, id)
			return nil
		},
		RescheduleFunc: func(ctx context.Context, id string, attempts int, scheduledAt time.Time, lastError string) error {
			f.rescheduled = append(f.rescheduled, struct {
				attempts    int
				scheduledAt time.Time
				lastError   string
			}{attempts, scheduledAt, lastError})
			return nil
		},
		MarkFailedFunc: func(ctx context.Context, id string, attempts int, lastError string, now time.Time) error {
			f.failed = append(f.failed, struct {
				attempts  int
				lastError string
			}{attempts, lastError})
			return nil
		},
	}
	f.calls = &mocks.MockCallRepository{
		GetFunc: func(ctx context.Context, id string) (models.Call, error) {
			return testCall(), nil
		},
		SetStatusFunc: func(ctx context.Context, id string, status models.CallStatus, now time.Time) error {
			f.callStatus = append(f.callStatus, status)
			return nil
		},
	}
	f.sessions = &mocks.MockSessionRepository{
		GetByCallFunc: func(ctx context.Context, callID string) (models.Session, error) {
			s := testSession()
			s.Status = models.SessionPending
			return s, nil
		},
	}
	return f
}

func (f *queueFixture) service(t *testing.T) *QueueService {
	t.Helper()
	// Concurrency 1 keeps the fixture's slice captures race-free.
	return NewQueueService(f.queue, f.calls, f.sessions, f.provisioner, f.evaluator, zap.NewNop(), 3, 1)
}

func TestEnqueueJob(t *testing.T) {
	ctx := context.Background()

	t.Run("enqueues for an existing call", func(t *testing.T) {
		var enqueued models.QueueItem
		queue := &mocks.MockQueueRepository{
			EnqueueFunc: func(ctx context.Context, item models.QueueItem) (bool, error) {
				enqueued = item
				return true, nil
			},
		}
		calls := &mocks.MockCallRepository{
			GetFunc: func(ctx context.Context, id string) (models.Call, error) { return testCall(), nil },
		}
		provisioner := &provisionerStub{}
		svc := NewQueueService(queue, calls, &mocks.MockSessionRepository{}, provisioner, &evaluatorStub{}, zap.NewNop(), 3, 2)

		id, err := svc.Enqueue(ctx, "call-1", 5)

		require.NoError(t, err)
		assert.Equal(t, id, enqueued.ID)
		assert.Equal(t, "call-1", enqueued.CallID)
		assert.Equal(t, models.QueueQueued, enqueued.Status)
		assert.Equal(t, 5, enqueued.Priority)
		assert.Equal(t, 0, enqueued.Attempts)
		assert.Equal(t, 3, enqueued.MaxAttempts)
		assert.WithinDuration(t, time.Now(), enqueued.ScheduledAt, time.Second)
		// Enqueueing through the public surface is enough to get a session.
		assert.Equal(t, 1, provisioner.calls)
	})

	t.Run("unknown call", func(t *testing.T) {
		calls := &mocks.MockCallRepository{
			GetFunc: func(ctx context.Context, id string) (models.Call, error) {
				return models.Call{}, sql.ErrNoRows
			},
		}
		svc := NewQueueService(&mocks.MockQueueRepository{}, calls, &mocks.MockSessionRepository{}, &provisionerStub{}, &evaluatorStub{}, zap.NewNop(), 3, 2)

		_, err := svc.Enqueue(ctx, "nope", 0)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("active job wins over a duplicate enqueue", func(t *testing.T) {
		inserts := 0
		queue := &mocks.MockQueueRepository{
			EnqueueFunc: func(ctx context.Context, item models.QueueItem) (bool, error) {
				inserts++
				return false, nil
			},
			GetActiveByCallFunc: func(ctx context.Context, callID string) (models.QueueItem, error) {
				return models.QueueItem{ID: "item-active", CallID: callID, Status: models.QueueQueued}, nil
			},
		}
		calls := &mocks.MockCallRepository{
			GetFunc: func(ctx context.Context, id string) (models.Call, error) { return testCall(), nil },
		}
		svc := NewQueueService(queue, calls, &mocks.MockSessionRepository{}, &provisionerStub{}, &evaluatorStub{}, zap.NewNop(), 3, 2)

		id, err := svc.Enqueue(ctx, "call-1", 0)

		require.NoError(t, err)
		assert.Equal(t, "item-active", id)
		assert.Equal(t, 1, inserts)
	})

	t.Run("provisioning failure blocks the enqueue", func(t *testing.T) {
		queue := &mocks.MockQueueRepository{
			EnqueueFunc: func(ctx context.Context, item models.QueueItem) (bool, error) {
				t.Error("enqueued despite provisioning failure")
				return true, nil
			},
		}
		calls := &mocks.MockCallRepository{
			GetFunc: func(ctx context.Context, id string) (models.Call, error) { return testCall(), nil },
		}
		provisioner := &provisionerStub{
			fn: func(ctx context.Context, call models.Call) (models.Session, error) {
				return models.Session{}, ErrInvalidTemplate
			},
		}
		svc := NewQueueService(queue, calls, &mocks.MockSessionRepository{}, provisioner, &evaluatorStub{}, zap.NewNop(), 3, 2)

		_, err := svc.Enqueue(ctx, "call-1", 0)
		assert.ErrorIs(t, err, ErrInvalidTemplate)
	})
}

func TestProcessBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("successful run completes item and call", func(t *testing.T) {
		f := newQueueFixture(queueItem(0))
		n, err := f.service(t).ProcessBatch(ctx, 10)

		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, 1, f.evaluator.callCount())
		assert.Equal(t, []string{"item-1"}, f.completed)
		// processing while running, analyzed afterwards.
		assert.Equal(t, []models.CallStatus{models.CallProcessing, models.CallAnalyzed}, f.callStatus)
		assert.Empty(t, f.rescheduled)
		assert.Empty(t, f.failed)
	})

	t.Run("lost claim skips the item", func(t *testing.T) {
		f := newQueueFixture(queueItem(0))
		f.queue.ClaimFunc = func(ctx context.Context, id string, now time.Time) (bool, error) {
			return false, nil
		}

		n, err := f.service(t).ProcessBatch(ctx, 10)

		require.NoError(t, err)
		assert.Equal(t, 0, n)
		assert.Equal(t, 0, f.evaluator.callCount())
		assert.Empty(t, f.completed)
	})

	t.Run("empty queue is a no-op", func(t *testing.T) {
		f := newQueueFixture(queueItem(0))
		f.queue.SelectEligibleFunc = func(ctx context.Context, now time.Time, limit int) ([]models.QueueItem, error) {
			return nil, nil
		}

		n, err := f.service(t).ProcessBatch(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("first failure reschedules with backoff", func(t *testing.T) {
		f := newQueueFixture(queueItem(0))
		f.evaluator.fn = func(ctx context.Context, call models.Call, session models.Session) (*EvaluationResult, error) {
			return nil, scorer.ErrUnavailable
		}

		before := time.Now()
		n, err := f.service(t).ProcessBatch(ctx, 10)

		require.NoError(t, err)
		assert.Equal(t, 1, n)
		require.Len(t, f.rescheduled, 1)
		assert.Equal(t, 1, f.rescheduled[0].attempts)
		// First retry backs off by 2^1 minutes.
		assert.True(t, f.rescheduled[0].scheduledAt.Sub(before) >= 2*time.Minute)
		assert.Contains(t, f.rescheduled[0].lastError, "unavailable")
		// The call returns to pending, not failed.
		assert.Equal(t, []models.CallStatus{models.CallProcessing, models.CallPending}, f.callStatus)
		assert.Empty(t, f.failed)
	})

	t.Run("second failure backs off further", func(t *testing.T) {
		f := newQueueFixture(queueItem(1))
		f.evaluator.fn = func(ctx context.Context, call models.Call, session models.Session) (*EvaluationResult, error) {
			return nil, scorer.ErrUnavailable
		}

		before := time.Now()
		_, err := f.service(t).ProcessBatch(ctx, 10)

		require.NoError(t, err)
		require.Len(t, f.rescheduled, 1)
		assert.Equal(t, 2, f.rescheduled[0].attempts)
		assert.True(t, f.rescheduled[0].scheduledAt.Sub(before) >= 4*time.Minute)
	})

	t.Run("final failure is terminal, never a fourth attempt", func(t *testing.T) {
		f := newQueueFixture(queueItem(2))
		f.evaluator.fn = func(ctx context.Context, call models.Call, session models.Session) (*EvaluationResult, error) {
			return nil, scorer.ErrUnavailable
		}

		n, err := f.service(t).ProcessBatch(ctx, 10)

		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Empty(t, f.rescheduled)
		require.Len(t, f.failed, 1)
		assert.Equal(t, 3, f.failed[0].attempts)
		assert.Equal(t, []models.CallStatus{models.CallProcessing, models.CallFailed}, f.callStatus)
	})

	t.Run("terminal session discards the result", func(t *testing.T) {
		f := newQueueFixture(queueItem(0))
		f.sessions.GetByCallFunc = func(ctx context.Context, callID string) (models.Session, error) {
			s := testSession()
			s.Status = models.SessionCancelled
			return s, nil
		}

		n, err := f.service(t).ProcessBatch(ctx, 10)

		require.NoError(t, err)
		assert.Equal(t, 1, n)
		// The evaluator never runs against a cancelled session.
		assert.Equal(t, 0, f.evaluator.callCount())
		assert.Equal(t, []string{"item-1"}, f.completed)
		assert.Equal(t, []models.CallStatus{models.CallProcessing, models.CallPending}, f.callStatus)
		assert.Empty(t, f.failed)
	})

	t.Run("one failing item does not poison the batch", func(t *testing.T) {
		good := queueItem(0)
		bad := queueItem(0)
		bad.ID = "item-2"
		bad.CallID = "call-2"

		f := newQueueFixture(good)
		f.queue.SelectEligibleFunc = func(ctx context.Context, now time.Time, limit int) ([]models.QueueItem, error) {
			return []models.QueueItem{good, bad}, nil
		}
		f.evaluator.fn = func(ctx context.Context, call models.Call, session models.Session) (*EvaluationResult, error) {
			if call.ID == "call-2" {
				return nil, errors.New("boom")
			}
			return &EvaluationResult{SessionID: session.ID}, nil
		}
		f.calls.GetFunc = func(ctx context.Context, id string) (models.Call, error) {
			c := testCall()
			c.ID = id
			return c, nil
		}

		n, err := f.service(t).ProcessBatch(ctx, 10)

		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, 2, f.evaluator.callCount())
	})

	t.Run("select failure surfaces as storage error", func(t *testing.T) {
		f := newQueueFixture(queueItem(0))
		f.queue.SelectEligibleFunc = func(ctx context.Context, now time.Time, limit int) ([]models.QueueItem, error) {
			return nil, errors.New("db gone")
		}

		_, err := f.service(t).ProcessBatch(ctx, 10)
		assert.ErrorIs(t, err, ErrStorageFailure)
	})
}

func TestBackoffDelay(t *testing.T) {
	assert.Equal(t, 2*time.Minute, backoffDelay(1))
	assert.Equal(t, 4*time.Minute, backoffDelay(2))
	assert.Equal(t, 8*time.Minute, backoffDelay(3))
}
