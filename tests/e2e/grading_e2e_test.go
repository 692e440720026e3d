//go:build e2e

package e2e

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	pb "github.com/coachlens/grading-server/api/v1"
	"github.com/coachlens/grading-server/internal/grpc"
	"github.com/coachlens/grading-server/internal/repository"
	"github.com/coachlens/grading-server/internal/repository/models"
	"github.com/coachlens/grading-server/internal/scorer"
	"github.com/coachlens/grading-server/internal/scoring"
	"github.com/coachlens/grading-server/internal/service"
	"github.com/coachlens/grading-server/tests/e2e/mocks"
)

// stubScorer stands in for the external evaluation provider so the full
// pipeline can run against real storage.
type stubScorer struct {
	respond func(req scorer.Request) (*scorer.Response, error)
}

func (s *stubScorer) Score(ctx context.Context, req scorer.Request) (*scorer.Response, error) {
	return s.respond(req)
}

func passingResponse(req scorer.Request) (*scorer.Response, error) {
	scores := make([]scorer.CriterionScore, 0, len(req.Criteria))
	for _, c := range req.Criteria {
		switch c.Type {
		case scoring.TypeScale:
			scores = append(scores, scorer.CriterionScore{CriterionID: c.ID, Value: 8.0, Feedback: "good"})
		case scoring.TypePassFail:
			scores = append(scores, scorer.CriterionScore{CriterionID: c.ID, Value: true})
		}
	}
	return &scorer.Response{
		CriteriaScores: scores,
		Summary:        "Strong discovery call.",
		Strengths:      []string{"rapport"},
		Sentiment:      "positive",
		Model:          "grader-large",
		Usage:          scorer.Usage{TotalTokens: 900},
	}, nil
}

type pipeline struct {
	db          *sql.DB
	calls       *repository.CallRepository
	queue       *repository.QueueRepository
	sessionRepo *repository.SessionRepository
	sessions    *service.SessionService
	queueSvc    *service.QueueService
	handler     *grpc.GRPCHandlers
}

func setupPipeline(t *testing.T, sc service.Scorer) *pipeline {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	// A single connection keeps all queries on the same in-memory database.
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	require.NoError(t, repository.EnsureSchema(ctx, db))

	logger := zap.NewNop()
	callRepo := repository.NewCallRepository(db)
	queueRepo := repository.NewQueueRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	scoreRepo := repository.NewScoreRepository(db)
	templateRepo := repository.NewTemplateRepository(db)

	now := time.Now()
	require.NoError(t, templateRepo.Create(ctx, models.Template{
		ID:            "tpl-1",
		OrgID:         "org-1",
		Name:          "Discovery Call Rubric",
		ScoringMethod: scoring.MethodWeighted,
		PassThreshold: 70,
		Status:        models.TemplateActive,
		IsDefault:     true,
		Version:       1,
		Criteria: []scoring.Criterion{
			{
				ID: "crit-scale", Name: "Opening", Type: scoring.TypeScale,
				Config: scoring.CriterionConfig{MinValue: 0, MaxValue: 10},
				Weight: 60, MaxScore: 10,
			},
			{
				ID: "crit-pf", Name: "Next steps agreed", Type: scoring.TypePassFail,
				Config: scoring.CriterionConfig{PassValue: 100, FailValue: 0},
				Weight: 40, MaxScore: 100,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}))

	require.NoError(t, callRepo.Create(ctx, models.Call{
		ID:         "call-1",
		OrgID:      "org-1",
		Transcript: "Agent: thanks for joining...",
		Status:     models.CallPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}))

	gradingSvc := service.NewGradingService(scoreRepo, sc, logger)
	sessionSvc := service.NewSessionService(sessionRepo, templateRepo, scoreRepo, queueRepo, logger)
	queueSvc := service.NewQueueService(queueRepo, callRepo, sessionRepo, sessionSvc, gradingSvc, logger, 3, 1)

	handler := grpc.NewGRPCHandlers(queueSvc, sessionSvc, &mocks.InMemoryCache{}, logger, time.Minute)

	return &pipeline{
		db:          db,
		calls:       callRepo,
		queue:       queueRepo,
		sessionRepo: sessionRepo,
		sessions:    sessionSvc,
		queueSvc:    queueSvc,
		handler:     handler,
	}
}

func TestE2E_GradingWorkflow(t *testing.T) {
	p := setupPipeline(t, &stubScorer{respond: passingResponse})
	ctx := context.Background()

	// Enqueue through the public surface with no pre-existing session: the
	// queue provisions one from the default template.
	enqResp, err := p.handler.EnqueueGradingJob(ctx, &pb.EnqueueGradingJobRequest{CallId: "call-1"})
	require.NoError(t, err)
	require.NotEmpty(t, enqResp.QueueItemId)

	session, err := p.sessionRepo.GetByCall(ctx, "call-1")
	require.NoError(t, err)
	require.Equal(t, models.SessionPending, session.Status)
	require.Equal(t, "tpl-1", session.TemplateID)

	// A duplicate enqueue hands back the in-flight job instead of a second one.
	dupResp, err := p.handler.EnqueueGradingJob(ctx, &pb.EnqueueGradingJobRequest{CallId: "call-1"})
	require.NoError(t, err)
	assert.Equal(t, enqResp.QueueItemId, dupResp.QueueItemId)

	// One batch drains the job.
	batchResp, err := p.handler.ProcessQueueBatch(ctx, &pb.ProcessQueueBatchRequest{MaxItems: 10})
	require.NoError(t, err)
	require.Equal(t, int32(1), batchResp.Processed)

	// Queue item completed, call analyzed, session completed.
	item, err := p.queue.Get(ctx, enqResp.QueueItemId)
	require.NoError(t, err)
	assert.Equal(t, models.QueueCompleted, item.Status)

	call, err := p.calls.Get(ctx, "call-1")
	require.NoError(t, err)
	assert.Equal(t, models.CallAnalyzed, call.Status)

	// Composite from persisted scores: scale 8/10 at weight 60 plus a pass
	// at weight 40 comes to 88.
	compResp, err := p.handler.GetSessionComposite(ctx, &pb.SessionRequest{SessionId: session.ID})
	require.NoError(t, err)
	assert.Equal(t, 88.0, compResp.Percentage)
	assert.True(t, compResp.Pass)

	reportResp, err := p.handler.GetSessionReport(ctx, &pb.SessionRequest{SessionId: session.ID})
	require.NoError(t, err)
	assert.Equal(t, 88.0, reportResp.CompositeScore)
	assert.True(t, reportResp.Pass)
	assert.Equal(t, "Strong discovery call.", reportResp.Summary)
	assert.Equal(t, "grader-large", reportResp.ModelUsed)

	// The lifecycle left an audit trail: started and completed by the system.
	trail, err := p.sessions.AuditTrail(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, trail, 2)
	assert.Equal(t, models.SessionPending, trail[0].FromStatus)
	assert.Equal(t, models.SessionInProgress, trail[0].ToStatus)
	assert.Equal(t, models.SessionInProgress, trail[1].FromStatus)
	assert.Equal(t, models.SessionCompleted, trail[1].ToStatus)

	// Human review on top of the automated result.
	trResp, err := p.handler.TransitionSession(ctx, &pb.TransitionSessionRequest{
		SessionId: session.ID,
		Action:    "review",
		Actor:     "manager-7",
		Reason:    "weekly spot check",
	})
	require.NoError(t, err)
	assert.Equal(t, "reviewed", trResp.Status)
}

func TestE2E_RetryThenPermanentFailure(t *testing.T) {
	stub := &stubScorer{respond: func(req scorer.Request) (*scorer.Response, error) {
		return nil, scorer.ErrUnavailable
	}}
	p := setupPipeline(t, stub)
	ctx := context.Background()

	itemID, err := p.queueSvc.Enqueue(ctx, "call-1", 0)
	require.NoError(t, err)

	// First run fails and reschedules into the future.
	n, err := p.queueSvc.ProcessBatch(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	item, err := p.queue.Get(ctx, itemID)
	require.NoError(t, err)
	assert.Equal(t, models.QueueQueued, item.Status)
	assert.Equal(t, 1, item.Attempts)
	assert.True(t, item.ScheduledAt.After(time.Now().Add(time.Minute)))

	call, err := p.calls.Get(ctx, "call-1")
	require.NoError(t, err)
	assert.Equal(t, models.CallPending, call.Status)

	// The backoff makes the item ineligible right now.
	n, err = p.queueSvc.ProcessBatch(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// Force eligibility twice more; the third failure is terminal.
	for attempt := 2; attempt <= 3; attempt++ {
		_, err = p.db.Exec(`UPDATE queue_items SET scheduled_at = ? WHERE id = ?`,
			time.Now().Add(-time.Second).UTC(), itemID)
		require.NoError(t, err)

		n, err = p.queueSvc.ProcessBatch(ctx, 10)
		require.NoError(t, err)
		require.Equal(t, 1, n)
	}

	item, err = p.queue.Get(ctx, itemID)
	require.NoError(t, err)
	assert.Equal(t, models.QueueFailed, item.Status)
	assert.Equal(t, 3, item.Attempts)
	assert.Contains(t, item.LastError.String, "unavailable")

	call, err = p.calls.Get(ctx, "call-1")
	require.NoError(t, err)
	assert.Equal(t, models.CallFailed, call.Status)

	// A failed item stays failed; nothing is eligible anymore.
	n, err = p.queueSvc.ProcessBatch(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestE2E_ClaimIsExclusive(t *testing.T) {
	p := setupPipeline(t, &stubScorer{respond: passingResponse})
	ctx := context.Background()

	itemID, err := p.queueSvc.Enqueue(ctx, "call-1", 0)
	require.NoError(t, err)

	claimed, err := p.queue.Claim(ctx, itemID, time.Now())
	require.NoError(t, err)
	assert.True(t, claimed)

	// A second claimant loses: the conditional update matches zero rows.
	claimed, err = p.queue.Claim(ctx, itemID, time.Now())
	require.NoError(t, err)
	assert.False(t, claimed)
}

func TestE2E_CancelledSessionDiscardsResult(t *testing.T) {
	p := setupPipeline(t, &stubScorer{respond: passingResponse})
	ctx := context.Background()

	call, err := p.calls.Get(ctx, "call-1")
	require.NoError(t, err)
	session, err := p.sessions.EnsureForCall(ctx, call)
	require.NoError(t, err)

	itemID, err := p.queueSvc.Enqueue(ctx, "call-1", 0)
	require.NoError(t, err)

	_, err = p.sessions.Transition(ctx, session.ID, service.ActionCancel, "manager-7", "wrong recording")
	require.NoError(t, err)

	n, err := p.queueSvc.ProcessBatch(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	// The job is drained without grading output.
	item, err := p.queue.Get(ctx, itemID)
	require.NoError(t, err)
	assert.Equal(t, models.QueueCompleted, item.Status)

	_, err = p.handler.GetSessionReport(ctx, &pb.SessionRequest{SessionId: session.ID})
	require.Error(t, err)
}

func TestE2E_SnapshotShieldsSessionFromTemplateEdits(t *testing.T) {
	p := setupPipeline(t, &stubScorer{respond: passingResponse})
	ctx := context.Background()

	call, err := p.calls.Get(ctx, "call-1")
	require.NoError(t, err)
	session, err := p.sessions.EnsureForCall(ctx, call)
	require.NoError(t, err)

	_, err = p.queueSvc.Enqueue(ctx, "call-1", 0)
	require.NoError(t, err)
	n, err := p.queueSvc.ProcessBatch(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	before, err := p.sessions.ComputeComposite(ctx, session.ID)
	require.NoError(t, err)

	// Rewrite the live template with completely different weights.
	templateRepo := repository.NewTemplateRepository(p.db)
	require.NoError(t, templateRepo.UpdateCriteria(ctx, "tpl-1", []scoring.Criterion{
		{
			ID: "crit-scale", Name: "Opening", Type: scoring.TypeScale,
			Config: scoring.CriterionConfig{MinValue: 0, MaxValue: 10},
			Weight: 100, MaxScore: 10,
		},
	}, time.Now()))

	// Recomputation still uses the frozen snapshot.
	after, err := p.sessions.ComputeComposite(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
