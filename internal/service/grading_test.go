package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/coachlens/grading-server/internal/repository/models"
	"github.com/coachlens/grading-server/internal/scorer"
	"github.com/coachlens/grading-server/internal/scoring"
	"github.com/coachlens/grading-server/internal/service/mocks"
)

func testSnapshot() scoring.TemplateSnapshot {
	return scoring.TemplateSnapshot{
		TemplateID:      "tpl-1",
		TemplateVersion: 3,
		Name:            "Discovery Call Rubric",
		ScoringMethod:   scoring.MethodWeighted,
		PassThreshold:   70,
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
	}
}

func testCall() models.Call {
	return models.Call{ID: "call-1", OrgID: "org-1", Transcript: "Agent: hello...", Status: models.CallProcessing}
}

func testSession() models.Session {
	return models.Session{ID: "sess-1", OrgID: "org-1", CallID: "call-1", Snapshot: testSnapshot(), Status: models.SessionInProgress}
}

func TestNewGradingService(t *testing.T) {
	t.Run("nil dependencies panic", func(t *testing.T) {
		assert.Panics(t, func() { NewGradingService(nil, &mocks.MockScorer{}, zap.NewNop()) })
		assert.Panics(t, func() { NewGradingService(&mocks.MockScoreRepository{}, nil, zap.NewNop()) })
	})

	t.Run("nil logger gets default", func(t *testing.T) {
		svc := NewGradingService(&mocks.MockScoreRepository{}, &mocks.MockScorer{}, nil)
		assert.NotNil(t, svc.logger)
	})
}

func TestEvaluate(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("successful evaluation", func(t *testing.T) {
		var savedScores []models.Score
		var savedReport models.Report
		scoreRepo := &mocks.MockScoreRepository{
			SaveEvaluationFunc: func(ctx context.Context, scores []models.Score, report models.Report) error {
				savedScores = scores
				savedReport = report
				return nil
			},
		}
		mockScorer := &mocks.MockScorer{
			ScoreFunc: func(ctx context.Context, req scorer.Request) (*scorer.Response, error) {
				assert.Equal(t, "call-1", req.CallID)
				assert.Len(t, req.Criteria, 2)
				return &scorer.Response{
					CriteriaScores: []scorer.CriterionScore{
						{CriterionID: "crit-scale", Value: 8.0, Feedback: "strong open"},
						{CriterionID: "crit-pf", Value: true},
					},
					Summary:   "Solid call.",
					Strengths: []string{"rapport"},
					Sentiment: "positive",
					Model:     "grader-large",
					Usage:     scorer.Usage{TotalTokens: 1234},
				}, nil
			},
		}

		svc := NewGradingService(scoreRepo, mockScorer, logger)
		result, err := svc.Evaluate(ctx, testCall(), testSession())

		require.NoError(t, err)
		assert.Equal(t, 88.0, result.Composite)
		assert.True(t, result.Pass)
		assert.False(t, result.AutoFailTriggered)
		assert.Empty(t, result.Unscored)

		require.Len(t, savedScores, 2)
		assert.Equal(t, 80.0, savedScores[0].NormalizedScore)
		assert.InDelta(t, 48.0, savedScores[0].WeightedScore, 0.0001)
		assert.Equal(t, "strong open", savedScores[0].Comment)
		assert.Equal(t, 100.0, savedScores[1].NormalizedScore)
		assert.InDelta(t, 40.0, savedScores[1].WeightedScore, 0.0001)

		assert.Equal(t, 88.0, savedReport.CompositeScore)
		assert.True(t, savedReport.PassStatus)
		assert.Equal(t, "grader-large", savedReport.ModelUsed)
		assert.Equal(t, int64(1234), savedReport.TokensUsed)
		assert.Equal(t, "Solid call.", savedReport.Summary)
	})

	t.Run("missing transcript is a precondition failure", func(t *testing.T) {
		svc := NewGradingService(&mocks.MockScoreRepository{}, &mocks.MockScorer{}, logger)

		call := testCall()
		call.Transcript = ""
		result, err := svc.Evaluate(ctx, call, testSession())

		assert.ErrorIs(t, err, ErrNoTranscript)
		assert.Nil(t, result)
	})

	t.Run("scorer failure writes nothing", func(t *testing.T) {
		persisted := false
		scoreRepo := &mocks.MockScoreRepository{
			SaveEvaluationFunc: func(ctx context.Context, scores []models.Score, report models.Report) error {
				persisted = true
				return nil
			},
		}
		mockScorer := &mocks.MockScorer{
			ScoreFunc: func(ctx context.Context, req scorer.Request) (*scorer.Response, error) {
				return nil, scorer.ErrUnavailable
			},
		}

		svc := NewGradingService(scoreRepo, mockScorer, logger)
		result, err := svc.Evaluate(ctx, testCall(), testSession())

		assert.ErrorIs(t, err, scorer.ErrUnavailable)
		assert.Nil(t, result)
		assert.False(t, persisted)
	})

	t.Run("unknown criterion IDs dropped, missing ones surfaced", func(t *testing.T) {
		var savedScores []models.Score
		scoreRepo := &mocks.MockScoreRepository{
			SaveEvaluationFunc: func(ctx context.Context, scores []models.Score, report models.Report) error {
				savedScores = scores
				return nil
			},
		}
		mockScorer := &mocks.MockScorer{
			ScoreFunc: func(ctx context.Context, req scorer.Request) (*scorer.Response, error) {
				return &scorer.Response{
					CriteriaScores: []scorer.CriterionScore{
						{CriterionID: "crit-scale", Value: 8.0},
						{CriterionID: "crit-hallucinated", Value: 10.0},
					},
				}, nil
			},
		}

		svc := NewGradingService(scoreRepo, mockScorer, logger)
		result, err := svc.Evaluate(ctx, testCall(), testSession())

		require.NoError(t, err)
		// The hallucinated ID never reaches storage.
		require.Len(t, savedScores, 1)
		assert.Equal(t, "crit-scale", savedScores[0].CriterionID)
		// The unanswered snapshot criterion is surfaced, not zero-filled.
		assert.Equal(t, []string{"crit-pf"}, result.Unscored)
	})

	t.Run("provider auto-fail flag fails the session", func(t *testing.T) {
		scoreRepo := &mocks.MockScoreRepository{
			SaveEvaluationFunc: func(ctx context.Context, scores []models.Score, report models.Report) error { return nil },
		}
		mockScorer := &mocks.MockScorer{
			ScoreFunc: func(ctx context.Context, req scorer.Request) (*scorer.Response, error) {
				return &scorer.Response{
					CriteriaScores: []scorer.CriterionScore{
						{CriterionID: "crit-scale", Value: 9.0, AutoFail: true},
						{CriterionID: "crit-pf", Value: true},
					},
				}, nil
			},
		}

		svc := NewGradingService(scoreRepo, mockScorer, logger)
		result, err := svc.Evaluate(ctx, testCall(), testSession())

		require.NoError(t, err)
		assert.True(t, result.AutoFailTriggered)
		assert.False(t, result.Pass)
		assert.Greater(t, result.Composite, 70.0)
	})

	t.Run("threshold auto-fail overrides high composite", func(t *testing.T) {
		session := testSession()
		session.Snapshot.Criteria[1].Config.AutoFail = true
		session.Snapshot.Criteria[1].Config.AutoFailThreshold = 50

		scoreRepo := &mocks.MockScoreRepository{
			SaveEvaluationFunc: func(ctx context.Context, scores []models.Score, report models.Report) error { return nil },
		}
		mockScorer := &mocks.MockScorer{
			ScoreFunc: func(ctx context.Context, req scorer.Request) (*scorer.Response, error) {
				return &scorer.Response{
					CriteriaScores: []scorer.CriterionScore{
						{CriterionID: "crit-scale", Value: 10.0},
						{CriterionID: "crit-pf", Value: false},
					},
				}, nil
			},
		}

		svc := NewGradingService(scoreRepo, mockScorer, logger)
		result, err := svc.Evaluate(ctx, testCall(), session)

		require.NoError(t, err)
		assert.Equal(t, 60.0, result.Composite)
		assert.True(t, result.AutoFailTriggered)
		assert.False(t, result.Pass)
	})

	t.Run("malformed value degrades a single criterion only", func(t *testing.T) {
		var savedScores []models.Score
		scoreRepo := &mocks.MockScoreRepository{
			SaveEvaluationFunc: func(ctx context.Context, scores []models.Score, report models.Report) error {
				savedScores = scores
				return nil
			},
		}
		mockScorer := &mocks.MockScorer{
			ScoreFunc: func(ctx context.Context, req scorer.Request) (*scorer.Response, error) {
				return &scorer.Response{
					CriteriaScores: []scorer.CriterionScore{
						{CriterionID: "crit-scale", Value: "eight"},
						{CriterionID: "crit-pf", Value: true},
					},
				}, nil
			},
		}

		svc := NewGradingService(scoreRepo, mockScorer, logger)
		result, err := svc.Evaluate(ctx, testCall(), testSession())

		require.NoError(t, err)
		require.Len(t, savedScores, 2)
		assert.True(t, savedScores[0].IsMalformed)
		assert.Equal(t, 0.0, savedScores[0].RawScore)
		assert.False(t, savedScores[1].IsMalformed)
		assert.Equal(t, 100.0, savedScores[1].NormalizedScore)
		// Composite: (0*0.6 + 100*0.4) / 100 * 100 = 40.
		assert.Equal(t, 40.0, result.Composite)
	})

	t.Run("N/A criteria excluded from composite", func(t *testing.T) {
		scoreRepo := &mocks.MockScoreRepository{
			SaveEvaluationFunc: func(ctx context.Context, scores []models.Score, report models.Report) error { return nil },
		}
		mockScorer := &mocks.MockScorer{
			ScoreFunc: func(ctx context.Context, req scorer.Request) (*scorer.Response, error) {
				return &scorer.Response{
					CriteriaScores: []scorer.CriterionScore{
						{CriterionID: "crit-scale", Value: 8.0},
						{CriterionID: "crit-pf", IsNA: true},
					},
				}, nil
			},
		}

		svc := NewGradingService(scoreRepo, mockScorer, logger)
		result, err := svc.Evaluate(ctx, testCall(), testSession())

		require.NoError(t, err)
		// Only the scale criterion counts: 48 weighted over 60 weight.
		assert.Equal(t, 80.0, result.Composite)
	})

	t.Run("persistence failure", func(t *testing.T) {
		scoreRepo := &mocks.MockScoreRepository{
			SaveEvaluationFunc: func(ctx context.Context, scores []models.Score, report models.Report) error {
				return errors.New("disk full")
			},
		}
		mockScorer := &mocks.MockScorer{
			ScoreFunc: func(ctx context.Context, req scorer.Request) (*scorer.Response, error) {
				return &scorer.Response{CriteriaScores: []scorer.CriterionScore{{CriterionID: "crit-scale", Value: 8.0}}}, nil
			},
		}

		svc := NewGradingService(scoreRepo, mockScorer, logger)
		result, err := svc.Evaluate(ctx, testCall(), testSession())

		assert.ErrorIs(t, err, ErrStorageFailure)
		assert.Contains(t, err.Error(), "disk full")
		assert.Nil(t, result)
	})
}
