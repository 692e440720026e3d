package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/coachlens/grading-server/internal/repository/models"
	"github.com/coachlens/grading-server/internal/scorer"
	"github.com/coachlens/grading-server/internal/scoring"
)

// GradingService orchestrates one evaluation: it builds the provider request
// from the session's frozen template snapshot, maps the response back onto
// snapshot criteria, runs the scoring engine and persists a complete result
// set. It never retries provider failures; that is the queue's job.
type GradingService struct {
	scores ScoreRepository
	scorer Scorer
	logger *zap.Logger
}

func NewGradingService(scores ScoreRepository, sc Scorer, logger *zap.Logger) *GradingService {
	if scores == nil {
		panic("scores repository must not be nil")
	}
	if sc == nil {
		panic("scorer must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	return &GradingService{
		scores: scores,
		scorer: sc,
		logger: logger.Named("grading"),
	}
}

// Evaluate runs the full orchestration for one call/session pair. On any
// error no state is written; a retry re-runs the whole evaluation and
// overwrites prior scores rather than appending.
func (s *GradingService) Evaluate(ctx context.Context, call models.Call, session models.Session) (*EvaluationResult, error) {
	if call.Transcript == "" {
		return nil, fmt.Errorf("%w: call %s", ErrNoTranscript, call.ID)
	}

	snapshot := session.Snapshot
	req := scorer.Request{
		CallID:        call.ID,
		Transcript:    call.Transcript,
		TemplateName:  snapshot.Name,
		ScoringMethod: snapshot.ScoringMethod,
		Criteria:      make([]scorer.CriterionPrompt, 0, len(snapshot.Criteria)),
	}
	for _, c := range snapshot.Criteria {
		req.Criteria = append(req.Criteria, scorer.CriterionPrompt{
			ID:       c.ID,
			Name:     c.Name,
			Type:     c.Type,
			Config:   c.Config,
			Weight:   c.Weight,
			MaxScore: c.MaxScore,
			Group:    c.GroupID,
		})
	}

	started := time.Now()
	resp, err := s.scorer.Score(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("score call %s: %w", call.ID, err)
	}
	elapsed := time.Since(started)

	now := time.Now()
	answered := make(map[string]bool, len(resp.CriteriaScores))
	scoreRows := make([]models.Score, 0, len(resp.CriteriaScores))
	engineScores := make([]scoring.CriterionScore, 0, len(resp.CriteriaScores))

	for _, cs := range resp.CriteriaScores {
		criterion, ok := snapshot.CriterionByID(cs.CriterionID)
		if !ok {
			// Unknown IDs are dropped silently; providers hallucinate.
			s.logger.Debug("dropping unknown criterion from provider response",
				zap.String("session_id", session.ID),
				zap.String("criterion_id", cs.CriterionID))
			continue
		}
		answered[cs.CriterionID] = true

		computed := scoring.ScoreCriterion(criterion, cs.Value, cs.IsNA)
		// Provider-asserted auto-fail and threshold comparison are
		// independent triggers; either one fails the session.
		if cs.AutoFail && !cs.IsNA {
			computed.AutoFailTriggered = true
		}
		engineScores = append(engineScores, computed)

		scoreRows = append(scoreRows, models.Score{
			SessionID:           session.ID,
			CriterionID:         criterion.ID,
			Value:               cs.Value,
			IsNA:                cs.IsNA,
			RawScore:            computed.Raw,
			NormalizedScore:     computed.Normalized,
			WeightedScore:       computed.Weighted,
			IsAutoFailTriggered: computed.AutoFailTriggered,
			IsMalformed:         computed.Malformed,
			Comment:             cs.Feedback,
			CreatedAt:           now,
			UpdatedAt:           now,
		})
	}

	var unscored []string
	for _, c := range snapshot.Criteria {
		if !answered[c.ID] {
			unscored = append(unscored, c.ID)
		}
	}

	composite := scoring.ComputeComposite(engineScores, snapshot.Criteria)
	autoFail := scoring.AnyAutoFail(engineScores)
	pass := scoring.PassStatus(composite, snapshot.PassThreshold, autoFail)

	report := models.Report{
		SessionID:          session.ID,
		CompositeScore:     composite,
		PassStatus:         pass,
		Summary:            resp.Summary,
		Strengths:          resp.Strengths,
		Improvements:       resp.Improvements,
		Objections:         resp.Objections,
		Sentiment:          resp.Sentiment,
		TalkRatio:          resp.TalkRatio,
		CompetitorMentions: resp.CompetitorMentions,
		ModelUsed:          resp.Model,
		ProcessingTimeMs:   elapsed.Milliseconds(),
		TokensUsed:         resp.Usage.TotalTokens,
		CreatedAt:          now,
	}

	if err := s.scores.SaveEvaluation(ctx, scoreRows, report); err != nil {
		return nil, fmt.Errorf("%w: persist evaluation: %v", ErrStorageFailure, err)
	}

	s.logger.Info("evaluation persisted",
		zap.String("session_id", session.ID),
		zap.String("call_id", call.ID),
		zap.Float64("composite", composite),
		zap.Bool("pass", pass),
		zap.Bool("auto_fail", autoFail),
		zap.Int("scored", len(scoreRows)),
		zap.Int("unscored", len(unscored)),
		zap.Duration("provider_latency", elapsed))

	return &EvaluationResult{
		SessionID:         session.ID,
		Scores:            scoreRows,
		Report:            report,
		Composite:         composite,
		Pass:              pass,
		AutoFailTriggered: autoFail,
		Unscored:          unscored,
	}, nil
}
