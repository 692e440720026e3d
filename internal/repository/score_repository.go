package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/coachlens/grading-server/internal/repository/models"
)

// ScoreRepository persists per-criterion scores and the session report.
// A full evaluation result is written in a single transaction so a failed
// attempt never leaves partial state behind.
type ScoreRepository struct {
	db *sql.DB
}

func NewScoreRepository(db *sql.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// SaveEvaluation upserts one Score row per criterion plus the report,
// all-or-nothing. Retries overwrite prior rows rather than appending.
func (r *ScoreRepository) SaveEvaluation(ctx context.Context, scores []models.Score, report models.Report) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin evaluation tx: %w", err)
	}
	defer tx.Rollback()

	const scoreQuery = `
		INSERT INTO scores (session_id, criterion_id, value_json, is_na, raw_score, normalized_score, weighted_score, is_auto_fail_triggered, is_malformed, comment, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (session_id, criterion_id) DO UPDATE SET
			value_json = excluded.value_json,
			is_na = excluded.is_na,
			raw_score = excluded.raw_score,
			normalized_score = excluded.normalized_score,
			weighted_score = excluded.weighted_score,
			is_auto_fail_triggered = excluded.is_auto_fail_triggered,
			is_malformed = excluded.is_malformed,
			comment = excluded.comment,
			updated_at = excluded.updated_at
	`
	for _, s := range scores {
		valueJSON, err := json.Marshal(s.Value)
		if err != nil {
			return fmt.Errorf("marshal score value: %w", err)
		}
		_, err = tx.ExecContext(ctx, scoreQuery,
			s.SessionID, s.CriterionID, string(valueJSON), s.IsNA,
			s.RawScore, s.NormalizedScore, s.WeightedScore,
			s.IsAutoFailTriggered, s.IsMalformed, s.Comment,
			s.CreatedAt.UTC(), s.UpdatedAt.UTC())
		if err != nil {
			return fmt.Errorf("upsert score %s: %w", s.CriterionID, err)
		}
	}

	strengths, _ := json.Marshal(report.Strengths)
	improvements, _ := json.Marshal(report.Improvements)
	objections, _ := json.Marshal(report.Objections)
	competitors, _ := json.Marshal(report.CompetitorMentions)

	const reportQuery = `
		INSERT INTO reports (session_id, composite_score, pass_status, summary, strengths_json, improvements_json, objections_json, sentiment, talk_ratio, competitors_json, model_used, processing_time_ms, tokens_used, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (session_id) DO UPDATE SET
			composite_score = excluded.composite_score,
			pass_status = excluded.pass_status,
			summary = excluded.summary,
			strengths_json = excluded.strengths_json,
			improvements_json = excluded.improvements_json,
			objections_json = excluded.objections_json,
			sentiment = excluded.sentiment,
			talk_ratio = excluded.talk_ratio,
			competitors_json = excluded.competitors_json,
			model_used = excluded.model_used,
			processing_time_ms = excluded.processing_time_ms,
			tokens_used = excluded.tokens_used
	`
	_, err = tx.ExecContext(ctx, reportQuery,
		report.SessionID, report.CompositeScore, report.PassStatus, report.Summary,
		string(strengths), string(improvements), string(objections),
		report.Sentiment, report.TalkRatio, string(competitors),
		report.ModelUsed, report.ProcessingTimeMs, report.TokensUsed,
		report.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("upsert report: %w", err)
	}

	const sessionQuery = `
		UPDATE sessions SET percentage_score = ?, pass_status = ?, updated_at = ?
		WHERE id = ?
	`
	_, err = tx.ExecContext(ctx, sessionQuery,
		report.CompositeScore, report.PassStatus, report.CreatedAt.UTC(), report.SessionID)
	if err != nil {
		return fmt.Errorf("update session result: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit evaluation tx: %w", err)
	}
	return nil
}

// GetBySession returns all persisted scores for a session.
func (r *ScoreRepository) GetBySession(ctx context.Context, sessionID string) ([]models.Score, error) {
	const query = `
		SELECT session_id, criterion_id, value_json, is_na, raw_score, normalized_score, weighted_score, is_auto_fail_triggered, is_malformed, comment, created_at, updated_at
		FROM scores WHERE session_id = ? ORDER BY criterion_id
	`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var scores []models.Score
	for rows.Next() {
		var s models.Score
		var valueJSON string
		if err := rows.Scan(&s.SessionID, &s.CriterionID, &valueJSON, &s.IsNA,
			&s.RawScore, &s.NormalizedScore, &s.WeightedScore,
			&s.IsAutoFailTriggered, &s.IsMalformed, &s.Comment,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		if err := json.Unmarshal([]byte(valueJSON), &s.Value); err != nil {
			return nil, fmt.Errorf("decode score value: %w", err)
		}
		scores = append(scores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scores: %w", err)
	}
	return scores, nil
}

// GetReport returns the session's summary report.
func (r *ScoreRepository) GetReport(ctx context.Context, sessionID string) (models.Report, error) {
	const query = `
		SELECT session_id, composite_score, pass_status, summary, strengths_json, improvements_json, objections_json, sentiment, talk_ratio, competitors_json, model_used, processing_time_ms, tokens_used, created_at
		FROM reports WHERE session_id = ?
	`
	var rep models.Report
	var strengths, improvements, objections, competitors string
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(
		&rep.SessionID, &rep.CompositeScore, &rep.PassStatus, &rep.Summary,
		&strengths, &improvements, &objections,
		&rep.Sentiment, &rep.TalkRatio, &competitors,
		&rep.ModelUsed, &rep.ProcessingTimeMs, &rep.TokensUsed, &rep.CreatedAt)
	if err != nil {
		return models.Report{}, err
	}
	for _, pair := range []struct {
		raw  string
		dest *[]string
	}{
		{strengths, &rep.Strengths},
		{improvements, &rep.Improvements},
		{objections, &rep.Objections},
		{competitors, &rep.CompetitorMentions},
	} {
		if err := json.Unmarshal([]byte(pair.raw), pair.dest); err != nil {
			return models.Report{}, fmt.Errorf("decode report field: %w", err)
		}
	}
	return rep, nil
}
