package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/coachlens/grading-server/internal/repository/models"
)

type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, s models.Session) error {
	snapshotJSON, err := json.Marshal(s.Snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	const query = `
		INSERT INTO sessions (id, org_id, call_id, template_id, template_version, snapshot_json, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		s.ID, s.OrgID, s.CallID, s.TemplateID, s.TemplateVersion,
		string(snapshotJSON), s.Status, s.CreatedAt.UTC(), s.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, id string) (models.Session, error) {
	const query = `
		SELECT id, org_id, call_id, template_id, template_version, snapshot_json, status, percentage_score, pass_status, created_at, updated_at
		FROM sessions WHERE id = ?
	`
	var s models.Session
	var snapshotJSON string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.OrgID, &s.CallID, &s.TemplateID, &s.TemplateVersion,
		&snapshotJSON, &s.Status, &s.PercentageScore, &s.PassStatus,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return models.Session{}, err
	}
	if err := json.Unmarshal([]byte(snapshotJSON), &s.Snapshot); err != nil {
		return models.Session{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}

// GetByCall returns the most recent session created for a call.
func (r *SessionRepository) GetByCall(ctx context.Context, callID string) (models.Session, error) {
	const query = `SELECT id FROM sessions WHERE call_id = ? ORDER BY created_at DESC LIMIT 1`
	var id string
	if err := r.db.QueryRowContext(ctx, query, callID).Scan(&id); err != nil {
		return models.Session{}, err
	}
	return r.Get(ctx, id)
}

// TransitionStatus performs an optimistic conditional status update. It
// returns false when the session was not in the expected prior status.
func (r *SessionRepository) TransitionStatus(ctx context.Context, id string, from, to models.SessionStatus, now time.Time) (bool, error) {
	const query = `
		UPDATE sessions SET status = ?, updated_at = ?
		WHERE id = ? AND status = ?
	`
	res, err := r.db.ExecContext(ctx, query, to, now.UTC(), id, from)
	if err != nil {
		return false, fmt.Errorf("transition session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("transition rows affected: %w", err)
	}
	return n == 1, nil
}

// SetResult records the computed composite and pass status.
func (r *SessionRepository) SetResult(ctx context.Context, id string, percentage float64, pass bool, now time.Time) error {
	const query = `
		UPDATE sessions SET percentage_score = ?, pass_status = ?, updated_at = ?
		WHERE id = ?
	`
	if _, err := r.db.ExecContext(ctx, query, percentage, pass, now.UTC(), id); err != nil {
		return fmt.Errorf("set session result: %w", err)
	}
	return nil
}

// AppendAudit writes one immutable audit trail entry. Audit rows are only
// ever inserted, never updated or deleted.
func (r *SessionRepository) AppendAudit(ctx context.Context, e models.AuditEntry) error {
	const query = `
		INSERT INTO audit_log (session_id, actor, from_status, to_status, reason, detail_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	detail := e.Detail
	if detail == "" {
		detail = "{}"
	}
	_, err := r.db.ExecContext(ctx, query,
		e.SessionID, e.Actor, e.FromStatus, e.ToStatus, e.Reason, detail, e.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

// ListAudit returns the session's audit trail in insertion order.
func (r *SessionRepository) ListAudit(ctx context.Context, sessionID string) ([]models.AuditEntry, error) {
	const query = `
		SELECT id, session_id, actor, from_status, to_status, reason, detail_json, created_at
		FROM audit_log WHERE session_id = ? ORDER BY id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query audit trail: %w", err)
	}
	defer rows.Close()

	var entries []models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Actor, &e.FromStatus, &e.ToStatus, &e.Reason, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit trail: %w", err)
	}
	return entries, nil
}
