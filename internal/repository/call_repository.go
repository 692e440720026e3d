package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/coachlens/grading-server/internal/repository/models"
)

type CallRepository struct {
	db *sql.DB
}

func NewCallRepository(db *sql.DB) *CallRepository {
	return &CallRepository{db: db}
}

func (r *CallRepository) Create(ctx context.Context, call models.Call) error {
	const query = `
		INSERT INTO calls (id, org_id, transcript, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		call.ID, call.OrgID, call.Transcript, call.Status,
		call.CreatedAt.UTC(), call.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert call: %w", err)
	}
	return nil
}

func (r *CallRepository) Get(ctx context.Context, id string) (models.Call, error) {
	const query = `
		SELECT id, org_id, transcript, status, created_at, updated_at
		FROM calls WHERE id = ?
	`
	var c models.Call
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.OrgID, &c.Transcript, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return models.Call{}, err
	}
	return c, nil
}

// SetStatus updates the call's visible processing state. The call row mirrors
// queue progress; it is not the authority on claim exclusivity.
func (r *CallRepository) SetStatus(ctx context.Context, id string, status models.CallStatus, now time.Time) error {
	const query = `UPDATE calls SET status = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, status, now.UTC(), id)
	if err != nil {
		return fmt.Errorf("update call status: %w", err)
	}
	return nil
}
