package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/coachlens/grading-server/internal/repository/models"
)

// QueueRepository persists grading queue items. All state transitions are
// conditional updates keyed on the current status so concurrent pollers can
// race safely.
type QueueRepository struct {
	db *sql.DB
}

func NewQueueRepository(db *sql.DB) *QueueRepository {
	return &QueueRepository{db: db}
}

const queueItemColumns = `id, call_id, status, priority, scheduled_at, attempts, max_attempts, last_error, started_at, completed_at, created_at`

// Enqueue inserts a new queued item for the call unless the call already has
// one queued or processing. The existence check and the insert run as a
// single statement so concurrent enqueuers cannot both succeed. Returns false
// when an active item blocked the insert.
func (r *QueueRepository) Enqueue(ctx context.Context, item models.QueueItem) (bool, error) {
	const query = `
		INSERT INTO queue_items (id, call_id, status, priority, scheduled_at, attempts, max_attempts, created_at)
		SELECT ?, ?, ?, ?, ?, ?, ?, ?
		WHERE NOT EXISTS (
			SELECT 1 FROM queue_items WHERE call_id = ? AND status IN (?, ?)
		)
	`
	res, err := r.db.ExecContext(ctx, query,
		item.ID, item.CallID, models.QueueQueued, item.Priority,
		item.ScheduledAt.UTC(), item.Attempts, item.MaxAttempts, item.CreatedAt.UTC(),
		item.CallID, models.QueueQueued, models.QueueProcessing)
	if err != nil {
		return false, fmt.Errorf("insert queue item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert rows affected: %w", err)
	}
	return n == 1, nil
}

// Get returns one queue item by ID.
func (r *QueueRepository) Get(ctx context.Context, id string) (models.QueueItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM queue_items WHERE id = ?`, queueItemColumns)
	return scanQueueItem(r.db.QueryRowContext(ctx, query, id))
}

// GetByCall returns the most recent queue item created for a call.
func (r *QueueRepository) GetByCall(ctx context.Context, callID string) (models.QueueItem, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM queue_items WHERE call_id = ?
		ORDER BY created_at DESC LIMIT 1
	`, queueItemColumns)
	return scanQueueItem(r.db.QueryRowContext(ctx, query, callID))
}

// GetActiveByCall returns the call's queued or processing item, if any.
func (r *QueueRepository) GetActiveByCall(ctx context.Context, callID string) (models.QueueItem, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM queue_items
		WHERE call_id = ? AND status IN (?, ?)
		ORDER BY created_at DESC LIMIT 1
	`, queueItemColumns)
	return scanQueueItem(r.db.QueryRowContext(ctx, query, callID, models.QueueQueued, models.QueueProcessing))
}

// SelectEligible returns up to limit queued items whose scheduled time has
// passed, ordered by priority descending then scheduled time ascending.
func (r *QueueRepository) SelectEligible(ctx context.Context, now time.Time, limit int) ([]models.QueueItem, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM queue_items
		WHERE status = ? AND scheduled_at <= ?
		ORDER BY priority DESC, scheduled_at ASC
		LIMIT ?
	`, queueItemColumns)

	rows, err := r.db.QueryContext(ctx, query, models.QueueQueued, now.UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("query eligible queue items: %w", err)
	}
	defer rows.Close()

	var items []models.QueueItem
	for rows.Next() {
		item, err := scanQueueItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan queue item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate queue items: %w", err)
	}
	return items, nil
}

// Claim atomically moves a queued item to processing. It returns false when
// another claimant won the race or the item is no longer queued.
func (r *QueueRepository) Claim(ctx context.Context, id string, now time.Time) (bool, error) {
	const query = `
		UPDATE queue_items
		SET status = ?, started_at = ?
		WHERE id = ? AND status = ?
	`
	res, err := r.db.ExecContext(ctx, query, models.QueueProcessing, now.UTC(), id, models.QueueQueued)
	if err != nil {
		return false, fmt.Errorf("claim queue item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("claim rows affected: %w", err)
	}
	return n == 1, nil
}

// MarkCompleted terminates a processing item as succeeded.
func (r *QueueRepository) MarkCompleted(ctx context.Context, id string, now time.Time) error {
	const query = `
		UPDATE queue_items
		SET status = ?, completed_at = ?
		WHERE id = ? AND status = ?
	`
	_, err := r.db.ExecContext(ctx, query, models.QueueCompleted, now.UTC(), id, models.QueueProcessing)
	if err != nil {
		return fmt.Errorf("complete queue item: %w", err)
	}
	return nil
}

// Reschedule returns a processing item to the queue with an incremented
// attempt counter and a future scheduled time.
func (r *QueueRepository) Reschedule(ctx context.Context, id string, attempts int, scheduledAt time.Time, lastError string) error {
	const query = `
		UPDATE queue_items
		SET status = ?, attempts = ?, scheduled_at = ?, last_error = ?, started_at = NULL
		WHERE id = ? AND status = ?
	`
	_, err := r.db.ExecContext(ctx, query,
		models.QueueQueued, attempts, scheduledAt.UTC(), lastError, id, models.QueueProcessing)
	if err != nil {
		return fmt.Errorf("reschedule queue item: %w", err)
	}
	return nil
}

// MarkFailed terminates a processing item after its attempts are exhausted.
// The last error is retained for diagnosis.
func (r *QueueRepository) MarkFailed(ctx context.Context, id string, attempts int, lastError string, now time.Time) error {
	const query = `
		UPDATE queue_items
		SET status = ?, attempts = ?, last_error = ?, completed_at = ?
		WHERE id = ? AND status = ?
	`
	_, err := r.db.ExecContext(ctx, query,
		models.QueueFailed, attempts, lastError, now.UTC(), id, models.QueueProcessing)
	if err != nil {
		return fmt.Errorf("fail queue item: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQueueItem(row rowScanner) (models.QueueItem, error) {
	var item models.QueueItem
	err := row.Scan(
		&item.ID, &item.CallID, &item.Status, &item.Priority, &item.ScheduledAt,
		&item.Attempts, &item.MaxAttempts, &item.LastError,
		&item.StartedAt, &item.CompletedAt, &item.CreatedAt,
	)
	if err != nil {
		return models.QueueItem{}, err
	}
	return item, nil
}
