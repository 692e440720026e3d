package repository

import (
	"context"
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS calls (
	id TEXT PRIMARY KEY,
	org_id TEXT NOT NULL,
	transcript TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'pending',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS templates (
	id TEXT PRIMARY KEY,
	org_id TEXT NOT NULL,
	name TEXT NOT NULL,
	scoring_method TEXT NOT NULL DEFAULT 'weighted',
	pass_threshold REAL NOT NULL DEFAULT 70,
	status TEXT NOT NULL DEFAULT 'draft',
	is_default INTEGER NOT NULL DEFAULT 0,
	version INTEGER NOT NULL DEFAULT 1,
	criteria_json TEXT NOT NULL DEFAULT '[]',
	groups_json TEXT NOT NULL DEFAULT '[]',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	org_id TEXT NOT NULL,
	call_id TEXT NOT NULL,
	template_id TEXT NOT NULL,
	template_version INTEGER NOT NULL,
	snapshot_json TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	percentage_score REAL,
	pass_status INTEGER,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS scores (
	session_id TEXT NOT NULL,
	criterion_id TEXT NOT NULL,
	value_json TEXT NOT NULL DEFAULT 'null',
	is_na INTEGER NOT NULL DEFAULT 0,
	raw_score REAL NOT NULL DEFAULT 0,
	normalized_score REAL NOT NULL DEFAULT 0,
	weighted_score REAL NOT NULL DEFAULT 0,
	is_auto_fail_triggered INTEGER NOT NULL DEFAULT 0,
	is_malformed INTEGER NOT NULL DEFAULT 0,
	comment TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL,
	PRIMARY KEY (session_id, criterion_id)
);

CREATE TABLE IF NOT EXISTS reports (
	session_id TEXT PRIMARY KEY,
	composite_score REAL NOT NULL,
	pass_status INTEGER NOT NULL,
	summary TEXT NOT NULL DEFAULT '',
	strengths_json TEXT NOT NULL DEFAULT '[]',
	improvements_json TEXT NOT NULL DEFAULT '[]',
	objections_json TEXT NOT NULL DEFAULT '[]',
	sentiment TEXT NOT NULL DEFAULT '',
	talk_ratio TEXT NOT NULL DEFAULT '',
	competitors_json TEXT NOT NULL DEFAULT '[]',
	model_used TEXT NOT NULL DEFAULT '',
	processing_time_ms INTEGER NOT NULL DEFAULT 0,
	tokens_used INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS queue_items (
	id TEXT PRIMARY KEY,
	call_id TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'queued',
	priority INTEGER NOT NULL DEFAULT 0,
	scheduled_at TIMESTAMP NOT NULL,
	attempts INTEGER NOT NULL DEFAULT 0,
	max_attempts INTEGER NOT NULL DEFAULT 3,
	last_error TEXT,
	started_at TIMESTAMP,
	completed_at TIMESTAMP,
	created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_queue_eligible ON queue_items (status, scheduled_at, priority);

CREATE TABLE IF NOT EXISTS audit_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	actor TEXT NOT NULL,
	from_status TEXT NOT NULL,
	to_status TEXT NOT NULL,
	reason TEXT NOT NULL DEFAULT '',
	detail_json TEXT NOT NULL DEFAULT '{}',
	created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_audit_session ON audit_log (session_id, created_at);
`

// EnsureSchema creates the grading tables if they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
