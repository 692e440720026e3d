package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/coachlens/grading-server/internal/repository/models"
	"github.com/coachlens/grading-server/internal/scoring"
)

type TemplateRepository struct {
	db *sql.DB
}

func NewTemplateRepository(db *sql.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

const templateColumns = `id, org_id, name, scoring_method, pass_threshold, status, is_default, version, criteria_json, groups_json, created_at, updated_at`

func (r *TemplateRepository) Get(ctx context.Context, id string) (models.Template, error) {
	query := fmt.Sprintf(`SELECT %s FROM templates WHERE id = ?`, templateColumns)
	return scanTemplate(r.db.QueryRowContext(ctx, query, id))
}

// GetDefaultActive returns the organization's default active template.
// At most one template per org carries the default flag.
func (r *TemplateRepository) GetDefaultActive(ctx context.Context, orgID string) (models.Template, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM templates
		WHERE org_id = ? AND status = ? AND is_default = 1
	`, templateColumns)
	return scanTemplate(r.db.QueryRowContext(ctx, query, orgID, models.TemplateActive))
}

func (r *TemplateRepository) Create(ctx context.Context, tpl models.Template) error {
	criteriaJSON, err := json.Marshal(tpl.Criteria)
	if err != nil {
		return fmt.Errorf("marshal criteria: %w", err)
	}
	groupsJSON, err := json.Marshal(tpl.Groups)
	if err != nil {
		return fmt.Errorf("marshal groups: %w", err)
	}

	const query = `
		INSERT INTO templates (id, org_id, name, scoring_method, pass_threshold, status, is_default, version, criteria_json, groups_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		tpl.ID, tpl.OrgID, tpl.Name, tpl.ScoringMethod, tpl.PassThreshold,
		tpl.Status, tpl.IsDefault, tpl.Version,
		string(criteriaJSON), string(groupsJSON),
		tpl.CreatedAt.UTC(), tpl.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert template: %w", err)
	}
	return nil
}

// UpdateCriteria replaces the live template's criteria and bumps its version.
// Frozen session snapshots are unaffected.
func (r *TemplateRepository) UpdateCriteria(ctx context.Context, id string, criteria []scoring.Criterion, now time.Time) error {
	criteriaJSON, err := json.Marshal(criteria)
	if err != nil {
		return fmt.Errorf("marshal criteria: %w", err)
	}
	const query = `
		UPDATE templates
		SET criteria_json = ?, version = version + 1, updated_at = ?
		WHERE id = ?
	`
	if _, err := r.db.ExecContext(ctx, query, string(criteriaJSON), now.UTC(), id); err != nil {
		return fmt.Errorf("update template criteria: %w", err)
	}
	return nil
}

func scanTemplate(row rowScanner) (models.Template, error) {
	var tpl models.Template
	var criteriaJSON, groupsJSON string
	err := row.Scan(
		&tpl.ID, &tpl.OrgID, &tpl.Name, &tpl.ScoringMethod, &tpl.PassThreshold,
		&tpl.Status, &tpl.IsDefault, &tpl.Version,
		&criteriaJSON, &groupsJSON, &tpl.CreatedAt, &tpl.UpdatedAt,
	)
	if err != nil {
		return models.Template{}, err
	}
	if err := json.Unmarshal([]byte(criteriaJSON), &tpl.Criteria); err != nil {
		return models.Template{}, fmt.Errorf("decode criteria: %w", err)
	}
	if err := json.Unmarshal([]byte(groupsJSON), &tpl.Groups); err != nil {
		return models.Template{}, fmt.Errorf("decode groups: %w", err)
	}
	return tpl, nil
}
