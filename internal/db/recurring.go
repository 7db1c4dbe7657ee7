package db

import (
	"context"
	"fmt"

	"github.com/goldenhorse8610-droid/KuroTask/internal/db/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const ruleColumns = `id, user_id, task_id, rule_type, payload,
	reminder_enabled, reminder_start_time, created_at`

// UpsertRecurringRule creates or replaces the rule for a task. Task id
// is unique, so the upsert keys on it.
func (db *DB) UpsertRecurringRule(ctx context.Context, rule *models.RecurringRule) error {
	query := `
		INSERT INTO recurring_rules (id, user_id, task_id, rule_type, payload,
			reminder_enabled, reminder_start_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (task_id) DO UPDATE
		SET rule_type = EXCLUDED.rule_type,
			payload = EXCLUDED.payload,
			reminder_enabled = EXCLUDED.reminder_enabled,
			reminder_start_time = EXCLUDED.reminder_start_time`

	_, err := db.Exec(ctx, query,
		rule.ID.String(),
		rule.UserID.String(),
		rule.TaskID.String(),
		rule.RuleType,
		rule.Payload,
		rule.ReminderEnabled,
		rule.ReminderStartTime,
		rule.CreatedAt,
	)
	return err
}

// ListRecurringRules retrieves the user's rules.
func (db *DB) ListRecurringRules(ctx context.Context, userID uuid.UUID) ([]*models.RecurringRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM recurring_rules
		WHERE user_id = $1
		ORDER BY created_at ASC`

	rows, err := db.Query(ctx, query, userID.String())
	if err != nil {
		return nil, fmt.Errorf("error listing recurring rules: %w", err)
	}
	defer rows.Close()
	return collectRules(rows)
}

// DeleteRecurringRule removes a rule. Missing or cross-owner rules are
// a no-op.
func (db *DB) DeleteRecurringRule(ctx context.Context, userID, ruleID uuid.UUID) error {
	query := `
		DELETE FROM recurring_rules
		WHERE id = $1 AND user_id = $2`

	_, err := db.Exec(ctx, query, ruleID.String(), userID.String())
	return err
}

// AllRecurringRules retrieves every rule across users, for the
// scheduler pass.
func (db *DB) AllRecurringRules(ctx context.Context) ([]*models.RecurringRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM recurring_rules
		ORDER BY created_at ASC`

	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing recurring rules: %w", err)
	}
	defer rows.Close()
	return collectRules(rows)
}

func collectRules(rows pgx.Rows) ([]*models.RecurringRule, error) {
	var rules []*models.RecurringRule
	for rows.Next() {
		rule := &models.RecurringRule{}
		err := rows.Scan(
			&rule.ID,
			&rule.UserID,
			&rule.TaskID,
			&rule.RuleType,
			&rule.Payload,
			&rule.ReminderEnabled,
			&rule.ReminderStartTime,
			&rule.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}
