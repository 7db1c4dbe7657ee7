package db

import (
	"context"
	"fmt"
	"time"

	"github.com/goldenhorse8610-droid/KuroTask/internal/db/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const taskColumns = `id, user_id, name, kind, category, memo, is_favorite,
	idle_monitor_enabled, is_archived, default_duration_sec,
	planned_date, planned_start_at, planned_end_at, created_at`

func scanTask(row pgx.Row) (*models.Task, error) {
	task := &models.Task{}
	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Name,
		&task.Kind,
		&task.Category,
		&task.Memo,
		&task.IsFavorite,
		&task.IdleMonitorEnabled,
		&task.IsArchived,
		&task.DefaultDurationSec,
		&task.PlannedDate,
		&task.PlannedStartAt,
		&task.PlannedEndAt,
		&task.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// CreateTask creates a new task in the database
func (db *DB) CreateTask(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (id, user_id, name, kind, category, memo, is_favorite,
			idle_monitor_enabled, is_archived, default_duration_sec,
			planned_date, planned_start_at, planned_end_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := db.Exec(ctx, query,
		task.ID.String(),
		task.UserID.String(),
		task.Name,
		task.Kind,
		task.Category,
		task.Memo,
		task.IsFavorite,
		task.IdleMonitorEnabled,
		task.IsArchived,
		task.DefaultDurationSec,
		task.PlannedDate,
		task.PlannedStartAt,
		task.PlannedEndAt,
		task.CreatedAt,
	)
	return err
}

// GetTask retrieves a task owned by the given user.
func (db *DB) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*models.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE id = $1 AND user_id = $2`

	task, err := scanTask(db.QueryRow(ctx, query, taskID.String(), userID.String()))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return task, err
}

// ListTasks retrieves the user's tasks, newest first. Archived tasks
// are excluded unless includeArchived is set.
func (db *DB) ListTasks(ctx context.Context, userID uuid.UUID, includeArchived bool) ([]*models.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1`
	if !includeArchived {
		query += ` AND is_archived = FALSE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.Query(ctx, query, userID.String())
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// UpdateTask persists the mutable task fields. Kind is immutable and
// deliberately absent from the SET list.
func (db *DB) UpdateTask(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks
		SET name = $1, category = $2, memo = $3, is_favorite = $4,
			idle_monitor_enabled = $5, is_archived = $6, default_duration_sec = $7,
			planned_date = $8, planned_start_at = $9, planned_end_at = $10
		WHERE id = $11 AND user_id = $12`

	_, err := db.Exec(ctx, query,
		task.Name,
		task.Category,
		task.Memo,
		task.IsFavorite,
		task.IdleMonitorEnabled,
		task.IsArchived,
		task.DefaultDurationSec,
		task.PlannedDate,
		task.PlannedStartAt,
		task.PlannedEndAt,
		task.ID.String(),
		task.UserID.String(),
	)
	return err
}

// FindTaskByName retrieves the first non-archived task whose name
// contains the query substring (quick /start resolution).
func (db *DB) FindTaskByName(ctx context.Context, userID uuid.UUID, nameQuery string) (*models.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1 AND is_archived = FALSE AND name ILIKE '%' || $2 || '%'
		ORDER BY created_at DESC
		LIMIT 1`

	task, err := scanTask(db.QueryRow(ctx, query, userID.String(), nameQuery))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return task, err
}

// PlannedTasksBetween retrieves non-archived tasks whose planned date
// falls inside [from, to].
func (db *DB) PlannedTasksBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*models.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1 AND is_archived = FALSE
		AND planned_date IS NOT NULL AND planned_date >= $2 AND planned_date <= $3
		ORDER BY planned_date ASC`

	rows, err := db.Query(ctx, query, userID.String(), from, to)
	if err != nil {
		return nil, fmt.Errorf("error listing planned tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}
