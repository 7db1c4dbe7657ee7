package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goldenhorse8610-droid/KuroTask/internal/db/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const sessionColumns = `id, user_id, task_id, mode, start_at, end_at,
	planned_duration_sec, duration_sec, start_memo, end_memo, end_reason`

func scanSession(row pgx.Row) (*models.TimerSession, error) {
	s := &models.TimerSession{}
	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.TaskID,
		&s.Mode,
		&s.StartAt,
		&s.EndAt,
		&s.PlannedDurationSec,
		&s.DurationSec,
		&s.StartMemo,
		&s.EndMemo,
		&s.EndReason,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func scanSessionWithTask(rows pgx.Rows) (*models.SessionWithTask, error) {
	st := &models.SessionWithTask{
		Session: &models.TimerSession{},
		Task:    &models.Task{},
	}
	s, t := st.Session, st.Task
	err := rows.Scan(
		&s.ID, &s.UserID, &s.TaskID, &s.Mode, &s.StartAt, &s.EndAt,
		&s.PlannedDurationSec, &s.DurationSec, &s.StartMemo, &s.EndMemo, &s.EndReason,
		&t.ID, &t.UserID, &t.Name, &t.Kind, &t.Category, &t.Memo, &t.IsFavorite,
		&t.IdleMonitorEnabled, &t.IsArchived, &t.DefaultDurationSec,
		&t.PlannedDate, &t.PlannedStartAt, &t.PlannedEndAt, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return st, nil
}

const sessionJoinColumns = `
	s.id, s.user_id, s.task_id, s.mode, s.start_at, s.end_at,
	s.planned_duration_sec, s.duration_sec, s.start_memo, s.end_memo, s.end_reason,
	t.id, t.user_id, t.name, t.kind, t.category, t.memo, t.is_favorite,
	t.idle_monitor_enabled, t.is_archived, t.default_duration_sec,
	t.planned_date, t.planned_start_at, t.planned_end_at, t.created_at`

// CreateSession inserts a new session row. Inserting a second running
// session for the same task trips the partial unique index and is
// reported as ErrDuplicateRunning.
func (db *DB) CreateSession(ctx context.Context, session *models.TimerSession) error {
	query := `
		INSERT INTO timer_sessions (id, user_id, task_id, mode, start_at, end_at,
			planned_duration_sec, duration_sec, start_memo, end_memo, end_reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := db.Exec(ctx, query,
		session.ID.String(),
		session.UserID.String(),
		session.TaskID.String(),
		session.Mode,
		session.StartAt,
		session.EndAt,
		session.PlannedDurationSec,
		session.DurationSec,
		session.StartMemo,
		session.EndMemo,
		session.EndReason,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateRunning
	}
	return err
}

// GetSession retrieves a session owned by the given user.
func (db *DB) GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*models.TimerSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM timer_sessions
		WHERE id = $1 AND user_id = $2`

	s, err := scanSession(db.QueryRow(ctx, query, sessionID.String(), userID.String()))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return s, err
}

// UpdateSession persists the mutable session fields.
func (db *DB) UpdateSession(ctx context.Context, session *models.TimerSession) error {
	query := `
		UPDATE timer_sessions
		SET start_at = $1, end_at = $2, duration_sec = $3,
			start_memo = $4, end_memo = $5, end_reason = $6
		WHERE id = $7 AND user_id = $8`

	_, err := db.Exec(ctx, query,
		session.StartAt,
		session.EndAt,
		session.DurationSec,
		session.StartMemo,
		session.EndMemo,
		session.EndReason,
		session.ID.String(),
		session.UserID.String(),
	)
	return err
}

// DeleteSession removes a session. Deleting a missing or cross-owner
// session is a no-op.
func (db *DB) DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) error {
	query := `
		DELETE FROM timer_sessions
		WHERE id = $1 AND user_id = $2`

	_, err := db.Exec(ctx, query, sessionID.String(), userID.String())
	return err
}

// RunningSessionForTask gets the running session for a task if one exists.
func (db *DB) RunningSessionForTask(ctx context.Context, userID, taskID uuid.UUID) (*models.TimerSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM timer_sessions
		WHERE user_id = $1 AND task_id = $2 AND end_at IS NULL
		LIMIT 1`

	s, err := scanSession(db.QueryRow(ctx, query, userID.String(), taskID.String()))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return s, err
}

// RunningSessions retrieves all running sessions with their tasks,
// newest first.
func (db *DB) RunningSessions(ctx context.Context, userID uuid.UUID) ([]*models.SessionWithTask, error) {
	query := `
		SELECT ` + sessionJoinColumns + `
		FROM timer_sessions s
		JOIN tasks t ON s.task_id = t.id
		WHERE s.user_id = $1 AND s.end_at IS NULL
		ORDER BY s.start_at DESC`

	rows, err := db.Query(ctx, query, userID.String())
	if err != nil {
		return nil, fmt.Errorf("error listing running sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.SessionWithTask
	for rows.Next() {
		st, err := scanSessionWithTask(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, st)
	}
	return sessions, rows.Err()
}

// LatestRunningSession gets the most recently started running session.
func (db *DB) LatestRunningSession(ctx context.Context, userID uuid.UUID) (*models.TimerSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM timer_sessions
		WHERE user_id = $1 AND end_at IS NULL
		ORDER BY start_at DESC
		LIMIT 1`

	s, err := scanSession(db.QueryRow(ctx, query, userID.String()))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return s, err
}

// SessionHistory retrieves completed sessions with their tasks, start
// descending, plus the total completed count for pagination.
func (db *DB) SessionHistory(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.SessionWithTask, int, error) {
	query := `
		SELECT ` + sessionJoinColumns + `
		FROM timer_sessions s
		JOIN tasks t ON s.task_id = t.id
		WHERE s.user_id = $1 AND s.end_at IS NOT NULL
		ORDER BY s.start_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := db.Query(ctx, query, userID.String(), limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing session history: %w", err)
	}
	defer rows.Close()

	var sessions []*models.SessionWithTask
	for rows.Next() {
		st, err := scanSessionWithTask(rows)
		if err != nil {
			return nil, 0, err
		}
		sessions = append(sessions, st)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	countQuery := `
		SELECT COUNT(*)
		FROM timer_sessions
		WHERE user_id = $1 AND end_at IS NOT NULL`
	if err := db.QueryRow(ctx, countQuery, userID.String()).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting sessions: %w", err)
	}

	return sessions, total, nil
}

// AllSessions retrieves every session for a user, start descending
// (sync export).
func (db *DB) AllSessions(ctx context.Context, userID uuid.UUID) ([]*models.TimerSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM timer_sessions
		WHERE user_id = $1
		ORDER BY start_at DESC`

	rows, err := db.Query(ctx, query, userID.String())
	if err != nil {
		return nil, fmt.Errorf("error listing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.TimerSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// CompletedSessionsSince retrieves completed sessions started at or
// after the given instant, with their tasks.
func (db *DB) CompletedSessionsSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]*models.SessionWithTask, error) {
	query := `
		SELECT ` + sessionJoinColumns + `
		FROM timer_sessions s
		JOIN tasks t ON s.task_id = t.id
		WHERE s.user_id = $1 AND s.end_at IS NOT NULL AND s.start_at >= $2
		ORDER BY s.start_at ASC`

	rows, err := db.Query(ctx, query, userID.String(), since)
	if err != nil {
		return nil, fmt.Errorf("error listing completed sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.SessionWithTask
	for rows.Next() {
		st, err := scanSessionWithTask(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, st)
	}
	return sessions, rows.Err()
}

// CompletedSessionsBetween retrieves completed sessions started inside
// [from, to], with their tasks, oldest first.
func (db *DB) CompletedSessionsBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*models.SessionWithTask, error) {
	query := `
		SELECT ` + sessionJoinColumns + `
		FROM timer_sessions s
		JOIN tasks t ON s.task_id = t.id
		WHERE s.user_id = $1 AND s.end_at IS NOT NULL
		AND s.start_at >= $2 AND s.start_at <= $3
		ORDER BY s.start_at ASC`

	rows, err := db.Query(ctx, query, userID.String(), from, to)
	if err != nil {
		return nil, fmt.Errorf("error listing completed sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.SessionWithTask
	for rows.Next() {
		st, err := scanSessionWithTask(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, st)
	}
	return sessions, rows.Err()
}

// LastSessionEndForTask gets the end timestamp of the most recently
// completed session for a task, or nil when the task has none.
func (db *DB) LastSessionEndForTask(ctx context.Context, userID, taskID uuid.UUID) (*time.Time, error) {
	query := `
		SELECT end_at
		FROM timer_sessions
		WHERE user_id = $1 AND task_id = $2 AND end_at IS NOT NULL
		ORDER BY end_at DESC
		LIMIT 1`

	var endAt time.Time
	err := db.QueryRow(ctx, query, userID.String(), taskID.String()).Scan(&endAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &endAt, nil
}
