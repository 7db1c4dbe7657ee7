package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/goldenhorse8610-droid/KuroTask/internal/db/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateWakeLog is returned when a wake log already exists for
// the (user, date) pair.
var ErrDuplicateWakeLog = errors.New("wake log already recorded for date")

// CreateWakeLog inserts a wake log. The (user_id, date) unique
// constraint rejects a second record for the same day.
func (db *DB) CreateWakeLog(ctx context.Context, log *models.WakeLog) error {
	query := `
		INSERT INTO wake_logs (id, user_id, date, wake_at, warned, is_rest_day)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := db.Exec(ctx, query,
		log.ID.String(),
		log.UserID.String(),
		log.Date,
		log.WakeAt,
		log.Warned,
		log.IsRestDay,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateWakeLog
	}
	return err
}

// GetWakeLog retrieves the wake log for a date if one exists.
func (db *DB) GetWakeLog(ctx context.Context, userID uuid.UUID, date string) (*models.WakeLog, error) {
	query := `
		SELECT id, user_id, date, wake_at, warned, is_rest_day
		FROM wake_logs
		WHERE user_id = $1 AND date = $2`

	log := &models.WakeLog{}
	err := db.QueryRow(ctx, query, userID.String(), date).Scan(
		&log.ID,
		&log.UserID,
		&log.Date,
		&log.WakeAt,
		&log.Warned,
		&log.IsRestDay,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return log, nil
}

// ListWakeLogs retrieves the latest wake logs, newest date first.
func (db *DB) ListWakeLogs(ctx context.Context, userID uuid.UUID, limit int) ([]*models.WakeLog, error) {
	query := `
		SELECT id, user_id, date, wake_at, warned, is_rest_day
		FROM wake_logs
		WHERE user_id = $1
		ORDER BY date DESC
		LIMIT $2`

	rows, err := db.Query(ctx, query, userID.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("error listing wake logs: %w", err)
	}
	defer rows.Close()

	var logs []*models.WakeLog
	for rows.Next() {
		log := &models.WakeLog{}
		err := rows.Scan(
			&log.ID,
			&log.UserID,
			&log.Date,
			&log.WakeAt,
			&log.Warned,
			&log.IsRestDay,
		)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

// DeleteWakeLog removes the wake log for a date, reporting whether a
// row was deleted.
func (db *DB) DeleteWakeLog(ctx context.Context, userID uuid.UUID, date string) (bool, error) {
	query := `
		DELETE FROM wake_logs
		WHERE user_id = $1 AND date = $2`

	tag, err := db.Exec(ctx, query, userID.String(), date)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
