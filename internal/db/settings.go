package db

import (
	"context"

	"github.com/goldenhorse8610-droid/KuroTask/internal/db/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GetSettings retrieves the user's settings row if one exists.
func (db *DB) GetSettings(ctx context.Context, userID uuid.UUID) (*models.Settings, error) {
	query := `
		SELECT id, user_id, wake_warning_time, elapsed_remind_min,
			elapsed_remind_repeat, silent_hours_start, silent_hours_end,
			idle_threshold_days
		FROM settings
		WHERE user_id = $1`

	s := &models.Settings{}
	err := db.QueryRow(ctx, query, userID.String()).Scan(
		&s.ID,
		&s.UserID,
		&s.WakeWarningTime,
		&s.ElapsedRemindMin,
		&s.ElapsedRemindRepeat,
		&s.SilentHoursStart,
		&s.SilentHoursEnd,
		&s.IdleThresholdDays,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// CreateSettings inserts a settings row.
func (db *DB) CreateSettings(ctx context.Context, settings *models.Settings) error {
	query := `
		INSERT INTO settings (id, user_id, wake_warning_time, elapsed_remind_min,
			elapsed_remind_repeat, silent_hours_start, silent_hours_end,
			idle_threshold_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := db.Exec(ctx, query,
		settings.ID.String(),
		settings.UserID.String(),
		settings.WakeWarningTime,
		settings.ElapsedRemindMin,
		settings.ElapsedRemindRepeat,
		settings.SilentHoursStart,
		settings.SilentHoursEnd,
		settings.IdleThresholdDays,
	)
	return err
}

// UpdateSettings persists the mutable settings fields.
func (db *DB) UpdateSettings(ctx context.Context, settings *models.Settings) error {
	query := `
		UPDATE settings
		SET wake_warning_time = $1, elapsed_remind_min = $2,
			elapsed_remind_repeat = $3, silent_hours_start = $4,
			silent_hours_end = $5, idle_threshold_days = $6
		WHERE user_id = $7`

	_, err := db.Exec(ctx, query,
		settings.WakeWarningTime,
		settings.ElapsedRemindMin,
		settings.ElapsedRemindRepeat,
		settings.SilentHoursStart,
		settings.SilentHoursEnd,
		settings.IdleThresholdDays,
		settings.UserID.String(),
	)
	return err
}
