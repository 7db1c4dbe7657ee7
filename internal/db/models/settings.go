package models

import "github.com/google/uuid"

// Settings holds per-user preferences. A row is created lazily with
// defaults on first read.
type Settings struct {
	ID                  uuid.UUID `db:"id" json:"id"`
	UserID              uuid.UUID `db:"user_id" json:"userId"`
	WakeWarningTime     string    `db:"wake_warning_time" json:"wakeWarningTime"`
	ElapsedRemindMin    int       `db:"elapsed_remind_min" json:"timerElapsedRemindMin"`
	ElapsedRemindRepeat bool      `db:"elapsed_remind_repeat" json:"timerElapsedRemindRepeat"`
	SilentHoursStart    *string   `db:"silent_hours_start" json:"silentHoursStart"`
	SilentHoursEnd      *string   `db:"silent_hours_end" json:"silentHoursEnd"`
	IdleThresholdDays   int       `db:"idle_threshold_days" json:"idleThresholdDays"`
}

// DefaultSettings returns the settings a fresh user starts with.
func DefaultSettings(userID uuid.UUID) *Settings {
	return &Settings{
		ID:                uuid.New(),
		UserID:            userID,
		WakeWarningTime:   "10:00",
		IdleThresholdDays: 7,
	}
}
