package models

import (
	"time"

	"github.com/google/uuid"
)

// Task kinds. Kind is immutable after creation; a checklist task never
// has timer sessions.
const (
	TaskStopwatch = "stopwatch"
	TaskCountdown = "countdown"
	TaskChecklist = "checklist"
)

func ValidTaskKind(kind string) bool {
	switch kind {
	case TaskStopwatch, TaskCountdown, TaskChecklist:
		return true
	}
	return false
}

type Task struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	UserID             uuid.UUID  `db:"user_id" json:"userId"`
	Name               string     `db:"name" json:"name"`
	Kind               string     `db:"kind" json:"kind"`
	Category           *string    `db:"category" json:"category"`
	Memo               *string    `db:"memo" json:"memo"`
	IsFavorite         bool       `db:"is_favorite" json:"isFavorite"`
	IdleMonitorEnabled bool       `db:"idle_monitor_enabled" json:"idleMonitorEnabled"`
	IsArchived         bool       `db:"is_archived" json:"isArchived"`
	DefaultDurationSec *int       `db:"default_duration_sec" json:"defaultDurationSec"`
	PlannedDate        *time.Time `db:"planned_date" json:"plannedDate"`
	PlannedStartAt     *time.Time `db:"planned_start_at" json:"plannedStartAt"`
	PlannedEndAt       *time.Time `db:"planned_end_at" json:"plannedEndAt"`
	CreatedAt          time.Time  `db:"created_at" json:"createdAt"`
}
