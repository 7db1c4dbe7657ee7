package models

import (
	"time"

	"github.com/google/uuid"
)

// Session modes.
const (
	ModeStopwatch = "stopwatch"
	ModeCountdown = "countdown"
)

// End reasons. A running session has no end reason.
const (
	EndManualStop = "manual_stop"
	EndQuickStop  = "quick_stop"
	EndEdited     = "edited"
)

func ValidMode(mode string) bool {
	return mode == ModeStopwatch || mode == ModeCountdown
}

// TimerSession is one timed interval of work on a task. EndAt == nil
// means the session is still running.
type TimerSession struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	UserID             uuid.UUID  `db:"user_id" json:"userId"`
	TaskID             uuid.UUID  `db:"task_id" json:"taskId"`
	Mode               string     `db:"mode" json:"mode"`
	StartAt            time.Time  `db:"start_at" json:"startAt"`
	EndAt              *time.Time `db:"end_at" json:"endAt"`
	PlannedDurationSec *int       `db:"planned_duration_sec" json:"plannedDurationSec"`
	DurationSec        *int       `db:"duration_sec" json:"durationSec"`
	StartMemo          *string    `db:"start_memo" json:"startMemo"`
	EndMemo            *string    `db:"end_memo" json:"endMemo"`
	EndReason          *string    `db:"end_reason" json:"endReason"`
}

// Running reports whether the session has not been stopped yet.
func (s *TimerSession) Running() bool {
	return s.EndAt == nil
}

// SessionWithTask joins a session with its task for display.
type SessionWithTask struct {
	Session *TimerSession `json:"session"`
	Task    *Task         `json:"task"`
}
