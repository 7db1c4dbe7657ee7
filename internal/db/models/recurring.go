package models

import (
	"time"

	"github.com/google/uuid"
)

// Recurrence rule types.
const (
	RecurDaily   = "daily"
	RecurWeekly  = "weekly"
	RecurMonthly = "monthly"
)

func ValidRuleType(ruleType string) bool {
	switch ruleType {
	case RecurDaily, RecurWeekly, RecurMonthly:
		return true
	}
	return false
}

// RecurringRule schedules a task to reappear on the calendar. One rule
// per task. Payload carries type-specific parameters as JSON (weekday
// list for weekly, day-of-month for monthly).
type RecurringRule struct {
	ID                uuid.UUID `db:"id" json:"id"`
	UserID            uuid.UUID `db:"user_id" json:"userId"`
	TaskID            uuid.UUID `db:"task_id" json:"taskId"`
	RuleType          string    `db:"rule_type" json:"ruleType"`
	Payload           *string   `db:"payload" json:"payload"`
	ReminderEnabled   bool      `db:"reminder_enabled" json:"reminderEnabled"`
	ReminderStartTime *string   `db:"reminder_start_time" json:"reminderStartTime"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
}
