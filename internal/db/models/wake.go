package models

import (
	"time"

	"github.com/google/uuid"
)

// WakeLog records when the user woke up. At most one log exists per
// (user, date); Date is a YYYY-MM-DD key in the user's local day.
type WakeLog struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"userId"`
	Date      string    `db:"date" json:"date"`
	WakeAt    time.Time `db:"wake_at" json:"wakeAt"`
	Warned    bool      `db:"warned" json:"warned"`
	IsRestDay bool      `db:"is_rest_day" json:"isRestDay"`
}
