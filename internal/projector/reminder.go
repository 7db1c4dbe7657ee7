package projector

import (
	"strconv"
	"strings"
	"time"

	"github.com/goldenhorse8610-droid/KuroTask/internal/db/models"
)

// Reminder is the notification decision for one session at one
// instant. Like Project, it is pure: the caller tracks which reminders
// it has already delivered and feeds that back in.
type Reminder struct {
	ElapsedDue     bool
	ElapsedMinutes int
	FinishedDue    bool
}

// EvaluateReminder decides which notifications are due for a running
// session. lastRemindedMin is the elapsed-minute mark most recently
// notified (0 for none); finishedNotified suppresses a repeat of the
// countdown-finished notice. Nothing fires inside the silent-hours
// window.
func EvaluateReminder(session *models.TimerSession, settings *models.Settings, lastRemindedMin int, finishedNotified bool, now time.Time) Reminder {
	var r Reminder
	if settings == nil || session.EndAt != nil {
		return r
	}
	if inSilentHours(settings.SilentHoursStart, settings.SilentHoursEnd, now) {
		return r
	}

	elapsedMin := int(now.Sub(session.StartAt) / time.Minute)

	if interval := settings.ElapsedRemindMin; interval > 0 {
		if elapsedMin > 0 && elapsedMin%interval == 0 && elapsedMin != lastRemindedMin {
			if settings.ElapsedRemindRepeat || lastRemindedMin == 0 {
				r.ElapsedDue = true
				r.ElapsedMinutes = elapsedMin
			}
		}
	}

	if session.Mode == models.ModeCountdown && session.PlannedDurationSec != nil && !finishedNotified {
		if Project(session, now).Finished {
			r.FinishedDue = true
		}
	}
	return r
}

// inSilentHours reports whether now's local clock time falls inside
// the [start, end) window. A window whose end precedes its start spans
// midnight.
func inSilentHours(start, end *string, now time.Time) bool {
	if start == nil || end == nil {
		return false
	}
	from, okFrom := parseClock(*start)
	to, okTo := parseClock(*end)
	if !okFrom || !okTo || from == to {
		return false
	}
	minute := now.Hour()*60 + now.Minute()
	if from < to {
		return minute >= from && minute < to
	}
	return minute >= from || minute < to
}

func parseClock(clock string) (int, bool) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
