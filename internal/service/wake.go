package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goldenhorse8610-droid/KuroTask/internal/db"
	"github.com/goldenhorse8610-droid/KuroTask/internal/db/models"

	"github.com/google/uuid"
)

// WakeService records daily wake-up times, one log per day.
type WakeService struct {
	store db.Store
	now   func() time.Time
}

func NewWakeService(store db.Store) *WakeService {
	return &WakeService{store: store, now: time.Now}
}

// Record logs the current instant as today's wake time. A second
// record for the same day is rejected. The warned flag is set when the
// wake time is at or past the settings wake warning time (default
// 10:00 local).
func (s *WakeService) Record(ctx context.Context, userID uuid.UUID) (*models.WakeLog, error) {
	now := s.now()
	date := now.Format("2006-01-02")

	warningTime := "10:00"
	settings, err := s.store.GetSettings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting settings: %w", err)
	}
	if settings != nil && settings.WakeWarningTime != "" {
		warningTime = settings.WakeWarningTime
	}

	log := &models.WakeLog{
		ID:     uuid.New(),
		UserID: userID,
		Date:   date,
		WakeAt: now,
		Warned: !beforeClock(now, warningTime),
	}
	if err := s.store.CreateWakeLog(ctx, log); err != nil {
		if errors.Is(err, db.ErrDuplicateWakeLog) {
			return nil, &ConflictError{Msg: "already recorded today"}
		}
		return nil, fmt.Errorf("error creating wake log: %w", err)
	}
	return log, nil
}

// List returns the latest wake logs, capped at 30.
func (s *WakeService) List(ctx context.Context, userID uuid.UUID) ([]*models.WakeLog, error) {
	return s.store.ListWakeLogs(ctx, userID, 30)
}

// Today returns today's wake log, or nil when none was recorded.
func (s *WakeService) Today(ctx context.Context, userID uuid.UUID) (*models.WakeLog, error) {
	return s.store.GetWakeLog(ctx, userID, s.now().Format("2006-01-02"))
}

// DeleteToday removes today's wake log.
func (s *WakeService) DeleteToday(ctx context.Context, userID uuid.UUID) error {
	deleted, err := s.store.DeleteWakeLog(ctx, userID, s.now().Format("2006-01-02"))
	if err != nil {
		return fmt.Errorf("error deleting wake log: %w", err)
	}
	if !deleted {
		return &NotFoundError{Entity: "wake log for today"}
	}
	return nil
}

// beforeClock reports whether t's local time of day is before the
// HH:MM clock string. Unparseable strings fall back to 10:00.
func beforeClock(t time.Time, clock string) bool {
	hour, minute := 10, 0
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) == 2 {
		if h, err := strconv.Atoi(parts[0]); err == nil {
			if m, err := strconv.Atoi(parts[1]); err == nil {
				hour, minute = h, m
			}
		}
	}
	return t.Hour()*60+t.Minute() < hour*60+minute
}
