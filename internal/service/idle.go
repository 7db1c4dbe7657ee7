package service

import (
	"context"
	"fmt"
	"time"

	"github.com/goldenhorse8610-droid/KuroTask/internal/db"

	"github.com/google/uuid"
)

// IdleTask is a monitored task with no recent completed session.
type IdleTask struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	LastActive time.Time `json:"lastActive"`
}

// IdleService flags tasks that have gone quiet past the configured
// day threshold.
type IdleService struct {
	store db.Store
	now   func() time.Time
}

func NewIdleService(store db.Store) *IdleService {
	return &IdleService{store: store, now: time.Now}
}

// Status scans non-archived, idle-monitored tasks. The reference
// instant is the end of the most recent completed session, or the
// task's creation time when no session has ever completed. A task is
// idle only when the reference instant is strictly older than the
// threshold; a task exactly at the boundary is not idle.
func (s *IdleService) Status(ctx context.Context, userID uuid.UUID) ([]IdleTask, int, error) {
	thresholdDays := 7
	settings, err := s.store.GetSettings(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("error getting settings: %w", err)
	}
	if settings != nil && settings.IdleThresholdDays > 0 {
		thresholdDays = settings.IdleThresholdDays
	}

	cutoff := s.now().Add(-time.Duration(thresholdDays) * 24 * time.Hour)

	tasks, err := s.store.ListTasks(ctx, userID, false)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing tasks: %w", err)
	}

	idle := []IdleTask{}
	for _, task := range tasks {
		if !task.IdleMonitorEnabled {
			continue
		}
		lastEnd, err := s.store.LastSessionEndForTask(ctx, userID, task.ID)
		if err != nil {
			return nil, 0, fmt.Errorf("error getting last session end: %w", err)
		}
		reference := task.CreatedAt
		if lastEnd != nil {
			reference = *lastEnd
		}
		if reference.Before(cutoff) {
			idle = append(idle, IdleTask{
				ID:         task.ID,
				Name:       task.Name,
				LastActive: reference,
			})
		}
	}
	return idle, thresholdDays, nil
}
