package service

import (
	"context"
	"testing"
	"time"

	"github.com/goldenhorse8610-droid/KuroTask/internal/db"
	"github.com/goldenhorse8610-droid/KuroTask/internal/db/models"

	"github.com/google/uuid"
)

// baseTime is the fixed "now" the timer tests inject.
var baseTime = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestTask(t *testing.T, store *db.MemoryStore, userID uuid.UUID, name, kind string) *models.Task {
	t.Helper()
	task := &models.Task{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Kind:      kind,
		CreatedAt: baseTime,
	}
	if err := store.CreateTask(context.Background(), task); err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

// insertCompleted inserts a completed stopwatch session starting at
// start and lasting durationSec seconds.
func insertCompleted(t *testing.T, store *db.MemoryStore, userID, taskID uuid.UUID, start time.Time, durationSec int) *models.TimerSession {
	t.Helper()
	end := start.Add(time.Duration(durationSec) * time.Second)
	dur := durationSec
	reason := models.EndManualStop
	session := &models.TimerSession{
		ID:          uuid.New(),
		UserID:      userID,
		TaskID:      taskID,
		Mode:        models.ModeStopwatch,
		StartAt:     start,
		EndAt:       &end,
		DurationSec: &dur,
		EndReason:   &reason,
	}
	if err := store.CreateSession(context.Background(), session); err != nil {
		t.Fatalf("insert session: %v", err)
	}
	return session
}
