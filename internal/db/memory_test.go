package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goldenhorse8610-droid/KuroTask/internal/db/models"

	"github.com/google/uuid"
)

func TestMemoryStoreNilOnMissing(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	user, err := store.GetUserByID(ctx, uuid.New())
	if err != nil || user != nil {
		t.Fatalf("expected (nil, nil), got (%v, %v)", user, err)
	}
	task, err := store.GetTask(ctx, uuid.New(), uuid.New())
	if err != nil || task != nil {
		t.Fatalf("expected (nil, nil), got (%v, %v)", task, err)
	}
	session, err := store.GetSession(ctx, uuid.New(), uuid.New())
	if err != nil || session != nil {
		t.Fatalf("expected (nil, nil), got (%v, %v)", session, err)
	}
}

func TestMemoryStoreRunningUniqueness(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	userID := uuid.New()
	taskID := uuid.New()

	first := &models.TimerSession{
		ID: uuid.New(), UserID: userID, TaskID: taskID,
		Mode: models.ModeStopwatch, StartAt: time.Now(),
	}
	if err := store.CreateSession(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}

	second := &models.TimerSession{
		ID: uuid.New(), UserID: userID, TaskID: taskID,
		Mode: models.ModeStopwatch, StartAt: time.Now(),
	}
	if err := store.CreateSession(ctx, second); !errors.Is(err, ErrDuplicateRunning) {
		t.Fatalf("expected ErrDuplicateRunning, got %v", err)
	}

	// A completed session on the same task is fine.
	end := time.Now()
	completed := &models.TimerSession{
		ID: uuid.New(), UserID: userID, TaskID: taskID,
		Mode: models.ModeStopwatch, StartAt: end.Add(-time.Hour), EndAt: &end,
	}
	if err := store.CreateSession(ctx, completed); err != nil {
		t.Fatalf("completed insert: %v", err)
	}
}

func TestMemoryStoreCopyOnRead(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	userID := uuid.New()

	task := &models.Task{
		ID: uuid.New(), UserID: userID, Name: "Original",
		Kind: models.TaskStopwatch, CreatedAt: time.Now(),
	}
	if err := store.CreateTask(ctx, task); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, _ := store.GetTask(ctx, userID, task.ID)
	got.Name = "Mutated"

	again, _ := store.GetTask(ctx, userID, task.ID)
	if again.Name != "Original" {
		t.Fatal("reads must not share memory with the store")
	}
}

func TestMemoryStoreWakeLogUniqueness(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	userID := uuid.New()

	log := &models.WakeLog{ID: uuid.New(), UserID: userID, Date: "2025-06-15", WakeAt: time.Now()}
	if err := store.CreateWakeLog(ctx, log); err != nil {
		t.Fatalf("create: %v", err)
	}
	dup := &models.WakeLog{ID: uuid.New(), UserID: userID, Date: "2025-06-15", WakeAt: time.Now()}
	if err := store.CreateWakeLog(ctx, dup); !errors.Is(err, ErrDuplicateWakeLog) {
		t.Fatalf("expected ErrDuplicateWakeLog, got %v", err)
	}
}
