package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goldenhorse8610-droid/KuroTask/internal/db"

	"github.com/google/uuid"
)

func TestWakeRecordOncePerDay(t *testing.T) {
	store := db.NewMemoryStore()
	userID := uuid.New()

	svc := NewWakeService(store)
	svc.now = fixedNow(time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC))

	logEntry, err := svc.Record(context.Background(), userID)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if logEntry.Date != "2025-06-15" {
		t.Fatalf("expected date 2025-06-15, got %s", logEntry.Date)
	}
	if logEntry.Warned {
		t.Fatal("9:30 is before the default 10:00 warning time")
	}

	_, err = svc.Record(context.Background(), userID)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError on second record, got %v", err)
	}
}

func TestWakeWarnedAtThreshold(t *testing.T) {
	store := db.NewMemoryStore()
	userID := uuid.New()

	svc := NewWakeService(store)
	svc.now = fixedNow(time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC))

	logEntry, err := svc.Record(context.Background(), userID)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if !logEntry.Warned {
		t.Fatal("waking exactly at the warning time counts as warned")
	}
}

func TestWakeTodayAndDelete(t *testing.T) {
	store := db.NewMemoryStore()
	userID := uuid.New()

	svc := NewWakeService(store)
	svc.now = fixedNow(time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC))

	today, err := svc.Today(context.Background(), userID)
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if today != nil {
		t.Fatal("expected no log before recording")
	}

	if _, err := svc.Record(context.Background(), userID); err != nil {
		t.Fatalf("record: %v", err)
	}
	today, err = svc.Today(context.Background(), userID)
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if today == nil {
		t.Fatal("expected today's log after recording")
	}

	if err := svc.DeleteToday(context.Background(), userID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteToday(context.Background(), userID); !IsNotFound(err) {
		t.Fatalf("expected NotFoundError on second delete, got %v", err)
	}
}
