package service

import (
	"context"
	"testing"

	"github.com/goldenhorse8610-droid/KuroTask/internal/db"

	"github.com/google/uuid"
)

func TestSettingsLazyDefaults(t *testing.T) {
	store := db.NewMemoryStore()
	userID := uuid.New()

	svc := NewSettingsService(store)
	settings, err := svc.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if settings.WakeWarningTime != "10:00" || settings.IdleThresholdDays != 7 {
		t.Fatalf("unexpected defaults: %+v", settings)
	}

	// A second read returns the persisted row, not a fresh one.
	again, err := svc.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if again.ID != settings.ID {
		t.Fatal("expected the same settings row on repeat reads")
	}
}

func TestSettingsPartialUpdate(t *testing.T) {
	store := db.NewMemoryStore()
	userID := uuid.New()

	svc := NewSettingsService(store)
	remindMin := 25
	updated, err := svc.Update(context.Background(), userID, UpdateSettingsParams{
		ElapsedRemindMin: &remindMin,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ElapsedRemindMin != 25 {
		t.Fatalf("expected remind interval 25, got %d", updated.ElapsedRemindMin)
	}
	if updated.WakeWarningTime != "10:00" || updated.IdleThresholdDays != 7 {
		t.Fatal("untouched fields must keep their defaults")
	}

	start := "22:00"
	end := "07:00"
	updated, err = svc.Update(context.Background(), userID, UpdateSettingsParams{
		SilentHoursStart: &start,
		SilentHoursEnd:   &end,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ElapsedRemindMin != 25 {
		t.Fatal("earlier update must survive later partial updates")
	}
	if updated.SilentHoursStart == nil || *updated.SilentHoursStart != "22:00" {
		t.Fatalf("expected silent hours start 22:00, got %v", updated.SilentHoursStart)
	}
}
