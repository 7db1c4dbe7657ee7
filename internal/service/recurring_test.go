package service

import (
	"context"
	"testing"
	"time"

	"github.com/goldenhorse8610-droid/KuroTask/internal/db"
	"github.com/goldenhorse8610-droid/KuroTask/internal/db/models"

	"github.com/google/uuid"
)

func TestFiresOn(t *testing.T) {
	sunday := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	monday := sunday.AddDate(0, 0, 1)
	weekly := `{"weekdays":[0,3]}`
	monthly := `{"day":15}`
	broken := `{not json`

	cases := []struct {
		name string
		rule models.RecurringRule
		day  time.Time
		want bool
	}{
		{"daily always", models.RecurringRule{RuleType: models.RecurDaily}, monday, true},
		{"weekly match", models.RecurringRule{RuleType: models.RecurWeekly, Payload: &weekly}, sunday, true},
		{"weekly miss", models.RecurringRule{RuleType: models.RecurWeekly, Payload: &weekly}, monday, false},
		{"monthly match", models.RecurringRule{RuleType: models.RecurMonthly, Payload: &monthly}, sunday, true},
		{"monthly miss", models.RecurringRule{RuleType: models.RecurMonthly, Payload: &monthly}, monday, false},
		{"malformed payload", models.RecurringRule{RuleType: models.RecurWeekly, Payload: &broken}, sunday, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FiresOn(&tc.rule, tc.day); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestUpsertReplacesRule(t *testing.T) {
	store := db.NewMemoryStore()
	userID := uuid.New()
	task := newTestTask(t, store, userID, "Daily standup", models.TaskStopwatch)

	svc := NewRecurringService(store)
	if _, err := svc.Upsert(context.Background(), userID, UpsertRuleParams{
		TaskID: task.ID, RuleType: models.RecurDaily,
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	payload := `{"weekdays":[1,2,3,4,5]}`
	rule, err := svc.Upsert(context.Background(), userID, UpsertRuleParams{
		TaskID: task.ID, RuleType: models.RecurWeekly, Payload: &payload,
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	rules, err := svc.List(context.Background(), userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("expected one rule per task, got %d", len(rules))
	}
	if rules[0].ID != rule.ID || rules[0].RuleType != models.RecurWeekly {
		t.Fatal("expected the replacement rule to win")
	}
}

func TestUpsertRequiresOwnedTask(t *testing.T) {
	store := db.NewMemoryStore()
	owner := uuid.New()
	task := newTestTask(t, store, owner, "Private", models.TaskStopwatch)

	svc := NewRecurringService(store)
	_, err := svc.Upsert(context.Background(), uuid.New(), UpsertRuleParams{
		TaskID: task.ID, RuleType: models.RecurDaily,
	})
	if !IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestMaterializeDue(t *testing.T) {
	store := db.NewMemoryStore()
	userID := uuid.New()
	daily := newTestTask(t, store, userID, "Journal", models.TaskStopwatch)
	archived := newTestTask(t, store, userID, "Old habit", models.TaskStopwatch)
	archived.IsArchived = true
	if err := store.UpdateTask(context.Background(), archived); err != nil {
		t.Fatalf("update: %v", err)
	}

	svc := NewRecurringService(store)
	for _, taskID := range []uuid.UUID{daily.ID, archived.ID} {
		if _, err := svc.Upsert(context.Background(), userID, UpsertRuleParams{
			TaskID: taskID, RuleType: models.RecurDaily,
		}); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	day := time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)
	updated, err := svc.MaterializeDue(context.Background(), day)
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}
	if updated != 1 {
		t.Fatalf("expected 1 task stamped, got %d", updated)
	}

	got, _ := store.GetTask(context.Background(), userID, daily.ID)
	midnight := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	if got.PlannedDate == nil || !got.PlannedDate.Equal(midnight) {
		t.Fatalf("expected planned date %v, got %v", midnight, got.PlannedDate)
	}

	// Running the pass again on the same day is a no-op.
	updated, err = svc.MaterializeDue(context.Background(), day)
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}
	if updated != 0 {
		t.Fatalf("expected idempotent second pass, got %d", updated)
	}
}
