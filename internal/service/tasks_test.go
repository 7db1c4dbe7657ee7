package service

import (
	"context"
	"errors"
	"testing"

	"github.com/goldenhorse8610-droid/KuroTask/internal/db"
	"github.com/goldenhorse8610-droid/KuroTask/internal/db/models"

	"github.com/google/uuid"
)

func TestCreateTaskValidation(t *testing.T) {
	svc := NewTaskService(db.NewMemoryStore())

	cases := []struct {
		name   string
		params CreateTaskParams
	}{
		{"missing name", CreateTaskParams{Kind: models.TaskStopwatch}},
		{"missing kind", CreateTaskParams{Name: "x"}},
		{"bad kind", CreateTaskParams{Name: "x", Kind: "sandglass"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), uuid.New(), tc.params)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestUpdateTaskPartial(t *testing.T) {
	store := db.NewMemoryStore()
	userID := uuid.New()
	svc := NewTaskService(store)

	cat := "work"
	task, err := svc.Create(context.Background(), userID, CreateTaskParams{
		Name: "Write report", Kind: models.TaskStopwatch, Category: &cat,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "Write the report"
	updated, err := svc.Update(context.Background(), userID, task.ID, UpdateTaskParams{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Write the report" {
		t.Fatalf("expected renamed task, got %s", updated.Name)
	}
	if updated.Category == nil || *updated.Category != "work" {
		t.Fatal("untouched fields must survive a partial update")
	}
	if updated.Kind != models.TaskStopwatch {
		t.Fatal("kind is immutable")
	}
}

func TestUpdateTaskCrossOwner(t *testing.T) {
	store := db.NewMemoryStore()
	owner := uuid.New()
	svc := NewTaskService(store)

	task, err := svc.Create(context.Background(), owner, CreateTaskParams{
		Name: "Private", Kind: models.TaskStopwatch,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "Hijacked"
	_, err = svc.Update(context.Background(), uuid.New(), task.ID, UpdateTaskParams{Name: &name})
	if !IsNotFound(err) {
		t.Fatalf("expected NotFoundError for another user's task, got %v", err)
	}
}

func TestToggleFavorite(t *testing.T) {
	store := db.NewMemoryStore()
	userID := uuid.New()
	svc := NewTaskService(store)

	task, err := svc.Create(context.Background(), userID, CreateTaskParams{
		Name: "Write report", Kind: models.TaskStopwatch,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	toggled, err := svc.ToggleFavorite(context.Background(), userID, task.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !toggled.IsFavorite {
		t.Fatal("expected favorite after first toggle")
	}
	toggled, err = svc.ToggleFavorite(context.Background(), userID, task.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if toggled.IsFavorite {
		t.Fatal("expected not favorite after second toggle")
	}
}

func TestArchiveHidesFromList(t *testing.T) {
	store := db.NewMemoryStore()
	userID := uuid.New()
	svc := NewTaskService(store)

	task, err := svc.Create(context.Background(), userID, CreateTaskParams{
		Name: "Done with this", Kind: models.TaskStopwatch,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Archive(context.Background(), userID, task.ID); err != nil {
		t.Fatalf("archive: %v", err)
	}

	tasks, err := svc.List(context.Background(), userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("archived tasks must not appear in the default list, got %d", len(tasks))
	}
	// The task itself is still reachable, history intact.
	got, err := svc.Get(context.Background(), userID, task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.IsArchived {
		t.Fatal("expected the archived flag set")
	}
}
