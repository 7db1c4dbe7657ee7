package service

import (
	"context"
	"strings"
	"testing"

	"github.com/goldenhorse8610-droid/KuroTask/internal/db"
	"github.com/goldenhorse8610-droid/KuroTask/internal/db/models"

	"github.com/google/uuid"
)

func newQuickService(store *db.MemoryStore) *QuickService {
	tasks := NewTaskService(store)
	timers := NewTimerService(store)
	return NewQuickService(store, tasks, timers)
}

func TestQuickCreateTask(t *testing.T) {
	store := db.NewMemoryStore()
	userID := uuid.New()
	svc := newQuickService(store)

	userMsg, reply, err := svc.Execute(context.Background(), userID, "/task Read @books")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if userMsg.Role != models.RoleUser || reply.Role != models.RoleSystem {
		t.Fatal("expected a user message and a system reply")
	}
	if !strings.Contains(reply.Content, `"Read"`) {
		t.Fatalf("unexpected reply: %s", reply.Content)
	}
	if reply.RelatedEntityID == nil {
		t.Fatal("reply should reference the created task")
	}

	task, err := store.GetTask(context.Background(), userID, *reply.RelatedEntityID)
	if err != nil || task == nil {
		t.Fatalf("created task not found: %v", err)
	}
	if task.Category == nil || *task.Category != "books" {
		t.Fatalf("expected category books, got %v", task.Category)
	}
}

func TestQuickBareTextCreatesQuickTask(t *testing.T) {
	store := db.NewMemoryStore()
	userID := uuid.New()
	svc := newQuickService(store)

	_, reply, err := svc.Execute(context.Background(), userID, "buy milk")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if reply.RelatedEntityID == nil {
		t.Fatalf("expected a created task, reply: %s", reply.Content)
	}
	task, _ := store.GetTask(context.Background(), userID, *reply.RelatedEntityID)
	if task == nil || task.Category == nil || *task.Category != "quick" {
		t.Fatal("bare text should file the task under the quick category")
	}
}

func TestQuickStartAndStop(t *testing.T) {
	store := db.NewMemoryStore()
	userID := uuid.New()
	svc := newQuickService(store)

	if _, _, err := svc.Execute(context.Background(), userID, "/task Deep work"); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, reply, err := svc.Execute(context.Background(), userID, "/start deep")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !strings.Contains(reply.Content, "Started timing") {
		t.Fatalf("unexpected start reply: %s", reply.Content)
	}

	_, reply, err = svc.Execute(context.Background(), userID, "/start deep")
	if err != nil {
		t.Fatalf("second start: %v", err)
	}
	if !strings.Contains(reply.Content, "already being timed") {
		t.Fatalf("expected conflict reply, got: %s", reply.Content)
	}

	_, reply, err = svc.Execute(context.Background(), userID, "/stop")
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if !strings.Contains(reply.Content, "Stopped 1 timer") {
		t.Fatalf("unexpected stop reply: %s", reply.Content)
	}

	sessions, _ := store.AllSessions(context.Background(), userID)
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	if sessions[0].EndReason == nil || *sessions[0].EndReason != models.EndQuickStop {
		t.Fatalf("expected quick_stop reason, got %v", sessions[0].EndReason)
	}
}

func TestQuickUnknownCommand(t *testing.T) {
	store := db.NewMemoryStore()
	userID := uuid.New()
	svc := newQuickService(store)

	_, reply, err := svc.Execute(context.Background(), userID, "/dance")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(reply.Content, "/help") {
		t.Fatalf("unknown commands should point at /help, got: %s", reply.Content)
	}
}

func TestQuickMessageLog(t *testing.T) {
	store := db.NewMemoryStore()
	userID := uuid.New()
	svc := newQuickService(store)

	if _, _, err := svc.Execute(context.Background(), userID, "/help"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	messages, err := svc.Messages(context.Background(), userID)
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 logged messages, got %d", len(messages))
	}
	if messages[0].Role != models.RoleUser || messages[1].Role != models.RoleSystem {
		t.Fatal("expected user message then system reply")
	}
}
