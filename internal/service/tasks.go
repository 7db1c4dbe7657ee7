package service

import (
	"context"
	"fmt"
	"time"

	"github.com/goldenhorse8610-droid/KuroTask/internal/db"
	"github.com/goldenhorse8610-droid/KuroTask/internal/db/models"

	"github.com/google/uuid"
)

// TaskService handles task CRUD. Tasks are never hard-deleted;
// archiving keeps session history intact.
type TaskService struct {
	store db.Store
	now   func() time.Time
}

func NewTaskService(store db.Store) *TaskService {
	return &TaskService{store: store, now: time.Now}
}

// CreateTaskParams carries the fields of a create request.
type CreateTaskParams struct {
	Name               string
	Kind               string
	Category           *string
	Memo               *string
	IsFavorite         bool
	IdleMonitorEnabled bool
	DefaultDurationSec *int
	PlannedDate        *time.Time
	PlannedStartAt     *time.Time
	PlannedEndAt       *time.Time
}

func (s *TaskService) Create(ctx context.Context, userID uuid.UUID, params CreateTaskParams) (*models.Task, error) {
	if params.Name == "" || params.Kind == "" {
		return nil, &ValidationError{Msg: "name and kind are required"}
	}
	if !models.ValidTaskKind(params.Kind) {
		return nil, &ValidationError{Msg: "invalid kind"}
	}

	task := &models.Task{
		ID:                 uuid.New(),
		UserID:             userID,
		Name:               params.Name,
		Kind:               params.Kind,
		Category:           params.Category,
		Memo:               params.Memo,
		IsFavorite:         params.IsFavorite,
		IdleMonitorEnabled: params.IdleMonitorEnabled,
		DefaultDurationSec: params.DefaultDurationSec,
		PlannedDate:        params.PlannedDate,
		PlannedStartAt:     params.PlannedStartAt,
		PlannedEndAt:       params.PlannedEndAt,
		CreatedAt:          s.now(),
	}
	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}
	return task, nil
}

// List returns the user's non-archived tasks, newest first.
func (s *TaskService) List(ctx context.Context, userID uuid.UUID) ([]*models.Task, error) {
	return s.store.ListTasks(ctx, userID, false)
}

func (s *TaskService) Get(ctx context.Context, userID, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.store.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, &NotFoundError{Entity: "task"}
	}
	return task, nil
}

// UpdateTaskParams carries a partial update; nil fields keep their
// prior value. Kind is immutable and cannot be patched.
type UpdateTaskParams struct {
	Name               *string
	Category           *string
	Memo               *string
	IsFavorite         *bool
	IdleMonitorEnabled *bool
	DefaultDurationSec *int
	PlannedDate        *time.Time
	PlannedStartAt     *time.Time
	PlannedEndAt       *time.Time
}

func (s *TaskService) Update(ctx context.Context, userID, taskID uuid.UUID, params UpdateTaskParams) (*models.Task, error) {
	task, err := s.Get(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		task.Name = *params.Name
	}
	if params.Category != nil {
		task.Category = params.Category
	}
	if params.Memo != nil {
		task.Memo = params.Memo
	}
	if params.IsFavorite != nil {
		task.IsFavorite = *params.IsFavorite
	}
	if params.IdleMonitorEnabled != nil {
		task.IdleMonitorEnabled = *params.IdleMonitorEnabled
	}
	if params.DefaultDurationSec != nil {
		task.DefaultDurationSec = params.DefaultDurationSec
	}
	if params.PlannedDate != nil {
		task.PlannedDate = params.PlannedDate
	}
	if params.PlannedStartAt != nil {
		task.PlannedStartAt = params.PlannedStartAt
	}
	if params.PlannedEndAt != nil {
		task.PlannedEndAt = params.PlannedEndAt
	}

	if err := s.store.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("error updating task: %w", err)
	}
	return task, nil
}

// ToggleFavorite flips the favorite flag.
func (s *TaskService) ToggleFavorite(ctx context.Context, userID, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.Get(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	task.IsFavorite = !task.IsFavorite
	if err := s.store.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("error updating task: %w", err)
	}
	return task, nil
}

// Archive hides the task from default listings while retaining its
// history.
func (s *TaskService) Archive(ctx context.Context, userID, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.Get(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	task.IsArchived = true
	if err := s.store.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("error updating task: %w", err)
	}
	return task, nil
}
