package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goldenhorse8610-droid/KuroTask/internal/db"
	"github.com/goldenhorse8610-droid/KuroTask/internal/db/models"
	"github.com/goldenhorse8610-droid/KuroTask/internal/quick"

	"github.com/google/uuid"
)

const quickHelp = `KuroTask quick commands:
/task NAME @CATEGORY - create a task
/start KEYWORD - find a task and start timing it
/stop - stop every running timer
/help - show this help`

// QuickService runs the chat-style quick commands through the regular
// task and timer services and keeps a message log of the exchange.
type QuickService struct {
	store  db.Store
	tasks  *TaskService
	timers *TimerService
	now    func() time.Time
}

func NewQuickService(store db.Store, tasks *TaskService, timers *TimerService) *QuickService {
	return &QuickService{store: store, tasks: tasks, timers: timers, now: time.Now}
}

// Messages returns the quick-command log, oldest first, capped at 100.
func (s *QuickService) Messages(ctx context.Context, userID uuid.UUID) ([]*models.QuickMessage, error) {
	return s.store.ListQuickMessages(ctx, userID, 100)
}

// Execute records the user's input, runs the command it parses to, and
// records the system reply. Both messages are returned.
func (s *QuickService) Execute(ctx context.Context, userID uuid.UUID, content string) (*models.QuickMessage, *models.QuickMessage, error) {
	if content == "" {
		return nil, nil, &ValidationError{Msg: "content is required"}
	}

	userMsg := &models.QuickMessage{
		ID:        uuid.New(),
		UserID:    userID,
		Role:      models.RoleUser,
		Content:   content,
		CreatedAt: s.now(),
	}
	if err := s.store.CreateQuickMessage(ctx, userMsg); err != nil {
		return nil, nil, fmt.Errorf("error saving message: %w", err)
	}

	reply, relatedID, relatedType := s.run(ctx, userID, quick.Parse(content))

	sysMsg := &models.QuickMessage{
		ID:                uuid.New(),
		UserID:            userID,
		Role:              models.RoleSystem,
		Content:           reply,
		RelatedEntityID:   relatedID,
		RelatedEntityType: relatedType,
		CreatedAt:         s.now(),
	}
	if err := s.store.CreateQuickMessage(ctx, sysMsg); err != nil {
		return nil, nil, fmt.Errorf("error saving message: %w", err)
	}
	return userMsg, sysMsg, nil
}

func (s *QuickService) run(ctx context.Context, userID uuid.UUID, cmd quick.Command) (reply string, relatedID *uuid.UUID, relatedType *string) {
	switch cmd.Action {
	case quick.ActionMessage:
		return "Commands start with /. Try /help.", nil, nil

	case quick.ActionHelp:
		return quickHelp, nil, nil

	case quick.ActionCreateTask:
		params := CreateTaskParams{Name: cmd.Name, Kind: models.TaskStopwatch}
		if cmd.Category != "" {
			params.Category = &cmd.Category
		}
		task, err := s.tasks.Create(ctx, userID, params)
		if err != nil {
			return "Could not create the task.", nil, nil
		}
		t := "task"
		return fmt.Sprintf("Created task %q.", task.Name), &task.ID, &t

	case quick.ActionStartTask:
		task, err := s.store.FindTaskByName(ctx, userID, cmd.Query)
		if err != nil || task == nil {
			return fmt.Sprintf("No task matching %q.", cmd.Query), nil, nil
		}
		mode := models.ModeStopwatch
		if task.Kind == models.TaskCountdown {
			mode = models.ModeCountdown
		}
		_, err = s.timers.Start(ctx, userID, task.ID, mode, task.DefaultDurationSec, nil)
		if err != nil {
			var conflict *ConflictError
			if errors.As(err, &conflict) {
				return fmt.Sprintf("%q is already being timed.", task.Name), nil, nil
			}
			return "Could not start the timer.", nil, nil
		}
		t := "task"
		return fmt.Sprintf("Started timing %q.", task.Name), &task.ID, &t

	case quick.ActionStopAll:
		count, err := s.timers.StopAll(ctx, userID, models.EndQuickStop)
		if err != nil {
			return "Could not stop the timers.", nil, nil
		}
		return fmt.Sprintf("Stopped %d timer(s).", count), nil, nil

	default:
		return "Unknown command. Try /help.", nil, nil
	}
}
