package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goldenhorse8610-droid/KuroTask/internal/db"
	"github.com/goldenhorse8610-droid/KuroTask/internal/db/models"

	"github.com/google/uuid"
)

// TimerService enforces the session lifecycle: at most one running
// session per task, duration derived from timestamps only, countdown
// sessions never auto-stopped.
type TimerService struct {
	store db.Store
	now   func() time.Time
}

func NewTimerService(store db.Store) *TimerService {
	return &TimerService{store: store, now: time.Now}
}

// durationSec is floor((end - start) / 1s) in whole seconds.
func durationSec(start, end time.Time) int {
	return int(end.Sub(start) / time.Second)
}

// Start begins a new session against a task. Countdown mode requires a
// planned duration; the task's default is used when the caller omits
// one. A task with a running session yields a ConflictError carrying
// that session.
func (s *TimerService) Start(ctx context.Context, userID, taskID uuid.UUID, mode string, plannedSec *int, startMemo *string) (*models.SessionWithTask, error) {
	if !models.ValidMode(mode) {
		return nil, &ValidationError{Msg: "invalid mode"}
	}

	task, err := s.store.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, fmt.Errorf("error getting task: %w", err)
	}
	if task == nil {
		return nil, &NotFoundError{Entity: "task"}
	}
	if task.Kind == models.TaskChecklist {
		return nil, &ValidationError{Msg: "checklist tasks cannot be timed"}
	}

	if mode == models.ModeCountdown && plannedSec == nil {
		plannedSec = task.DefaultDurationSec
		if plannedSec == nil {
			return nil, &ValidationError{Msg: "plannedDurationSec is required for countdown mode"}
		}
	}

	existing, err := s.store.RunningSessionForTask(ctx, userID, taskID)
	if err != nil {
		return nil, fmt.Errorf("error checking running session: %w", err)
	}
	if existing != nil {
		return nil, &ConflictError{Msg: "task already running", Existing: existing}
	}

	session := &models.TimerSession{
		ID:                 uuid.New(),
		UserID:             userID,
		TaskID:             taskID,
		Mode:               mode,
		StartAt:            s.now(),
		PlannedDurationSec: plannedSec,
		StartMemo:          startMemo,
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		// The storage-level unique index can still trip when two
		// starts race past the check above.
		if errors.Is(err, db.ErrDuplicateRunning) {
			existing, lookupErr := s.store.RunningSessionForTask(ctx, userID, taskID)
			if lookupErr == nil && existing != nil {
				return nil, &ConflictError{Msg: "task already running", Existing: existing}
			}
			return nil, &ConflictError{Msg: "task already running"}
		}
		return nil, fmt.Errorf("error creating session: %w", err)
	}

	return &models.SessionWithTask{Session: session, Task: task}, nil
}

// Stop completes a running session. When sessionID is nil the most
// recently started running session is targeted, a compatibility
// behavior for callers unaware of which session to stop. Stopping an
// already-completed session reports NotFound.
func (s *TimerService) Stop(ctx context.Context, userID uuid.UUID, sessionID *uuid.UUID, endMemo *string, reason string) (*models.SessionWithTask, error) {
	var session *models.TimerSession
	var err error

	if sessionID != nil {
		session, err = s.store.GetSession(ctx, userID, *sessionID)
		if err != nil {
			return nil, fmt.Errorf("error getting session: %w", err)
		}
		if session != nil && !session.Running() {
			session = nil
		}
	} else {
		session, err = s.store.LatestRunningSession(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("error getting running session: %w", err)
		}
	}
	if session == nil {
		return nil, &NotFoundError{Entity: "active session"}
	}

	if reason == "" {
		reason = models.EndManualStop
	}

	now := s.now()
	dur := durationSec(session.StartAt, now)
	session.EndAt = &now
	session.DurationSec = &dur
	session.EndMemo = endMemo
	session.EndReason = &reason

	if err := s.store.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("error updating session: %w", err)
	}

	task, err := s.store.GetTask(ctx, userID, session.TaskID)
	if err != nil {
		return nil, fmt.Errorf("error getting task: %w", err)
	}
	return &models.SessionWithTask{Session: session, Task: task}, nil
}

// EditParams carries the optional fields of an edit request. Absent
// fields retain their prior values.
type EditParams struct {
	StartAt   *time.Time
	EndAt     *time.Time
	StartMemo *string
	EndMemo   *string
}

// Edit applies a partial update to a session. Changing either endpoint
// recomputes the duration from the effective start and end; a still
// running session uses "now" as the provisional end, so the duration
// only becomes durable once the session is genuinely stopped.
func (s *TimerService) Edit(ctx context.Context, userID, sessionID uuid.UUID, params EditParams) (*models.SessionWithTask, error) {
	session, err := s.store.GetSession(ctx, userID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("error getting session: %w", err)
	}
	if session == nil {
		return nil, &NotFoundError{Entity: "session"}
	}

	introducingEnd := params.EndAt != nil && session.EndAt == nil

	if params.StartAt != nil {
		session.StartAt = *params.StartAt
	}
	if params.EndAt != nil {
		session.EndAt = params.EndAt
	}
	if params.StartMemo != nil {
		session.StartMemo = params.StartMemo
	}
	if params.EndMemo != nil {
		session.EndMemo = params.EndMemo
	}

	if params.StartAt != nil || params.EndAt != nil {
		end := s.now()
		if session.EndAt != nil {
			end = *session.EndAt
		}
		dur := durationSec(session.StartAt, end)
		session.DurationSec = &dur
	}

	if session.EndReason == nil && introducingEnd {
		reason := models.EndEdited
		session.EndReason = &reason
	}

	if err := s.store.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("error updating session: %w", err)
	}

	task, err := s.store.GetTask(ctx, userID, session.TaskID)
	if err != nil {
		return nil, fmt.Errorf("error getting task: %w", err)
	}
	return &models.SessionWithTask{Session: session, Task: task}, nil
}

// StopAll completes every running session with the given reason and
// returns the count stopped. A single "now" snapshot covers the batch
// so sessions stopped together carry the same end instant.
func (s *TimerService) StopAll(ctx context.Context, userID uuid.UUID, reason string) (int, error) {
	running, err := s.store.RunningSessions(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("error listing running sessions: %w", err)
	}

	now := s.now()
	for _, st := range running {
		session := st.Session
		dur := durationSec(session.StartAt, now)
		session.EndAt = &now
		session.DurationSec = &dur
		r := reason
		session.EndReason = &r
		if err := s.store.UpdateSession(ctx, session); err != nil {
			return 0, fmt.Errorf("error stopping session %s: %w", session.ID, err)
		}
	}
	return len(running), nil
}

// Current returns the running sessions with their tasks, newest first.
func (s *TimerService) Current(ctx context.Context, userID uuid.UUID) ([]*models.SessionWithTask, error) {
	return s.store.RunningSessions(ctx, userID)
}

// History returns completed sessions, start descending, paginated.
func (s *TimerService) History(ctx context.Context, userID uuid.UUID, page, limit int) ([]*models.SessionWithTask, int, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	sessions, total, err := s.store.SessionHistory(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, 0, err
	}
	totalPages := (total + limit - 1) / limit
	return sessions, total, totalPages, nil
}

// All returns every session for the user, for sync export.
func (s *TimerService) All(ctx context.Context, userID uuid.UUID) ([]*models.TimerSession, error) {
	return s.store.AllSessions(ctx, userID)
}

// Delete removes a session. Missing sessions are a no-op.
func (s *TimerService) Delete(ctx context.Context, userID, sessionID uuid.UUID) error {
	return s.store.DeleteSession(ctx, userID, sessionID)
}
