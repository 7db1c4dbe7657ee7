package db

import (
	"context"
	"errors"
	"time"

	"github.com/goldenhorse8610-droid/KuroTask/internal/db/models"

	"github.com/google/uuid"
)

// ErrDuplicateRunning is returned when inserting a session for a task
// that already has a running one. The partial unique index on
// timer_sessions(task_id) WHERE end_at IS NULL raises it atomically,
// so two concurrent starts cannot both win.
var ErrDuplicateRunning = errors.New("task already has a running session")

// Store is the persistence surface the services consume. Every lookup
// is scoped to a user id; methods returning a single record yield
// (nil, nil) when no matching row exists.
type Store interface {
	// Users
	GetOrCreateUser(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// Tasks
	CreateTask(ctx context.Context, task *models.Task) error
	GetTask(ctx context.Context, userID, taskID uuid.UUID) (*models.Task, error)
	ListTasks(ctx context.Context, userID uuid.UUID, includeArchived bool) ([]*models.Task, error)
	UpdateTask(ctx context.Context, task *models.Task) error
	FindTaskByName(ctx context.Context, userID uuid.UUID, query string) (*models.Task, error)
	PlannedTasksBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*models.Task, error)

	// Timer sessions
	CreateSession(ctx context.Context, session *models.TimerSession) error
	GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*models.TimerSession, error)
	UpdateSession(ctx context.Context, session *models.TimerSession) error
	DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) error
	RunningSessionForTask(ctx context.Context, userID, taskID uuid.UUID) (*models.TimerSession, error)
	RunningSessions(ctx context.Context, userID uuid.UUID) ([]*models.SessionWithTask, error)
	LatestRunningSession(ctx context.Context, userID uuid.UUID) (*models.TimerSession, error)
	SessionHistory(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.SessionWithTask, int, error)
	AllSessions(ctx context.Context, userID uuid.UUID) ([]*models.TimerSession, error)
	CompletedSessionsSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]*models.SessionWithTask, error)
	CompletedSessionsBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*models.SessionWithTask, error)
	LastSessionEndForTask(ctx context.Context, userID, taskID uuid.UUID) (*time.Time, error)

	// Wake logs
	CreateWakeLog(ctx context.Context, log *models.WakeLog) error
	GetWakeLog(ctx context.Context, userID uuid.UUID, date string) (*models.WakeLog, error)
	ListWakeLogs(ctx context.Context, userID uuid.UUID, limit int) ([]*models.WakeLog, error)
	DeleteWakeLog(ctx context.Context, userID uuid.UUID, date string) (bool, error)

	// Settings
	GetSettings(ctx context.Context, userID uuid.UUID) (*models.Settings, error)
	CreateSettings(ctx context.Context, settings *models.Settings) error
	UpdateSettings(ctx context.Context, settings *models.Settings) error

	// Quick messages
	CreateQuickMessage(ctx context.Context, msg *models.QuickMessage) error
	ListQuickMessages(ctx context.Context, userID uuid.UUID, limit int) ([]*models.QuickMessage, error)

	// Recurring rules
	UpsertRecurringRule(ctx context.Context, rule *models.RecurringRule) error
	ListRecurringRules(ctx context.Context, userID uuid.UUID) ([]*models.RecurringRule, error)
	DeleteRecurringRule(ctx context.Context, userID, ruleID uuid.UUID) error
	AllRecurringRules(ctx context.Context) ([]*models.RecurringRule, error)
}
