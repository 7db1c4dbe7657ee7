package db

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goldenhorse8610-droid/KuroTask/internal/db/models"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store used by tests. It mirrors the
// Postgres semantics, including the one-running-session-per-task
// uniqueness rule and (nil, nil) lookups.
type MemoryStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*models.User
	tasks    map[uuid.UUID]*models.Task
	sessions map[uuid.UUID]*models.TimerSession
	wakeLogs map[uuid.UUID]*models.WakeLog
	settings map[uuid.UUID]*models.Settings
	quick    []*models.QuickMessage
	rules    map[uuid.UUID]*models.RecurringRule
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[uuid.UUID]*models.User),
		tasks:    make(map[uuid.UUID]*models.Task),
		sessions: make(map[uuid.UUID]*models.TimerSession),
		wakeLogs: make(map[uuid.UUID]*models.WakeLog),
		settings: make(map[uuid.UUID]*models.Settings),
		rules:    make(map[uuid.UUID]*models.RecurringRule),
	}
}

func copyTask(t *models.Task) *models.Task {
	c := *t
	return &c
}

func copySession(s *models.TimerSession) *models.TimerSession {
	c := *s
	return &c
}

// Users

func (m *MemoryStore) GetOrCreateUser(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	u := &models.User{ID: uuid.New(), Email: email, CreatedAt: time.Now()}
	m.users[u.ID] = u
	c := *u
	return &c, nil
}

func (m *MemoryStore) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

// Tasks

func (m *MemoryStore) CreateTask(ctx context.Context, task *models.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[task.ID] = copyTask(task)
	return nil
}

func (m *MemoryStore) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[taskID]
	if !ok || t.UserID != userID {
		return nil, nil
	}
	return copyTask(t), nil
}

func (m *MemoryStore) ListTasks(ctx context.Context, userID uuid.UUID, includeArchived bool) ([]*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var tasks []*models.Task
	for _, t := range m.tasks {
		if t.UserID != userID {
			continue
		}
		if t.IsArchived && !includeArchived {
			continue
		}
		tasks = append(tasks, copyTask(t))
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (m *MemoryStore) UpdateTask(ctx context.Context, task *models.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return nil
	}
	m.tasks[task.ID] = copyTask(task)
	return nil
}

func (m *MemoryStore) FindTaskByName(ctx context.Context, userID uuid.UUID, query string) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var match *models.Task
	for _, t := range m.tasks {
		if t.UserID != userID || t.IsArchived {
			continue
		}
		if !strings.Contains(strings.ToLower(t.Name), strings.ToLower(query)) {
			continue
		}
		if match == nil || t.CreatedAt.After(match.CreatedAt) {
			match = t
		}
	}
	if match == nil {
		return nil, nil
	}
	return copyTask(match), nil
}

func (m *MemoryStore) PlannedTasksBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var tasks []*models.Task
	for _, t := range m.tasks {
		if t.UserID != userID || t.IsArchived || t.PlannedDate == nil {
			continue
		}
		if t.PlannedDate.Before(from) || t.PlannedDate.After(to) {
			continue
		}
		tasks = append(tasks, copyTask(t))
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].PlannedDate.Before(*tasks[j].PlannedDate)
	})
	return tasks, nil
}

// Timer sessions

func (m *MemoryStore) CreateSession(ctx context.Context, session *models.TimerSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if session.EndAt == nil {
		for _, s := range m.sessions {
			if s.TaskID == session.TaskID && s.EndAt == nil {
				return ErrDuplicateRunning
			}
		}
	}
	m.sessions[session.ID] = copySession(session)
	return nil
}

func (m *MemoryStore) GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*models.TimerSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok || s.UserID != userID {
		return nil, nil
	}
	return copySession(s), nil
}

func (m *MemoryStore) UpdateSession(ctx context.Context, session *models.TimerSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.sessions[session.ID]
	if !ok || existing.UserID != session.UserID {
		return nil
	}
	m.sessions[session.ID] = copySession(session)
	return nil
}

func (m *MemoryStore) DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if ok && s.UserID == userID {
		delete(m.sessions, sessionID)
	}
	return nil
}

func (m *MemoryStore) RunningSessionForTask(ctx context.Context, userID, taskID uuid.UUID) (*models.TimerSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.UserID == userID && s.TaskID == taskID && s.EndAt == nil {
			return copySession(s), nil
		}
	}
	return nil, nil
}

func (m *MemoryStore) RunningSessions(ctx context.Context, userID uuid.UUID) ([]*models.SessionWithTask, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var joined []*models.SessionWithTask
	for _, s := range m.sessions {
		if s.UserID != userID || s.EndAt != nil {
			continue
		}
		joined = append(joined, m.joinLocked(s))
	}
	sort.Slice(joined, func(i, j int) bool {
		return joined[i].Session.StartAt.After(joined[j].Session.StartAt)
	})
	return joined, nil
}

func (m *MemoryStore) LatestRunningSession(ctx context.Context, userID uuid.UUID) (*models.TimerSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *models.TimerSession
	for _, s := range m.sessions {
		if s.UserID != userID || s.EndAt != nil {
			continue
		}
		if latest == nil || s.StartAt.After(latest.StartAt) {
			latest = s
		}
	}
	if latest == nil {
		return nil, nil
	}
	return copySession(latest), nil
}

func (m *MemoryStore) SessionHistory(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.SessionWithTask, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var joined []*models.SessionWithTask
	for _, s := range m.sessions {
		if s.UserID != userID || s.EndAt == nil {
			continue
		}
		joined = append(joined, m.joinLocked(s))
	}
	sort.Slice(joined, func(i, j int) bool {
		return joined[i].Session.StartAt.After(joined[j].Session.StartAt)
	})
	total := len(joined)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return joined[offset:end], total, nil
}

func (m *MemoryStore) AllSessions(ctx context.Context, userID uuid.UUID) ([]*models.TimerSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var sessions []*models.TimerSession
	for _, s := range m.sessions {
		if s.UserID != userID {
			continue
		}
		sessions = append(sessions, copySession(s))
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartAt.After(sessions[j].StartAt)
	})
	return sessions, nil
}

func (m *MemoryStore) CompletedSessionsSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]*models.SessionWithTask, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var joined []*models.SessionWithTask
	for _, s := range m.sessions {
		if s.UserID != userID || s.EndAt == nil || s.StartAt.Before(since) {
			continue
		}
		joined = append(joined, m.joinLocked(s))
	}
	sort.Slice(joined, func(i, j int) bool {
		return joined[i].Session.StartAt.Before(joined[j].Session.StartAt)
	})
	return joined, nil
}

func (m *MemoryStore) CompletedSessionsBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*models.SessionWithTask, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var joined []*models.SessionWithTask
	for _, s := range m.sessions {
		if s.UserID != userID || s.EndAt == nil {
			continue
		}
		if s.StartAt.Before(from) || s.StartAt.After(to) {
			continue
		}
		joined = append(joined, m.joinLocked(s))
	}
	sort.Slice(joined, func(i, j int) bool {
		return joined[i].Session.StartAt.Before(joined[j].Session.StartAt)
	})
	return joined, nil
}

func (m *MemoryStore) LastSessionEndForTask(ctx context.Context, userID, taskID uuid.UUID) (*time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var last *time.Time
	for _, s := range m.sessions {
		if s.UserID != userID || s.TaskID != taskID || s.EndAt == nil {
			continue
		}
		if last == nil || s.EndAt.After(*last) {
			end := *s.EndAt
			last = &end
		}
	}
	return last, nil
}

func (m *MemoryStore) joinLocked(s *models.TimerSession) *models.SessionWithTask {
	st := &models.SessionWithTask{Session: copySession(s)}
	if t, ok := m.tasks[s.TaskID]; ok {
		st.Task = copyTask(t)
	} else {
		st.Task = &models.Task{ID: s.TaskID, UserID: s.UserID}
	}
	return st
}

// Wake logs

func (m *MemoryStore) CreateWakeLog(ctx context.Context, log *models.WakeLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.wakeLogs {
		if w.UserID == log.UserID && w.Date == log.Date {
			return ErrDuplicateWakeLog
		}
	}
	c := *log
	m.wakeLogs[log.ID] = &c
	return nil
}

func (m *MemoryStore) GetWakeLog(ctx context.Context, userID uuid.UUID, date string) (*models.WakeLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.wakeLogs {
		if w.UserID == userID && w.Date == date {
			c := *w
			return &c, nil
		}
	}
	return nil, nil
}

func (m *MemoryStore) ListWakeLogs(ctx context.Context, userID uuid.UUID, limit int) ([]*models.WakeLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var logs []*models.WakeLog
	for _, w := range m.wakeLogs {
		if w.UserID != userID {
			continue
		}
		c := *w
		logs = append(logs, &c)
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].Date > logs[j].Date })
	if len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}

func (m *MemoryStore) DeleteWakeLog(ctx context.Context, userID uuid.UUID, date string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, w := range m.wakeLogs {
		if w.UserID == userID && w.Date == date {
			delete(m.wakeLogs, id)
			return true, nil
		}
	}
	return false, nil
}

// Settings

func (m *MemoryStore) GetSettings(ctx context.Context, userID uuid.UUID) (*models.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.settings[userID]
	if !ok {
		return nil, nil
	}
	c := *s
	return &c, nil
}

func (m *MemoryStore) CreateSettings(ctx context.Context, settings *models.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *settings
	m.settings[settings.UserID] = &c
	return nil
}

func (m *MemoryStore) UpdateSettings(ctx context.Context, settings *models.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.settings[settings.UserID]; !ok {
		return nil
	}
	c := *settings
	m.settings[settings.UserID] = &c
	return nil
}

// Quick messages

func (m *MemoryStore) CreateQuickMessage(ctx context.Context, msg *models.QuickMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *msg
	m.quick = append(m.quick, &c)
	return nil
}

func (m *MemoryStore) ListQuickMessages(ctx context.Context, userID uuid.UUID, limit int) ([]*models.QuickMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var messages []*models.QuickMessage
	for _, msg := range m.quick {
		if msg.UserID != userID {
			continue
		}
		c := *msg
		messages = append(messages, &c)
		if len(messages) == limit {
			break
		}
	}
	return messages, nil
}

// Recurring rules

func (m *MemoryStore) UpsertRecurringRule(ctx context.Context, rule *models.RecurringRule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, r := range m.rules {
		if r.TaskID == rule.TaskID {
			delete(m.rules, id)
		}
	}
	c := *rule
	m.rules[rule.ID] = &c
	return nil
}

func (m *MemoryStore) ListRecurringRules(ctx context.Context, userID uuid.UUID) ([]*models.RecurringRule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rules []*models.RecurringRule
	for _, r := range m.rules {
		if r.UserID != userID {
			continue
		}
		c := *r
		rules = append(rules, &c)
	}
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].CreatedAt.Before(rules[j].CreatedAt)
	})
	return rules, nil
}

func (m *MemoryStore) DeleteRecurringRule(ctx context.Context, userID, ruleID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rules[ruleID]
	if ok && r.UserID == userID {
		delete(m.rules, ruleID)
	}
	return nil
}

func (m *MemoryStore) AllRecurringRules(ctx context.Context) ([]*models.RecurringRule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rules []*models.RecurringRule
	for _, r := range m.rules {
		c := *r
		rules = append(rules, &c)
	}
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].CreatedAt.Before(rules[j].CreatedAt)
	})
	return rules, nil
}
