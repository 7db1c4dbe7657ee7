package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/goldenhorse8610-droid/KuroTask/internal/db"
	"github.com/goldenhorse8610-droid/KuroTask/internal/db/models"

	"github.com/google/uuid"
)

// RecurringService manages per-task recurrence rules and materializes
// the planned date onto tasks whose rule fires on a given day.
type RecurringService struct {
	store db.Store
}

func NewRecurringService(store db.Store) *RecurringService {
	return &RecurringService{store: store}
}

func (s *RecurringService) List(ctx context.Context, userID uuid.UUID) ([]*models.RecurringRule, error) {
	return s.store.ListRecurringRules(ctx, userID)
}

// UpsertRuleParams carries a rule create/replace request.
type UpsertRuleParams struct {
	TaskID            uuid.UUID
	RuleType          string
	Payload           *string
	ReminderEnabled   bool
	ReminderStartTime *string
}

func (s *RecurringService) Upsert(ctx context.Context, userID uuid.UUID, params UpsertRuleParams) (*models.RecurringRule, error) {
	if params.RuleType == "" {
		return nil, &ValidationError{Msg: "taskId and ruleType are required"}
	}
	if !models.ValidRuleType(params.RuleType) {
		return nil, &ValidationError{Msg: "invalid ruleType"}
	}

	task, err := s.store.GetTask(ctx, userID, params.TaskID)
	if err != nil {
		return nil, fmt.Errorf("error getting task: %w", err)
	}
	if task == nil {
		return nil, &NotFoundError{Entity: "task"}
	}

	rule := &models.RecurringRule{
		ID:                uuid.New(),
		UserID:            userID,
		TaskID:            params.TaskID,
		RuleType:          params.RuleType,
		Payload:           params.Payload,
		ReminderEnabled:   params.ReminderEnabled,
		ReminderStartTime: params.ReminderStartTime,
		CreatedAt:         time.Now(),
	}
	if err := s.store.UpsertRecurringRule(ctx, rule); err != nil {
		return nil, fmt.Errorf("error saving rule: %w", err)
	}
	return rule, nil
}

func (s *RecurringService) Delete(ctx context.Context, userID, ruleID uuid.UUID) error {
	return s.store.DeleteRecurringRule(ctx, userID, ruleID)
}

// rulePayload is the JSON body carried by weekly and monthly rules.
type rulePayload struct {
	Weekdays []int `json:"weekdays"`
	Day      int   `json:"day"`
}

// FiresOn reports whether a rule matches the given calendar day.
// Daily rules always fire. Weekly rules fire on the payload weekdays
// (0=Sunday). Monthly rules fire on the payload day-of-month.
func FiresOn(rule *models.RecurringRule, day time.Time) bool {
	switch rule.RuleType {
	case models.RecurDaily:
		return true
	case models.RecurWeekly:
		p := parsePayload(rule.Payload)
		for _, wd := range p.Weekdays {
			if wd == int(day.Weekday()) {
				return true
			}
		}
		return false
	case models.RecurMonthly:
		p := parsePayload(rule.Payload)
		return p.Day == day.Day()
	}
	return false
}

func parsePayload(raw *string) rulePayload {
	var p rulePayload
	if raw != nil {
		// Malformed payloads simply never fire.
		_ = json.Unmarshal([]byte(*raw), &p)
	}
	return p
}

// MaterializeDue stamps the planned date onto every task whose rule
// fires on the given day. Returns the number of tasks updated.
func (s *RecurringService) MaterializeDue(ctx context.Context, day time.Time) (int, error) {
	rules, err := s.store.AllRecurringRules(ctx)
	if err != nil {
		return 0, fmt.Errorf("error listing rules: %w", err)
	}

	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	updated := 0
	for _, rule := range rules {
		if !FiresOn(rule, day) {
			continue
		}
		task, err := s.store.GetTask(ctx, rule.UserID, rule.TaskID)
		if err != nil {
			return updated, fmt.Errorf("error getting task: %w", err)
		}
		if task == nil || task.IsArchived {
			continue
		}
		if task.PlannedDate != nil && task.PlannedDate.Equal(midnight) {
			continue
		}
		task.PlannedDate = &midnight
		if err := s.store.UpdateTask(ctx, task); err != nil {
			return updated, fmt.Errorf("error updating task: %w", err)
		}
		updated++
	}
	return updated, nil
}
