package server

import (
	"net/http"

	"github.com/goldenhorse8610-droid/KuroTask/internal/service"

	"github.com/google/uuid"
)

func (s *Server) handleIdleStatus(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	idleTasks, thresholdDays, err := s.idle.Status(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"idleTasks":     idleTasks,
		"thresholdDays": thresholdDays,
	})
}

func (s *Server) handleAnalyticsData(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	q := r.URL.Query()

	period := q.Get("period")
	if period == "" {
		period = "day"
	}

	var taskID *uuid.UUID
	if raw := q.Get("taskId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid taskId")
			return
		}
		taskID = &id
	}
	var category *string
	if raw := q.Get("categoryId"); raw != "" {
		category = &raw
	} else if raw := q.Get("category"); raw != "" {
		category = &raw
	}

	points, err := s.analytics.Data(r.Context(), user.ID, period, taskID, category)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"period":    period,
		"chartData": points,
	})
}

func (s *Server) handleAnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	daily, categories, err := s.analytics.Summary(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"daily":      daily,
		"categories": categories,
	})
}

func (s *Server) handleWakeRecord(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	logEntry, err := s.wake.Record(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, logEntry)
}

func (s *Server) handleWakeList(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	logs, err := s.wake.List(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (s *Server) handleWakeToday(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	logEntry, err := s.wake.Today(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"wakeLog": logEntry})
}

func (s *Server) handleWakeDeleteToday(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	if err := s.wake.DeleteToday(r.Context(), user.ID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "wake log deleted"})
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	settings, err := s.settings.Get(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	var body struct {
		WakeWarningTime     *string `json:"wakeWarningTime"`
		ElapsedRemindMin    *int    `json:"elapsedRemindMin"`
		ElapsedRemindRepeat *bool   `json:"elapsedRemindRepeat"`
		SilentHoursStart    *string `json:"silentHoursStart"`
		SilentHoursEnd      *string `json:"silentHoursEnd"`
		IdleThresholdDays   *int    `json:"idleThresholdDays"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	settings, err := s.settings.Update(r.Context(), user.ID, service.UpdateSettingsParams{
		WakeWarningTime:     body.WakeWarningTime,
		ElapsedRemindMin:    body.ElapsedRemindMin,
		ElapsedRemindRepeat: body.ElapsedRemindRepeat,
		SilentHoursStart:    body.SilentHoursStart,
		SilentHoursEnd:      body.SilentHoursEnd,
		IdleThresholdDays:   body.IdleThresholdDays,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleQuickList(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	messages, err := s.quickCmds.Messages(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func (s *Server) handleQuickExecute(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	var body struct {
		Content string `json:"content"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	userMsg, reply, err := s.quickCmds.Execute(r.Context(), user.ID, body.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": userMsg,
		"reply":   reply,
	})
}

func (s *Server) handleListRecurring(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	rules, err := s.recurring.List(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rules)
}

func (s *Server) handleUpsertRecurring(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	var body struct {
		TaskID            uuid.UUID `json:"taskId"`
		RuleType          string    `json:"ruleType"`
		Payload           *string   `json:"payload"`
		ReminderEnabled   bool      `json:"reminderEnabled"`
		ReminderStartTime *string   `json:"reminderStartTime"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.TaskID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "taskId and ruleType are required")
		return
	}

	rule, err := s.recurring.Upsert(r.Context(), user.ID, service.UpsertRuleParams{
		TaskID:            body.TaskID,
		RuleType:          body.RuleType,
		Payload:           body.Payload,
		ReminderEnabled:   body.ReminderEnabled,
		ReminderStartTime: body.ReminderStartTime,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rule)
}

func (s *Server) handleDeleteRecurring(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	ruleID, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.recurring.Delete(r.Context(), user.ID, ruleID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "rule deleted"})
}
