package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/goldenhorse8610-droid/KuroTask/internal/db/models"
	"github.com/goldenhorse8610-droid/KuroTask/internal/projector"
	"github.com/goldenhorse8610-droid/KuroTask/internal/service"

	"github.com/google/uuid"
)

// currentEntry is one running session plus its projection at the time
// of the request.
type currentEntry struct {
	Session    *models.TimerSession `json:"session"`
	Task       *models.Task         `json:"task"`
	Projection projector.State      `json:"projection"`
}

func (s *Server) handleTimerCurrent(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	running, err := s.timers.Current(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	now := time.Now()
	entries := make([]currentEntry, 0, len(running))
	for _, st := range running {
		entries = append(entries, currentEntry{
			Session:    st.Session,
			Task:       st.Task,
			Projection: projector.Project(st.Session, now),
		})
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleTimerStart(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	var body struct {
		TaskID             uuid.UUID `json:"taskId"`
		Mode               string    `json:"mode"`
		PlannedDurationSec *int      `json:"plannedDurationSec"`
		StartMemo          *string   `json:"startMemo"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.TaskID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "taskId is required")
		return
	}

	started, err := s.timers.Start(r.Context(), user.ID, body.TaskID, body.Mode, body.PlannedDurationSec, body.StartMemo)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, started)
}

func (s *Server) handleTimerStop(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	var body struct {
		SessionID *uuid.UUID `json:"sessionId"`
		EndMemo   *string    `json:"endMemo"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	stopped, err := s.timers.Stop(r.Context(), user.ID, body.SessionID, body.EndMemo, models.EndManualStop)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stopped)
}

func (s *Server) handleTimerEdit(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	sessionID, ok := pathID(w, r)
	if !ok {
		return
	}
	var body struct {
		StartAt   *time.Time `json:"startAt"`
		EndAt     *time.Time `json:"endAt"`
		StartMemo *string    `json:"startMemo"`
		EndMemo   *string    `json:"endMemo"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	edited, err := s.timers.Edit(r.Context(), user.ID, sessionID, service.EditParams{
		StartAt:   body.StartAt,
		EndAt:     body.EndAt,
		StartMemo: body.StartMemo,
		EndMemo:   body.EndMemo,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, edited)
}

func (s *Server) handleTimerDelete(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	sessionID, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.timers.Delete(r.Context(), user.ID, sessionID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleTimerAll(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	sessions, err := s.timers.All(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleTimerHistory(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 20)

	sessions, total, totalPages, err := s.timers.History(r.Context(), user.ID, page, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sessions":   sessions,
		"total":      total,
		"page":       page,
		"totalPages": totalPages,
	})
}

func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
