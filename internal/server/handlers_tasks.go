package server

import (
	"net/http"
	"time"

	"github.com/goldenhorse8610-droid/KuroTask/internal/service"

	"github.com/google/uuid"
)

// pathID parses the {id} path segment; malformed ids read as a missing
// resource rather than a client syntax error.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	tasks, err := s.tasks.List(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	var body struct {
		Name               string     `json:"name"`
		Kind               string     `json:"kind"`
		Category           *string    `json:"category"`
		Memo               *string    `json:"memo"`
		IsFavorite         bool       `json:"isFavorite"`
		IdleMonitorEnabled bool       `json:"idleMonitorEnabled"`
		DefaultDurationSec *int       `json:"defaultDurationSec"`
		PlannedDate        *time.Time `json:"plannedDate"`
		PlannedStartAt     *time.Time `json:"plannedStartAt"`
		PlannedEndAt       *time.Time `json:"plannedEndAt"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	task, err := s.tasks.Create(r.Context(), user.ID, service.CreateTaskParams{
		Name:               body.Name,
		Kind:               body.Kind,
		Category:           body.Category,
		Memo:               body.Memo,
		IsFavorite:         body.IsFavorite,
		IdleMonitorEnabled: body.IdleMonitorEnabled,
		DefaultDurationSec: body.DefaultDurationSec,
		PlannedDate:        body.PlannedDate,
		PlannedStartAt:     body.PlannedStartAt,
		PlannedEndAt:       body.PlannedEndAt,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	taskID, ok := pathID(w, r)
	if !ok {
		return
	}
	var body struct {
		Name               *string    `json:"name"`
		Category           *string    `json:"category"`
		Memo               *string    `json:"memo"`
		IsFavorite         *bool      `json:"isFavorite"`
		IdleMonitorEnabled *bool      `json:"idleMonitorEnabled"`
		DefaultDurationSec *int       `json:"defaultDurationSec"`
		PlannedDate        *time.Time `json:"plannedDate"`
		PlannedStartAt     *time.Time `json:"plannedStartAt"`
		PlannedEndAt       *time.Time `json:"plannedEndAt"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	task, err := s.tasks.Update(r.Context(), user.ID, taskID, service.UpdateTaskParams{
		Name:               body.Name,
		Category:           body.Category,
		Memo:               body.Memo,
		IsFavorite:         body.IsFavorite,
		IdleMonitorEnabled: body.IdleMonitorEnabled,
		DefaultDurationSec: body.DefaultDurationSec,
		PlannedDate:        body.PlannedDate,
		PlannedStartAt:     body.PlannedStartAt,
		PlannedEndAt:       body.PlannedEndAt,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	taskID, ok := pathID(w, r)
	if !ok {
		return
	}
	task, err := s.tasks.ToggleFavorite(r.Context(), user.ID, taskID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleArchiveTask(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	taskID, ok := pathID(w, r)
	if !ok {
		return
	}
	task, err := s.tasks.Archive(r.Context(), user.ID, taskID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}
