// Package server exposes the REST API. Every authenticated route is
// scoped to the owner resolved from the bearer token; entities owned
// by somebody else read as 404 so nothing about their existence leaks.
package server

import (
	"net/http"

	"github.com/goldenhorse8610-droid/KuroTask/internal/auth"
	"github.com/goldenhorse8610-droid/KuroTask/internal/db"
	"github.com/goldenhorse8610-droid/KuroTask/internal/service"
)

type Server struct {
	store db.Store
	codec *auth.TokenCodec

	authSvc   *auth.Service
	tasks     *service.TaskService
	timers    *service.TimerService
	idle      *service.IdleService
	analytics *service.AnalyticsService
	wake      *service.WakeService
	settings  *service.SettingsService
	quickCmds *service.QuickService
	recurring *service.RecurringService
}

func New(store db.Store, codec *auth.TokenCodec, authSvc *auth.Service) *Server {
	tasks := service.NewTaskService(store)
	timers := service.NewTimerService(store)
	return &Server{
		store:     store,
		codec:     codec,
		authSvc:   authSvc,
		tasks:     tasks,
		timers:    timers,
		idle:      service.NewIdleService(store),
		analytics: service.NewAnalyticsService(store),
		wake:      service.NewWakeService(store),
		settings:  service.NewSettingsService(store),
		quickCmds: service.NewQuickService(store, tasks, timers),
		recurring: service.NewRecurringService(store),
	}
}

// Recurring exposes the recurring-rule service for the scheduler.
func (s *Server) Recurring() *service.RecurringService {
	return s.recurring
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /auth/request-link", s.handleRequestLink)
	mux.HandleFunc("POST /auth/verify", s.handleVerify)
	mux.HandleFunc("GET /auth/me", s.withAuth(s.handleMe))

	mux.HandleFunc("GET /tasks", s.withAuth(s.handleListTasks))
	mux.HandleFunc("POST /tasks", s.withAuth(s.handleCreateTask))
	mux.HandleFunc("PATCH /tasks/{id}", s.withAuth(s.handleUpdateTask))
	mux.HandleFunc("POST /tasks/{id}/toggle-favorite", s.withAuth(s.handleToggleFavorite))
	mux.HandleFunc("POST /tasks/{id}/archive", s.withAuth(s.handleArchiveTask))

	mux.HandleFunc("GET /timer/current", s.withAuth(s.handleTimerCurrent))
	mux.HandleFunc("POST /timer/start", s.withAuth(s.handleTimerStart))
	mux.HandleFunc("POST /timer/stop", s.withAuth(s.handleTimerStop))
	mux.HandleFunc("PATCH /timer/sessions/{id}", s.withAuth(s.handleTimerEdit))
	mux.HandleFunc("DELETE /timer/sessions/{id}", s.withAuth(s.handleTimerDelete))
	mux.HandleFunc("GET /timer/sessions", s.withAuth(s.handleTimerAll))
	mux.HandleFunc("GET /timer/history", s.withAuth(s.handleTimerHistory))

	mux.HandleFunc("GET /idle-monitor/status", s.withAuth(s.handleIdleStatus))

	mux.HandleFunc("GET /analytics/data", s.withAuth(s.handleAnalyticsData))
	mux.HandleFunc("GET /analytics/summary", s.withAuth(s.handleAnalyticsSummary))

	mux.HandleFunc("POST /wake", s.withAuth(s.handleWakeRecord))
	mux.HandleFunc("GET /wake", s.withAuth(s.handleWakeList))
	mux.HandleFunc("GET /wake/today", s.withAuth(s.handleWakeToday))
	mux.HandleFunc("DELETE /wake/today", s.withAuth(s.handleWakeDeleteToday))

	mux.HandleFunc("GET /settings", s.withAuth(s.handleGetSettings))
	mux.HandleFunc("PATCH /settings", s.withAuth(s.handleUpdateSettings))

	mux.HandleFunc("GET /quick", s.withAuth(s.handleQuickList))
	mux.HandleFunc("POST /quick", s.withAuth(s.handleQuickExecute))

	mux.HandleFunc("GET /recurring", s.withAuth(s.handleListRecurring))
	mux.HandleFunc("POST /recurring", s.withAuth(s.handleUpsertRecurring))
	mux.HandleFunc("DELETE /recurring/{id}", s.withAuth(s.handleDeleteRecurring))

	mux.HandleFunc("GET /calendar/events", s.withAuth(s.handleCalendarEvents))
	mux.HandleFunc("GET /calendar/feed-url", s.withAuth(s.handleFeedURL))
	mux.HandleFunc("GET /calendar/feed/{token}", s.handleCalendarFeed)

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "KuroTask backend is running",
	})
}
