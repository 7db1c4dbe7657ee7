package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goldenhorse8610-droid/KuroTask/internal/ics"

	"github.com/google/uuid"
)

// calendarEvent is one entry of the JSON calendar view: either a
// planned task or a completed session.
type calendarEvent struct {
	ID       string     `json:"id"`
	Kind     string     `json:"kind"`
	Title    string     `json:"title"`
	Category *string    `json:"category"`
	Start    time.Time  `json:"start"`
	End      *time.Time `json:"end"`
	AllDay   bool       `json:"allDay"`
}

func parseTimeParam(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func (s *Server) calendarWindow(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, -1, 0)
	to := now.AddDate(0, 1, 0)

	q := r.URL.Query()
	if raw := q.Get("month"); raw != "" {
		t, err := time.Parse("2006-01", raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid month")
		}
		return t, t.AddDate(0, 1, 0), nil
	}
	if raw := q.Get("from"); raw != "" {
		t, err := parseTimeParam(raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid from")
		}
		from = t
	}
	if raw := q.Get("to"); raw != "" {
		t, err := parseTimeParam(raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid to")
		}
		to = t
	}
	return from, to, nil
}

func (s *Server) collectEvents(r *http.Request, userID uuid.UUID, from, to time.Time) ([]calendarEvent, error) {
	ctx := r.Context()
	events := []calendarEvent{}

	planned, err := s.store.PlannedTasksBetween(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	for _, task := range planned {
		ev := calendarEvent{
			ID:       "task-" + task.ID.String(),
			Kind:     "planned",
			Title:    task.Name,
			Category: task.Category,
		}
		if task.PlannedStartAt != nil {
			ev.Start = *task.PlannedStartAt
			ev.End = task.PlannedEndAt
		} else {
			ev.Start = *task.PlannedDate
			ev.AllDay = true
		}
		events = append(events, ev)
	}

	completed, err := s.store.CompletedSessionsBetween(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	for _, st := range completed {
		events = append(events, calendarEvent{
			ID:       "session-" + st.Session.ID.String(),
			Kind:     "session",
			Title:    st.Task.Name,
			Category: st.Task.Category,
			Start:    st.Session.StartAt,
			End:      st.Session.EndAt,
		})
	}
	return events, nil
}

// handleCalendarEvents returns the window's events grouped by day, the
// shape the month-grid view consumes directly.
func (s *Server) handleCalendarEvents(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	from, to, err := s.calendarWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	events, err := s.collectEvents(r, user.ID, from, to)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	byDay := make(map[string][]calendarEvent)
	for _, ev := range events {
		day := ev.Start.Format("2006-01-02")
		byDay[day] = append(byDay[day], ev)
	}
	writeJSON(w, http.StatusOK, byDay)
}

func (s *Server) handleFeedURL(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	token := s.codec.MintFeedToken(user.ID)
	writeJSON(w, http.StatusOK, map[string]string{
		"url": "/calendar/feed/" + token + ".ics",
	})
}

// handleCalendarFeed serves the iCalendar feed. The token in the path
// authenticates on its own so calendar clients can poll with a bare
// URL and no headers.
func (s *Server) handleCalendarFeed(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSuffix(r.PathValue("token"), ".ics")
	userID, err := s.codec.ParseFeedToken(token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid feed token")
		return
	}

	from, to, err := s.calendarWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	events, err := s.collectEvents(r, userID, from, to)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	icsEvents := make([]ics.Event, 0, len(events))
	for _, ev := range events {
		end := ev.Start
		if ev.End != nil {
			end = *ev.End
		}
		desc := ""
		if ev.Category != nil {
			desc = "Category: " + *ev.Category
		}
		icsEvents = append(icsEvents, ics.Event{
			UID:         ev.ID + "@kurotask",
			Summary:     ev.Title,
			Description: desc,
			Start:       ev.Start,
			End:         end,
			AllDay:      ev.AllDay,
		})
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ics.Calendar("KuroTask", icsEvents))
}
