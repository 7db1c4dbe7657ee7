package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/goldenhorse8610-droid/KuroTask/internal/db"

	"github.com/google/uuid"
)

// ChartPoint is one bucket of the analytics chart.
type ChartPoint struct {
	Label   string `json:"label"`
	Seconds int    `json:"seconds"`
}

// DailyPoint is one day of the trailing-week summary.
type DailyPoint struct {
	Date    string `json:"date"`
	Minutes int    `json:"minutes"`
}

// CategoryPoint is one category of the summary breakdown.
type CategoryPoint struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// AnalyticsService buckets completed sessions into chart-ready series.
type AnalyticsService struct {
	store db.Store
	now   func() time.Time
}

func NewAnalyticsService(store db.Store) *AnalyticsService {
	return &AnalyticsService{store: store, now: time.Now}
}

// Data aggregates completed sessions for the period into labeled
// buckets keyed off each session's start timestamp:
//
//	day   -> hour of day, since start of today
//	week  -> calendar day (M/D), trailing 7 days
//	month -> calendar day (M/D), since the first of the month
//	year  -> month number, since Jan 1
//
// Hour and month-number buckets are sorted numerically ascending; the
// grouping map does not preserve chronology on its own. Day buckets
// for week and month are pre-seeded in order, so days without activity
// still appear at zero.
func (s *AnalyticsService) Data(ctx context.Context, userID uuid.UUID, period string, taskID *uuid.UUID, category *string) ([]ChartPoint, error) {
	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var windowStart time.Time
	switch period {
	case "day":
		windowStart = startOfDay
	case "week":
		windowStart = startOfDay.AddDate(0, 0, -6)
	case "month":
		windowStart = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case "year":
		windowStart = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	default:
		return nil, &ValidationError{Msg: "invalid period"}
	}

	sessions, err := s.store.CompletedSessionsSince(ctx, userID, windowStart)
	if err != nil {
		return nil, fmt.Errorf("error listing sessions: %w", err)
	}

	buckets := make(map[string]int)
	var order []string

	seed := func(label string) {
		if _, ok := buckets[label]; !ok {
			buckets[label] = 0
			order = append(order, label)
		}
	}

	// week and month emit every day in the window, active or not.
	switch period {
	case "week", "month":
		for d := windowStart; !d.After(now); d = d.AddDate(0, 0, 1) {
			seed(fmt.Sprintf("%d/%d", int(d.Month()), d.Day()))
		}
	}

	for _, st := range sessions {
		sess := st.Session
		if taskID != nil && sess.TaskID != *taskID {
			continue
		}
		if category != nil {
			if st.Task.Category == nil || *st.Task.Category != *category {
				continue
			}
		}

		var label string
		start := sess.StartAt.In(now.Location())
		switch period {
		case "day":
			label = strconv.Itoa(start.Hour())
		case "year":
			label = strconv.Itoa(int(start.Month()))
		default:
			label = fmt.Sprintf("%d/%d", int(start.Month()), start.Day())
		}

		seed(label)
		if sess.DurationSec != nil {
			buckets[label] += *sess.DurationSec
		}
	}

	if period == "day" || period == "year" {
		sort.Slice(order, func(i, j int) bool {
			a, _ := strconv.Atoi(order[i])
			b, _ := strconv.Atoi(order[j])
			return a < b
		})
	}

	chart := make([]ChartPoint, 0, len(order))
	for _, label := range order {
		chart = append(chart, ChartPoint{Label: label, Seconds: buckets[label]})
	}
	return chart, nil
}

// Summary aggregates the trailing 7 days into a per-day minutes series
// pre-seeded with every date at zero, plus a per-category minutes
// breakdown with an "uncategorized" bucket.
func (s *AnalyticsService) Summary(ctx context.Context, userID uuid.UUID) ([]DailyPoint, []CategoryPoint, error) {
	now := s.now()
	windowStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -6)

	sessions, err := s.store.CompletedSessionsSince(ctx, userID, windowStart)
	if err != nil {
		return nil, nil, fmt.Errorf("error listing sessions: %w", err)
	}

	daily := make([]DailyPoint, 7)
	index := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		date := windowStart.AddDate(0, 0, i).Format("2006-01-02")
		daily[i] = DailyPoint{Date: date}
		index[date] = i
	}

	categories := make(map[string]int)
	var catOrder []string

	for _, st := range sessions {
		sess := st.Session
		minutes := 0
		if sess.DurationSec != nil {
			minutes = *sess.DurationSec / 60
		}

		date := sess.StartAt.In(now.Location()).Format("2006-01-02")
		if i, ok := index[date]; ok {
			daily[i].Minutes += minutes
		}

		name := "uncategorized"
		if st.Task.Category != nil && *st.Task.Category != "" {
			name = *st.Task.Category
		}
		if _, ok := categories[name]; !ok {
			catOrder = append(catOrder, name)
		}
		categories[name] += minutes
	}

	breakdown := make([]CategoryPoint, 0, len(catOrder))
	for _, name := range catOrder {
		breakdown = append(breakdown, CategoryPoint{Name: name, Value: categories[name]})
	}
	return daily, breakdown, nil
}
