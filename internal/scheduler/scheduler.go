// Package scheduler runs the cron-driven background jobs, currently
// the daily recurring-rule materializer. It lives outside the request
// path; request handling never blocks on it.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/goldenhorse8610-droid/KuroTask/internal/service"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cron      *cron.Cron
	recurring *service.RecurringService
}

func New(recurring *service.RecurringService, loc *time.Location) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		recurring: recurring,
	}
}

// Start registers the daily materializer (shortly after midnight) and
// runs one pass immediately so a restart never skips today.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("5 0 * * *", s.materialize); err != nil {
		return err
	}
	s.cron.Start()
	go s.materialize()
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) materialize() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	updated, err := s.recurring.MaterializeDue(ctx, time.Now())
	if err != nil {
		log.Printf("[scheduler] recurring materialize failed: %v", err)
		return
	}
	if updated > 0 {
		log.Printf("[scheduler] materialized %d recurring task(s)", updated)
	}
}
