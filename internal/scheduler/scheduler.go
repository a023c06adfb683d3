package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/wakaweather/confidence-meter/internal/alerts"
)

// Scheduler periodically refreshes the disaster alert cache.
type Scheduler struct {
	scheduler *gocron.Scheduler
	feed      *alerts.Feed
	cache     *alerts.Cache
	interval  time.Duration
	log       *logrus.Logger
}

// New creates a Scheduler refreshing cache from feed every interval.
func New(feed *alerts.Feed, cache *alerts.Cache, interval time.Duration, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		feed:      feed,
		cache:     cache,
		interval:  interval,
		log:       log,
	}
}

// Start schedules the refresh job, runs it once immediately, and starts the
// underlying scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 30
	}

	_, err := s.scheduler.Every(minutes).Minutes().StartImmediately().Do(s.refresh)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *Scheduler) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	got, err := s.feed.Fetch(ctx)
	if err != nil {
		// Keep the last good snapshot.
		s.log.Warnf("alert feed refresh failed: %v", err)
		return
	}

	s.cache.Set(got, time.Now().UTC())
	s.log.WithField("count", len(got)).Info("disaster alerts refreshed")
}
