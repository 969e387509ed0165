package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/dharshaa/air-advisor/internal/domain/airquality"
)

// Scheduler periodically refreshes readings for tracked locations so trend
// baselines stay warm for API callers.
type Scheduler struct {
	scheduler *gocron.Scheduler
	resolver  *airquality.Resolver
	history   airquality.HistoryRepository
	locations []string
	interval  time.Duration
	logger    *slog.Logger
}

// New creates a refresh scheduler. A nil return from Start is fine when no
// locations are configured; the job is simply not scheduled.
func New(locations []string, interval time.Duration, resolver *airquality.Resolver, history airquality.HistoryRepository, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		resolver:  resolver,
		history:   history,
		locations: locations,
		interval:  interval,
		logger:    logger.With("component", "scheduler"),
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 || s.interval <= 0 {
		s.logger.Info("history refresh disabled")
		return nil
	}

	if _, err := s.scheduler.Every(s.interval).Do(s.refresh); err != nil {
		return err
	}
	s.scheduler.StartAsync()
	s.logger.Info("history refresh scheduled", "interval", s.interval.String(), "locations", len(s.locations))
	return nil
}

// Stop stops the scheduler and cancels future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *Scheduler) refresh() {
	for _, location := range s.locations {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		reading, source, err := s.resolver.Resolve(ctx, location)
		if err != nil {
			cancel()
			s.logger.Warn("history refresh failed", "location", location, "error", err)
			continue
		}
		if err := s.history.Append(ctx, reading); err != nil {
			s.logger.Warn("history append failed", "location", location, "error", err)
		} else {
			s.logger.Debug("history refreshed", "location", location, "source", source, "index", reading.PollutantIndex)
		}
		cancel()
	}
}
