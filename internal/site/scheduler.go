package site

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/apisite/internal/logfields"
)

// Scheduler refreshes a Site periodically.
type Scheduler struct {
	scheduler gocron.Scheduler
	site      *Site
}

// NewScheduler creates a scheduler that refreshes site every interval.
// Runs never overlap; a run due while another is active is skipped.
func NewScheduler(ctx context.Context, site *Site, interval time.Duration) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("refresh interval must be positive, got %s", interval)
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	sch := &Scheduler{scheduler: s, site: site}
	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { sch.refresh(ctx) }),
		gocron.WithName("model-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to create refresh job: %w", err)
	}
	return sch, nil
}

// Start begins running the refresh job.
func (s *Scheduler) Start() {
	s.site.logger.Info("Starting refresh scheduler")
	s.scheduler.Start()
}

// Stop shuts the scheduler down, waiting for a running refresh.
func (s *Scheduler) Stop() error {
	s.site.logger.Info("Stopping refresh scheduler")
	return s.scheduler.Shutdown()
}

func (s *Scheduler) refresh(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := s.site.Refresh(ctx); err != nil {
		s.site.logger.WarnContext(ctx, "Scheduled refresh failed", logfields.Error(err))
	}
}
