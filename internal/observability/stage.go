package observability

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/apisite/internal/logfields"
)

// Stage times one step of a generation pass.
type Stage struct {
	ctx    context.Context
	name   string
	start  time.Time
	logger *slog.Logger
	now    func() time.Time
}

// StartStage marks the beginning of stage name and returns a context
// carrying it.
func StartStage(ctx context.Context, logger *slog.Logger, name string) (context.Context, *Stage) {
	if logger == nil {
		logger = slog.Default()
	}
	ctx = WithStage(ctx, name)
	logger.DebugContext(ctx, "Stage started")
	return ctx, &Stage{ctx: ctx, name: name, start: time.Now(), logger: logger, now: time.Now}
}

// Name returns the stage name.
func (s *Stage) Name() string { return s.name }

// End logs the stage outcome and returns its duration.
func (s *Stage) End(err error) time.Duration {
	d := s.now().Sub(s.start)
	ms := logfields.DurationMS(float64(d.Microseconds()) / 1000)
	if err != nil {
		s.logger.ErrorContext(s.ctx, "Stage failed", ms, logfields.Error(err))
		return d
	}
	s.logger.DebugContext(s.ctx, "Stage finished", ms)
	return d
}
