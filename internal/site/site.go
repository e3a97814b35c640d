// Package site owns the generated website data: it runs generation passes,
// keeps the latest snapshot, and refreshes it on demand, on file changes or
// on a schedule.
package site

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/apisite/internal/aggregate"
	"git.home.luguber.info/inful/apisite/internal/apimodel"
	"git.home.luguber.info/inful/apisite/internal/config"
	ferrors "git.home.luguber.info/inful/apisite/internal/foundation/errors"
	"git.home.luguber.info/inful/apisite/internal/logfields"
	"git.home.luguber.info/inful/apisite/internal/metrics"
	"git.home.luguber.info/inful/apisite/internal/observability"
)

const (
	stageLoadModel = "load_model"
	stageAggregate = "aggregate"
	stageLoadDocs  = "load_docs"
)

// Site holds the current snapshot. Reads never block on a running refresh;
// refreshes are serialized.
type Site struct {
	cfg      *config.Config
	source   Source
	recorder metrics.Recorder
	logger   *slog.Logger
	newID    func() string
	now      func() time.Time

	refreshMu sync.Mutex
	mu        sync.RWMutex
	snapshot  *Snapshot
}

// Option configures a Site.
type Option func(*Site)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Site) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Site) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a Site that generates from source using cfg. A nil source
// reads the directories named in cfg.
func New(cfg *config.Config, source Source, opts ...Option) *Site {
	s := &Site{
		cfg:      cfg,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
		newID:    uuid.NewString,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if source == nil {
		source = NewDirSource(cfg, s.logger)
	}
	s.source = source
	return s
}

// Init runs the first generation pass unless one already succeeded.
func (s *Site) Init(ctx context.Context) error {
	if s.Snapshot() != nil {
		return nil
	}
	_, err := s.Refresh(ctx)
	return err
}

// Refresh runs a generation pass and swaps in its snapshot. On failure the
// previous snapshot stays current and the error is returned.
func (s *Site) Refresh(ctx context.Context) (*Snapshot, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	id := s.newID()
	ctx = observability.WithGenerationID(ctx, id)
	start := s.now()
	s.logger.InfoContext(ctx, "Generation started")

	snap, err := s.generate(ctx, id)
	s.recorder.ObserveGenerationDuration(s.now().Sub(start))
	if err != nil {
		outcome := metrics.OutcomeFailed
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			outcome = metrics.OutcomeCanceled
		}
		s.recorder.IncGenerationOutcome(outcome)
		if s.Snapshot() != nil {
			s.logger.ErrorContext(ctx, "Generation failed; keeping previous snapshot", logfields.Error(err))
		} else {
			s.logger.ErrorContext(ctx, "Generation failed", logfields.Error(err))
		}
		return nil, err
	}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	s.recorder.IncGenerationOutcome(metrics.OutcomeSuccess)
	s.recorder.SetModelSize(len(snap.Model.Packages()), snap.MemberCount())
	s.recorder.SetDocuments(snap.Docs.Len())
	s.logger.InfoContext(ctx, "Generation finished",
		slog.Int("packages", len(snap.Model.Packages())),
		slog.Int("members", snap.MemberCount()),
		slog.Int("documents", snap.Docs.Len()),
		slog.String("docs_hash", snap.Docs.Hash()),
		logfields.DurationMS(float64(s.now().Sub(start).Microseconds())/1000))
	return snap, nil
}

func (s *Site) generate(ctx context.Context, id string) (*Snapshot, error) {
	stageCtx, st := observability.StartStage(ctx, s.logger, stageLoadModel)
	model, err := s.source.LoadModel(stageCtx)
	s.recorder.ObserveStageDuration(stageLoadModel, st.End(err))
	if err != nil {
		return nil, err
	}

	stageCtx, st = observability.StartStage(ctx, s.logger, stageAggregate)
	agg := aggregate.New(aggregate.Options{
		Mode:        s.cfg.Render.Mode,
		Routes:      s.cfg.RouteBuilder(),
		Concurrency: s.cfg.Render.Concurrency,
		Recorder:    s.recorder,
		Logger:      s.logger,
	})
	packages, err := agg.Aggregate(stageCtx, model)
	s.recorder.ObserveStageDuration(stageAggregate, st.End(err))
	if err != nil {
		return nil, err
	}

	stageCtx, st = observability.StartStage(ctx, s.logger, stageLoadDocs)
	library, err := s.source.LoadDocs(stageCtx)
	s.recorder.ObserveStageDuration(stageLoadDocs, st.End(err))
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		GenerationID: id,
		GeneratedAt:  s.now().UTC(),
		Model:        model,
		Packages:     packages,
		Docs:         library,
	}, nil
}

// Snapshot returns the current snapshot, or nil before the first
// successful pass.
func (s *Site) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Current returns the current snapshot or a runtime error when the site
// has not been generated yet.
func (s *Site) Current() (*Snapshot, error) {
	snap := s.Snapshot()
	if snap == nil {
		return nil, ferrors.NewError(ferrors.CategoryRuntime, "site has not been generated yet").Retryable().Build()
	}
	return snap, nil
}

// Lookup finds a member in the current snapshot.
func (s *Site) Lookup(pkg string, kind apimodel.Kind, name string) (aggregate.MemberSummary, error) {
	snap, err := s.Current()
	if err != nil {
		return aggregate.MemberSummary{}, err
	}
	return snap.Lookup(pkg, kind, name)
}
