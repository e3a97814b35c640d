package site

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/apisite/internal/aggregate"
	"git.home.luguber.info/inful/apisite/internal/apimodel"
	"git.home.luguber.info/inful/apisite/internal/config"
	"git.home.luguber.info/inful/apisite/internal/docs"
	ferrors "git.home.luguber.info/inful/apisite/internal/foundation/errors"
	"git.home.luguber.info/inful/apisite/internal/metrics"
	"git.home.luguber.info/inful/apisite/internal/routes"
	"git.home.luguber.info/inful/apisite/internal/testutil/apifixture"
)

type fakeSource struct {
	model *apimodel.Model
	calls atomic.Int32

	mu  sync.Mutex
	err error
}

func (f *fakeSource) LoadModel(context.Context) (*apimodel.Model, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.model, nil
}

func (f *fakeSource) LoadDocs(context.Context) (*docs.Library, error) {
	return docs.Empty(), nil
}

func (f *fakeSource) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

type recordingRecorder struct {
	metrics.NoopRecorder
	mu       sync.Mutex
	outcomes []metrics.Outcome
	stages   []string
	packages int
	members  int
}

func (r *recordingRecorder) IncGenerationOutcome(o metrics.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

func (r *recordingRecorder) ObserveStageDuration(stage string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages = append(r.stages, stage)
}

func (r *recordingRecorder) SetModelSize(packages, members int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.packages, r.members = packages, members
}

func newTestSite(t *testing.T, opts ...Option) (*Site, *fakeSource) {
	t.Helper()
	src := &fakeSource{model: apifixture.Load(t)}
	s := New(config.Default(), src, opts...)
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	}
	return s, src
}

func TestSite_InitOnce(t *testing.T) {
	s, src := newTestSite(t)
	assert.Nil(t, s.Snapshot())

	require.NoError(t, s.Init(context.Background()))
	require.NoError(t, s.Init(context.Background()))
	assert.Equal(t, int32(1), src.calls.Load())

	snap := s.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, "gen-1", snap.GenerationID)
	assert.Len(t, snap.Packages, 2)
	assert.Equal(t, 16, snap.MemberCount())
	assert.Equal(t, 0, snap.Docs.Len())
}

func TestSite_RefreshFailureKeepsPreviousSnapshot(t *testing.T) {
	rec := &recordingRecorder{}
	s, src := newTestSite(t, WithRecorder(rec))
	require.NoError(t, s.Init(context.Background()))
	first := s.Snapshot()

	src.fail(ferrors.ModelError("broken descriptor").Build())
	_, err := s.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryModel))
	assert.Same(t, first, s.Snapshot())

	src.fail(context.Canceled)
	_, err = s.Refresh(context.Background())
	require.Error(t, err)

	src.fail(nil)
	next, err := s.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "gen-4", next.GenerationID)
	assert.Same(t, next, s.Snapshot())

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, []metrics.Outcome{
		metrics.OutcomeSuccess, metrics.OutcomeFailed, metrics.OutcomeCanceled, metrics.OutcomeSuccess,
	}, rec.outcomes)
	assert.Equal(t, 2, rec.packages)
	assert.Equal(t, 16, rec.members)
	assert.Equal(t, []string{stageLoadModel, stageAggregate, stageLoadDocs}, rec.stages[:3])
}

func TestSite_Lookup(t *testing.T) {
	s, _ := newTestSite(t)

	_, err := s.Lookup(apifixture.WidgetsPackage, apimodel.KindClass, "Widget")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryRuntime))

	require.NoError(t, s.Init(context.Background()))

	m, err := s.Lookup(apifixture.WidgetsPackage, apimodel.KindClass, "Widget")
	require.NoError(t, err)
	assert.Equal(t, "/api-docs/@acme%2Fwidgets/Class/Widget", m.Path)

	tests := []struct {
		pkg  string
		kind apimodel.Kind
		name string
	}{
		{"@acme/other", apimodel.KindClass, "Widget"},
		{apifixture.WidgetsPackage, apimodel.KindInterface, "Widget"},
		{apifixture.WidgetsPackage, apimodel.KindClass, "Nope"},
	}
	for _, tt := range tests {
		_, err := s.Lookup(tt.pkg, tt.kind, tt.name)
		require.Error(t, err, "%s %s %s", tt.pkg, tt.kind, tt.name)
		assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
	}
}

func TestSnapshot_PackageOverloadsShareLookup(t *testing.T) {
	s, _ := newTestSite(t)
	require.NoError(t, s.Init(context.Background()))

	m, err := s.Snapshot().Lookup(apifixture.WidgetsPackage, apimodel.KindMethod, "render")
	require.NoError(t, err)
	assert.Equal(t, "render", m.Name)

	p, err := s.Snapshot().Package(apifixture.ToolsPackage)
	require.NoError(t, err)
	require.Len(t, p.Members, 1)
	assert.Equal(t, "build", p.Members[0].Name)
}

func TestSnapshot_LookupByOwnPath(t *testing.T) {
	b := routes.NewBuilder("", "")
	composed, decomposed := "caf\u00e9", "cafe\u0301"
	snap := &Snapshot{Packages: []aggregate.PackageSummary{{
		Name: "p",
		Members: []aggregate.MemberSummary{
			{Name: decomposed, Kind: apimodel.KindVariable, Path: b.MemberPath("p", apimodel.KindVariable, decomposed)},
			{Name: composed, Kind: apimodel.KindVariable, Path: b.MemberPath("p", apimodel.KindVariable, composed)},
			{Name: "nai\u0308ve", Kind: apimodel.KindFunction, Path: b.MemberPath("p", apimodel.KindFunction, "nai\u0308ve")},
		},
	}}}

	for _, want := range snap.Packages[0].Members {
		r, err := b.Parse(want.Path)
		require.NoError(t, err)
		got, err := snap.Lookup(r.Package, r.Kind, r.Name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	m, err := snap.Lookup("p", apimodel.KindFunction, "na\u00efve")
	require.NoError(t, err)
	assert.Equal(t, "nai\u0308ve", m.Name)
}

func TestDirSource(t *testing.T) {
	root := t.TempDir()
	modelDir := filepath.Join(root, "model")
	docsDir := filepath.Join(root, "docs")
	require.NoError(t, os.Mkdir(modelDir, 0o750))
	require.NoError(t, os.Mkdir(docsDir, 0o750))
	apifixture.WriteDir(t, modelDir)
	require.NoError(t, os.WriteFile(filepath.Join(docsDir, "intro.md"), []byte("---\ntitle: Intro\n---\nHi\n"), 0o600))

	cfg := config.Default()
	cfg.Model.Dir = modelDir
	cfg.Docs.Dir = docsDir

	s := New(cfg, nil)
	require.NoError(t, s.Init(context.Background()))
	snap := s.Snapshot()
	assert.Len(t, snap.Packages, 2)
	require.Equal(t, 1, snap.Docs.Len())
	assert.Equal(t, "Intro", snap.Docs.List()[0].Name)

	src := NewDirSource(cfg, nil)
	assert.Equal(t, []string{modelDir, docsDir}, src.WatchDirs())
}

func TestDirSource_MissingModelDir(t *testing.T) {
	cfg := config.Default()
	cfg.Model.Dir = filepath.Join(t.TempDir(), "absent")

	err := New(cfg, nil).Init(context.Background())
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))
}

func TestSite_WatchRefreshesOnChange(t *testing.T) {
	root := t.TempDir()
	modelDir := filepath.Join(root, "model")
	docsDir := filepath.Join(root, "docs")
	require.NoError(t, os.Mkdir(modelDir, 0o750))
	require.NoError(t, os.Mkdir(docsDir, 0o750))
	apifixture.WriteDir(t, modelDir)

	cfg := config.Default()
	cfg.Model.Dir = modelDir
	cfg.Docs.Dir = docsDir
	s := New(cfg, nil)
	require.NoError(t, s.Init(context.Background()))
	first := s.Snapshot()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx, 20*time.Millisecond, modelDir, docsDir) }()

	require.Eventually(t, func() bool {
		_ = os.WriteFile(filepath.Join(docsDir, "new.md"), []byte("# New\n"), 0o600)
		snap := s.Snapshot()
		return snap != first && snap.Docs.Len() == 1
	}, 5*time.Second, 100*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestSite_WatchNothingToWatch(t *testing.T) {
	s, _ := newTestSite(t)
	err := s.Watch(context.Background(), 0, filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}

func TestScheduler(t *testing.T) {
	s, src := newTestSite(t)

	_, err := NewScheduler(context.Background(), s, 0)
	require.Error(t, err)

	sch, err := NewScheduler(context.Background(), s, 30*time.Millisecond)
	require.NoError(t, err)
	sch.Start()
	require.Eventually(t, func() bool { return src.calls.Load() >= 2 }, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, sch.Stop())
	assert.NotNil(t, s.Snapshot())
}

func TestSite_CanceledContext(t *testing.T) {
	s, _ := newTestSite(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Refresh(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Nil(t, s.Snapshot())
}
