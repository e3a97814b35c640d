package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/apisite/internal/apimodel"
	"git.home.luguber.info/inful/apisite/internal/config"
	"git.home.luguber.info/inful/apisite/internal/docs"
	ferrors "git.home.luguber.info/inful/apisite/internal/foundation/errors"
	"git.home.luguber.info/inful/apisite/internal/metrics"
	"git.home.luguber.info/inful/apisite/internal/site"
	"git.home.luguber.info/inful/apisite/internal/testutil/apifixture"
)

type fixtureSource struct {
	model *apimodel.Model
}

func (f fixtureSource) LoadModel(context.Context) (*apimodel.Model, error) { return f.model, nil }

func (f fixtureSource) LoadDocs(ctx context.Context) (*docs.Library, error) {
	return docs.LoadFS(ctx, fstest.MapFS{
		"index.md":           {Data: []byte("---\ntitle: Overview\n---\nWelcome.\n")},
		"guides/install.mdx": {Data: []byte("# Install\n")},
	}, docs.Options{})
}

// Summaries carry render content that only encodes, so responses are
// decoded into these trimmed shapes.
type memberJSON struct {
	Name string        `json:"name"`
	Kind apimodel.Kind `json:"kind"`
	Path string        `json:"path"`
}

type packageJSON struct {
	Package struct {
		Name    string       `json:"name"`
		Members []memberJSON `json:"members"`
	} `json:"package"`
	Groups []site.KindGroup `json:"groups"`
}

type memberPageJSON struct {
	Package string     `json:"package"`
	Member  memberJSON `json:"member"`
	Notice  string     `json:"notice"`
}

func newTestServer(t *testing.T, cfg *config.Config, opts ...Option) (*Server, *site.Site) {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	st := site.New(cfg, fixtureSource{model: apifixture.Load(t)})
	return New(cfg, st, opts...), st
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	srv, st := newTestServer(t, nil)

	rec := get(t, srv.Handler(), "/health")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "starting", decode[HealthResponse](t, rec).Status)

	require.NoError(t, st.Init(context.Background()))
	rec = get(t, srv.Handler(), "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	health := decode[HealthResponse](t, rec)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, st.Snapshot().GenerationID, health.GenerationID)
	assert.Equal(t, st.Snapshot().Docs.Hash(), health.DocsHash)
	assert.Len(t, health.DocsHash, 64)
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))
}

func TestAPIBeforeGeneration(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := get(t, srv.Handler(), "/api-docs")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, string(ferrors.CategoryRuntime), decode[ferrors.HTTPErrorResponse](t, rec).Code)
}

func TestAPIRoutes(t *testing.T) {
	srv, st := newTestServer(t, nil)
	require.NoError(t, st.Init(context.Background()))
	h := srv.Handler()

	t.Run("index", func(t *testing.T) {
		rec := get(t, h, "/api-docs")
		require.Equal(t, http.StatusOK, rec.Code)
		out := decode[[]json.RawMessage](t, rec)
		assert.Len(t, out, 2)
	})

	t.Run("package", func(t *testing.T) {
		rec := get(t, h, "/api-docs/@acme%2Fwidgets")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		out := decode[packageJSON](t, rec)
		assert.Equal(t, apifixture.WidgetsPackage, out.Package.Name)
		require.NotEmpty(t, out.Groups)
		assert.Equal(t, apimodel.KindClass, out.Groups[0].Kind)
		assert.Equal(t, "Classes", out.Groups[0].DisplayName)
	})

	t.Run("member", func(t *testing.T) {
		rec := get(t, h, "/api-docs/@acme%2Fwidgets/Class/Widget")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		out := decode[memberPageJSON](t, rec)
		assert.Equal(t, apifixture.WidgetsPackage, out.Package)
		assert.Equal(t, "Widget", out.Member.Name)
		assert.Equal(t, "This item is beta", out.Notice)
	})

	t.Run("member path from summary", func(t *testing.T) {
		m, err := st.Lookup(apifixture.WidgetsPackage, apimodel.KindFunction, "makeWidget")
		require.NoError(t, err)
		rec := get(t, h, m.Path)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		out := decode[memberPageJSON](t, rec)
		assert.Equal(t, "This item is deprecated", out.Notice)
	})

	t.Run("slug kind", func(t *testing.T) {
		rec := get(t, h, "/api-docs/tools/function/build")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "build", decode[memberPageJSON](t, rec).Member.Name)
	})

	for _, target := range []string{
		"/api-docs/missing",
		"/api-docs/@acme%2Fwidgets/Class/Nope",
		"/api-docs/@acme%2Fwidgets/Bogus/Widget",
		"/nowhere",
	} {
		t.Run("not found "+target, func(t *testing.T) {
			rec := get(t, h, target)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, string(ferrors.CategoryNotFound), decode[ferrors.HTTPErrorResponse](t, rec).Code)
		})
	}
}

func TestDocsRoutes(t *testing.T) {
	srv, st := newTestServer(t, nil)
	require.NoError(t, st.Init(context.Background()))
	h := srv.Handler()

	rec := get(t, h, "/docs")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]docs.Bundle](t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, "guides/install", list[0].Slug)

	rec = get(t, h, "/docs/index")
	require.Equal(t, http.StatusOK, rec.Code)
	doc := decode[docs.Bundle](t, rec)
	assert.Equal(t, "Overview", doc.Name)
	assert.Contains(t, doc.HTML, "Welcome.")

	rec = get(t, h, "/docs/guides/install")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "install", decode[docs.Bundle](t, rec).Name)

	rec = get(t, h, "/docs/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCustomPrefixes(t *testing.T) {
	cfg := config.Default()
	cfg.Routes.APIPrefix = "/reference"
	cfg.Routes.DocsPrefix = "/guides"
	srv, st := newTestServer(t, cfg)
	require.NoError(t, st.Init(context.Background()))

	rec := get(t, srv.Handler(), "/reference/tools/Function/build")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	out := decode[memberPageJSON](t, rec)
	assert.Equal(t, "/reference/tools/Function/build", out.Member.Path)

	assert.Equal(t, http.StatusOK, get(t, srv.Handler(), "/guides/index").Code)
	assert.Equal(t, http.StatusNotFound, get(t, srv.Handler(), "/api-docs").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := metrics.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)

	cfg := config.Default()
	cfg.Monitoring.Metrics.Enabled = true
	st := site.New(cfg, fixtureSource{model: apifixture.Load(t)}, site.WithRecorder(rec))
	srv := New(cfg, st, WithMetricsHandler(metrics.HTTPHandler(reg)))
	require.NoError(t, st.Init(context.Background()))

	resp := get(t, srv.Handler(), "/metrics")
	require.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	assert.Contains(t, body, "apisite_generation_outcomes_total")
	assert.Contains(t, body, "apisite_model_packages 2")

	disabled, _ := newTestServer(t, nil, WithMetricsHandler(metrics.HTTPHandler(reg)))
	assert.Equal(t, http.StatusNotFound, get(t, disabled.Handler(), "/metrics").Code)
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api-docs", strings.NewReader("{}")))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRecoverer(t *testing.T) {
	adapter := ferrors.NewHTTPErrorAdapter(nil)
	h := recoverer(slog.Default(), adapter)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := get(t, h, "/x")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, string(ferrors.CategoryInternal), decode[ferrors.HTTPErrorResponse](t, rec).Code)
}
