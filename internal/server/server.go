// Package server exposes the generated site as JSON over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"git.home.luguber.info/inful/apisite/internal/config"
	ferrors "git.home.luguber.info/inful/apisite/internal/foundation/errors"
	"git.home.luguber.info/inful/apisite/internal/site"
)

const shutdownTimeout = 10 * time.Second

// Server serves one Site.
type Server struct {
	cfg     *config.Config
	site    *site.Site
	router  chi.Router
	errors  *ferrors.HTTPErrorAdapter
	logger  *slog.Logger
	metrics http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetricsHandler mounts h at the configured metrics path when metrics
// are enabled.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// New builds the router for st.
func New(cfg *config.Config, st *site.Site, opts ...Option) *Server {
	s := &Server{cfg: cfg, site: st, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	s.errors = ferrors.NewHTTPErrorAdapter(s.logger)
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestContext)
	r.Use(requestLogger(s.logger))
	r.Use(recoverer(s.logger, s.errors))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.errors.WriteErrorResponse(w, r, ferrors.NotFoundError("no route").WithContext("path", r.URL.Path).Build())
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, ferrors.HTTPErrorResponse{Error: "method not allowed"})
	})

	r.Get("/health", s.handleHealth)
	if s.cfg.Monitoring.Metrics.Enabled && s.metrics != nil {
		r.Method(http.MethodGet, s.cfg.Monitoring.Metrics.Path, s.metrics)
	}

	api := s.cfg.Routes.APIPrefix
	r.Get(api, s.handleIndex)
	r.Get(api+"/{pkg}", s.handlePackage)
	r.Get(api+"/{pkg}/{kind}/{name}", s.handleMember)

	docs := s.cfg.Routes.DocsPrefix
	r.Get(docs, s.handleDocsList)
	r.Get(docs+"/*", s.handleDoc)
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout(),
		WriteTimeout: s.cfg.WriteTimeout(),
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return ferrors.WrapError(err, ferrors.CategoryRuntime, "HTTP server failed").
			Fatal().
			WithContext("addr", srv.Addr).
			Build()
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	s.logger.Info("Shutting down HTTP server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown HTTP server: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
