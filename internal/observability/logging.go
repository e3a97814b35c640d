// Package observability carries per-generation and per-request logging
// context and builds the process logger.
package observability

import (
	"context"
	"io"
	"log/slog"

	"git.home.luguber.info/inful/apisite/internal/logfields"
)

// LogContext holds structured logging context information.
type LogContext struct {
	GenerationID string
	Stage        string
	RequestID    string
}

type logContextKeyType string

const logContextKey logContextKeyType = "log-context"

// WithGenerationID adds a generation pass ID to the context.
func WithGenerationID(ctx context.Context, id string) context.Context {
	lc := extractLogContext(ctx)
	lc.GenerationID = id
	return context.WithValue(ctx, logContextKey, lc)
}

// WithStage adds a stage name to the context.
func WithStage(ctx context.Context, stage string) context.Context {
	lc := extractLogContext(ctx)
	lc.Stage = stage
	return context.WithValue(ctx, logContextKey, lc)
}

// WithRequestID adds an HTTP request ID to the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	lc := extractLogContext(ctx)
	lc.RequestID = id
	return context.WithValue(ctx, logContextKey, lc)
}

// GetContext returns the structured log context carried by ctx.
func GetContext(ctx context.Context) LogContext {
	return extractLogContext(ctx)
}

func extractLogContext(ctx context.Context) LogContext {
	if ctx == nil {
		return LogContext{}
	}
	if lc, ok := ctx.Value(logContextKey).(LogContext); ok {
		return lc
	}
	return LogContext{}
}

func (lc LogContext) attrs() []slog.Attr {
	var attrs []slog.Attr
	if lc.GenerationID != "" {
		attrs = append(attrs, logfields.GenerationID(lc.GenerationID))
	}
	if lc.Stage != "" {
		attrs = append(attrs, slog.String("stage", lc.Stage))
	}
	if lc.RequestID != "" {
		attrs = append(attrs, logfields.RequestID(lc.RequestID))
	}
	return attrs
}

// ContextHandler decorates records with the LogContext found on the
// record's context.
type ContextHandler struct {
	inner slog.Handler
}

// NewContextHandler wraps inner.
func NewContextHandler(inner slog.Handler) *ContextHandler {
	return &ContextHandler{inner: inner}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs := extractLogContext(ctx).attrs(); len(attrs) > 0 {
		r = r.Clone()
		r.AddAttrs(attrs...)
	}
	return h.inner.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{inner: h.inner.WithGroup(name)}
}

// NewLogger builds a context-aware logger writing text or JSON ("json") records to w.
func NewLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if format == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(NewContextHandler(h))
}

// ParseLevel maps a configured level name to a slog level; unknown names are Info.
func ParseLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
