package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	ferrors "git.home.luguber.info/inful/apisite/internal/foundation/errors"
	"git.home.luguber.info/inful/apisite/internal/logfields"
	"git.home.luguber.info/inful/apisite/internal/observability"
)

// requestContext copies chi's request ID into the logging context.
func requestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			r = r.WithContext(observability.WithRequestID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs method, path, status, duration and remote address.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.InfoContext(r.Context(), "HTTP request",
				logfields.Method(r.Method),
				logfields.Path(r.URL.Path),
				logfields.Status(status),
				logfields.DurationMS(float64(time.Since(start).Microseconds())/1000),
				logfields.RemoteAddr(r.RemoteAddr))
		})
	}
}

// recoverer turns handler panics into internal error responses.
func recoverer(logger *slog.Logger, adapter *ferrors.HTTPErrorAdapter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.ErrorContext(r.Context(), "HTTP handler panic",
					"panic", rec,
					logfields.Path(r.URL.Path),
					logfields.Method(r.Method))
				adapter.WriteErrorResponse(w, r, ferrors.InternalError("internal server error").
					WithContext("path", r.URL.Path).
					Build())
			}()
			next.ServeHTTP(w, r)
		})
	}
}
