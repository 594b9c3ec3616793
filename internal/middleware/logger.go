package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type identitySlotKey struct{}

// Logger пишет одну запись на запрос; 5xx логируются как ошибки.
func Logger(logger *slog.Logger) func(next http.Handler) http.Handler {
	logger = logger.With(slog.String("component", "http"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := wrapResponseWriter(w)

			// Authenticate заполняет слот, чтобы пользователь попал в лог
			var who entities.Identity
			ctx := context.WithValue(r.Context(), identitySlotKey{}, &who)
			next.ServeHTTP(ww, r.WithContext(ctx))

			level := slog.LevelInfo
			if ww.status >= http.StatusInternalServerError {
				level = slog.LevelError
			}

			attrs := []slog.Attr{
				slog.Int("status", ww.status),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote", r.RemoteAddr),
				slog.String("duration", time.Since(start).String()),
				slog.String("request_id", chimw.GetReqID(r.Context())),
			}
			if who.Authenticated() {
				attrs = append(attrs, slog.String("user_id", who.UserID))
			}

			logger.LogAttrs(r.Context(), level, "request", attrs...)
		})
	}
}

func rememberIdentity(ctx context.Context, who entities.Identity) {
	if slot, ok := ctx.Value(identitySlotKey{}).(*entities.Identity); ok {
		*slot = who
	}
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func wrapResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, status: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
