package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// Logger attaches logger to each request context and writes one access line per request.
func Logger(logger zerolog.Logger) func(http.Handler) http.Handler {
	access := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		evt := hlog.FromRequest(r).Info()
		if status >= http.StatusInternalServerError {
			evt = hlog.FromRequest(r).Error()
		}
		evt.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	})

	return func(next http.Handler) http.Handler {
		h := access(next)
		h = requestIDField(h)
		return hlog.NewHandler(logger)(h)
	}
}

// requestIDField copies chi's request id into the request logger.
func requestIDField(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			l := zerolog.Ctx(r.Context())
			l.UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("request_id", id)
			})
		}
		next.ServeHTTP(w, r)
	})
}
