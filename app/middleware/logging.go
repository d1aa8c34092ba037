// Package middleware provides the HTTP middleware stack: a request-scoped
// zerolog logger, request ids and access logging.
package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// Logger attaches log to every request context so handlers can use zerolog.Ctx.
func Logger(log zerolog.Logger) func(http.Handler) http.Handler {
	return hlog.NewHandler(log)
}

// AccessLog writes one line per request once the response is complete.
// It must run after Logger and RequestID.
func AccessLog(next http.Handler) http.Handler {
	return hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		event := hlog.FromRequest(r).Info()
		if status >= http.StatusInternalServerError {
			event = hlog.FromRequest(r).Error()
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	})(next)
}
