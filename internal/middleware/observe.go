// internal/middleware/observe.go
//
// Access logging and Prometheus instrumentation.
//
// Both wrappers label requests with the route name chosen by the dispatch
// table (a pure function of the path) and the client class (script or
// browser), so log lines and metric series line up one to one.

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/AdeptTravel/ipinfo/internal/metrics"
	"github.com/AdeptTravel/ipinfo/internal/ua"
)

// RouteNamer maps a URL path to its route name.
type RouteNamer func(path string) string

// AccessLog writes one INFO line per request through log.
func AccessLog(log *zap.SugaredLogger, name RouteNamer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.Infow("request",
				"id", RequestIDFromContext(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"route", name(r.URL.Path),
				"client", ua.Class(r.UserAgent()),
				"status", status(ww),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		})
	}
}

// Instrument records request counts and latency.
func Instrument(name RouteNamer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			route := name(r.URL.Path)
			metrics.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
			metrics.RequestsTotal.WithLabelValues(
				route, ua.Class(r.UserAgent()), strconv.Itoa(status(ww)),
			).Inc()
		})
	}
}

// status treats "never wrote a header" as the implicit 200.
func status(ww middleware.WrapResponseWriter) int {
	if s := ww.Status(); s != 0 {
		return s
	}
	return http.StatusOK
}
