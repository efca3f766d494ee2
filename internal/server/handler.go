// internal/server/handler.go
//
// Root handler assembly.
//
// Request life-cycle
// ------------------
//
//  1. Recoverer        – panics become 500s instead of dropped conns.
//  2. RequestID        – incoming X-Request-Id or a fresh UUID.
//  3. AccessLog        – one INFO line per request.
//  4. Instrument       – Prometheus counters and latency.
//  5. ForceHTTPS       – optional 308 to HTTPS.
//  6. Security         – standard response headers.
//  7. edge.Enrich      – per-request RequestContext.
//  8. route.Table      – substring dispatch to one of eight handlers.
//
// chi provides the middleware chain.  Every path and method is handed to
// the route table, which owns matching and the 404 fallback.

package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/AdeptTravel/ipinfo/internal/config"
	"github.com/AdeptTravel/ipinfo/internal/edge"
	"github.com/AdeptTravel/ipinfo/internal/handler"
	"github.com/AdeptTravel/ipinfo/internal/middleware"
)

// Handler builds the public http.Handler.
func Handler(cfg *config.Config, p edge.Provider, log *zap.SugaredLogger) http.Handler {
	table := handler.Routes(cfg.Service.Name)

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log, table.Name))
	r.Use(middleware.Instrument(table.Name))
	if cfg.HTTP.ForceHTTPS {
		r.Use(middleware.ForceHTTPS)
	}
	r.Use(middleware.Security)
	r.Use(edge.Enrich(p))

	r.Handle("/*", table)
	r.NotFound(table.ServeHTTP)
	r.MethodNotAllowed(table.ServeHTTP)
	return r
}

// MetricsHandler serves the Prometheus registry on /metrics.
func MetricsHandler() http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	return r
}
