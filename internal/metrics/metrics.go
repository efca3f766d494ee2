// Package metrics holds Prometheus instruments that are used across the
// service.  All collectors are registered with the global registry, so
// importing this package is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ipinfo_requests_total",
			Help: "Requests served, by route, client class, and status code.",
		}, []string{"route", "client", "code"})

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ipinfo_request_duration_seconds",
			Help:    "Time spent producing a response, by route.",
			Buckets: []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .05},
		}, []string{"route"})

	GeoIPLookupErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ipinfo_geoip_lookup_errors_total",
			Help: "Cumulative number of failed MaxMind lookups, by database.",
		}, []string{"db"})
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		GeoIPLookupErrorsTotal,
	)
}
