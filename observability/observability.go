// Package observability holds the prometheus collectors shared by the providers
// and the HTTP server.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	LookupCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weathercard_lookups_total",
			Help: "Weather lookups by provider and outcome.",
		},
		[]string{"provider", "outcome"},
	)

	LookupDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weathercard_lookup_duration_seconds",
			Help:    "Latency of weather lookups by provider.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weathercard_http_requests_total",
			Help: "HTTP requests by route pattern, method and status.",
		},
		[]string{"route", "method", "status"},
	)
)

func init() {
	prometheus.MustRegister(LookupCounter, LookupDuration, RequestCounter)
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
