package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sathi_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sathi_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path"},
	)

	// Analysis metrics
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sathi_analyses_total",
			Help: "Completed analyses by verdict",
		},
		[]string{"category", "risk", "urgency"},
	)

	AnalysisFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sathi_analysis_failures_total",
			Help: "Analyses that ended in an error",
		},
		[]string{"reason"}, // empty_input, ocr, busy, relay, invalid_response, internal
	)

	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sathi_upstream_requests_total",
			Help: "Chat completion calls to the model provider",
		},
		[]string{"provider", "status"},
	)
)
