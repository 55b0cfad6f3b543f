package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Analysis outcomes
const (
	OutcomeAccepted      = "accepted"
	OutcomeRejected      = "rejected"
	OutcomeInvalid       = "invalid"
	OutcomeUpstreamError = "upstream_error"
)

var (
	AnalysisRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_requests_total",
			Help: "Total number of analysis requests by outcome",
		},
		[]string{"outcome"},
	)

	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analysis_generation_duration_seconds",
			Help:    "Duration of the generation backend call including retries",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		},
	)

	GenAIAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genai_attempts_total",
			Help: "Total number of generation backend attempts by result",
		},
		[]string{"result"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method", "status"},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "http_requests_rate_limited_total",
			Help: "Total number of requests refused by the rate limiter",
		},
	)

	KnowledgeBaseDegraded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "knowledge_base_degraded",
			Help: "1 when the knowledge base failed to load and the placeholder is in use",
		},
	)
)
