package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bizness"

// Label names
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelKind     = "kind"
	LabelEndpoint = "endpoint"
	LabelOutcome  = "outcome"
	LabelSource   = "source"
)

// Outcomes recorded for AI proxy calls.
const (
	OutcomeOK            = "ok"
	OutcomeBadRequest    = "bad_request"
	OutcomeUnauthorized  = "unauthorized"
	OutcomeUpstreamError = "upstream_error"
	OutcomeNotConfigured = "not_configured"
	OutcomeInternalError = "internal_error"
)

// Outcomes recorded for receipt scans.
const (
	OutcomeAccepted  = "accepted"
	OutcomeDefaulted = "defaulted"
)

// Sources of pricing calculations.
const (
	SourceAPI  = "api"
	SourcePage = "page"
)

// HTTPLatencyBuckets covers page renders and proxied AI calls.
var HTTPLatencyBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by method, route and status.",
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being served.",
		},
	)
)

// Domain Metrics
var (
	CalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pricing_calculations_total",
			Help:      "Pricing calculations performed, by caller.",
		},
		[]string{LabelSource},
	)

	ValidationRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_rejections_total",
			Help:      "Records rejected at the persistence boundary, by record kind.",
		},
		[]string{LabelKind},
	)

	AIProxyCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ai_proxy_calls_total",
			Help:      "AI proxy calls by endpoint and outcome.",
		},
		[]string{LabelEndpoint, LabelOutcome},
	)

	OCRScans = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ocr_scans_total",
			Help:      "Receipt scans by outcome (accepted or defaulted).",
		},
		[]string{LabelOutcome},
	)
)
