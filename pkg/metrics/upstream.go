package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess     = "success"
	OutcomeHTTPError   = "http_error"
	OutcomeTransport   = "transport_error"
	OutcomeInvalidBody = "invalid_body"
)

// UpstreamMetrics registra as chamadas feitas à API agregadora.
// Um valor nil ignora todas as observações.
type UpstreamMetrics struct {
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	pageLimit *prometheus.CounterVec
}

// NewUpstreamMetrics registra as métricas no registerer informado
func NewUpstreamMetrics(reg prometheus.Registerer) *UpstreamMetrics {
	if reg == nil {
		return &UpstreamMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stract_upstream_requests_total",
		Help: "Upstream GET requests by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stract_upstream_request_duration_seconds",
		Help:    "Duration of upstream GET requests in seconds, retries included.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
	pageLimit := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stract_pagination_cap_reached_total",
		Help: "Traversals stopped by the page cap.",
	}, []string{"path"})
	reg.MustRegister(requests, duration, pageLimit)
	return &UpstreamMetrics{
		requests:  requests,
		duration:  duration,
		pageLimit: pageLimit,
	}
}

func (m *UpstreamMetrics) ObserveRequest(endpoint, outcome string, duration time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	endpoint = normalizeLabel(endpoint)
	m.requests.WithLabelValues(endpoint, normalizeLabel(outcome)).Inc()
	m.duration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *UpstreamMetrics) IncPageCapReached(path string) {
	if m == nil || m.pageLimit == nil {
		return
	}
	m.pageLimit.WithLabelValues(normalizeLabel(path)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
