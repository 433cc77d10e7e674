package goplus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the client-side collectors. A nil *Metrics records nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	refresh  *prometheus.CounterVec
}

// NewMetrics registers the client collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "goplus",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Remote calls by operation and status category",
		}, []string{"operation", "category"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "goplus",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Remote call latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		refresh: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "goplus",
			Subsystem: "client",
			Name:      "credential_refresh_total",
			Help:      "Credential refresh attempts by result",
		}, []string{"result"}),
	}
}

func (m *Metrics) observeRequest(op Operation, category string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(op.String(), category).Inc()
	m.duration.WithLabelValues(op.String()).Observe(elapsed.Seconds())
}

func (m *Metrics) observeRefresh(result string) {
	if m == nil {
		return
	}
	m.refresh.WithLabelValues(result).Inc()
}
