package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "bullseyegolf_light"

type metrics struct {
	upstreamRequests *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec
	submissions      *prometheus.CounterVec
}

// newMetrics registers the collectors on reg. A nil metrics is valid and
// records nothing.
func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "upstream_requests_total",
			Help:      "Requests sent to the API server by operation and result.",
		}, []string{"op", "result"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Time spent waiting for the API server.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "score_submissions_total",
			Help:      "Score submissions by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.upstreamRequests, m.upstreamLatency, m.submissions)
	return m
}

func (m *metrics) observeResult(op, result string) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(op, result).Inc()
}

func (m *metrics) observeLatency(op string, d time.Duration) {
	if m == nil {
		return
	}
	m.upstreamLatency.WithLabelValues(op).Observe(d.Seconds())
}

func (m *metrics) observeSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}
