// Package metrics exposes prometheus instrumentation for service mutations and
// assistant turns. A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "riverline"

// Result labels.
const (
	ResultOK       = "ok"
	ResultError    = "error"
	ResultDeclined = "declined"
	ResultInvalid  = "invalid"
)

// Metrics holds the collectors, registered on a private registry.
type Metrics struct {
	registry          *prometheus.Registry
	mutations         *prometheus.CounterVec
	assistantRequests *prometheus.CounterVec
	assistantLatency  *prometheus.HistogramVec
	entities          *prometheus.GaugeVec
}

// New creates and registers every collector, plus the Go runtime and process
// collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Service mutations by operation and result.",
		}, []string{"op", "result"}),
		assistantRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assistant_requests_total",
			Help:      "Assistant turns by mode and result.",
		}, []string{"mode", "result"}),
		assistantLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assistant_request_seconds",
			Help:      "Latency of assistant provider calls.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"mode"}),
		entities: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entities",
			Help:      "Number of stored entities per collection.",
		}, []string{"collection"}),
	}
	m.registry.MustRegister(
		m.mutations,
		m.assistantRequests,
		m.assistantLatency,
		m.entities,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Mutation counts one service mutation.
func (m *Metrics) Mutation(op, result string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(op, result).Inc()
}

// Assistant records one provider call.
func (m *Metrics) Assistant(mode, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.assistantRequests.WithLabelValues(mode, result).Inc()
	m.assistantLatency.WithLabelValues(mode).Observe(elapsed.Seconds())
}

// Entities sets the size of a collection.
func (m *Metrics) Entities(collection string, n int) {
	if m == nil {
		return
	}
	m.entities.WithLabelValues(collection).Set(float64(n))
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
