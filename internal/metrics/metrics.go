// Package metrics defines the Prometheus collectors exported by serve.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Calculation outcomes used as the "outcome" label.
const (
	OutcomeOK         = "ok"
	OutcomeIncomplete = "incomplete"
	OutcomeError      = "error"
)

// Metrics holds the collectors and the registry they are registered on.
type Metrics struct {
	registry     *prometheus.Registry
	Calculations *prometheus.CounterVec
	RPCDuration  *prometheus.HistogramVec
	Toggles      prometheus.Counter
}

// New creates collectors on a fresh registry, including Go and process
// collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		Calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "brunchsplit",
			Name:      "calculations_total",
			Help:      "Calculate requests by outcome.",
		}, []string{"outcome"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "brunchsplit",
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure and code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure", "code"}),
		Toggles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "brunchsplit",
			Name:      "assignment_changes_total",
			Help:      "Checkbox changes applied to the session.",
		}),
	}
	reg.MustRegister(
		m.Calculations,
		m.RPCDuration,
		m.Toggles,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
