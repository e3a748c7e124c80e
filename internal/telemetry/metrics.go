// Package telemetry exposes Prometheus metrics and OpenTelemetry tracing
// for conversation turns.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mobais"

// MetricsService is the AppContext key of the shared *Metrics.
const MetricsService = "telemetry.metrics"

// Metrics holds the turn collectors. A nil *Metrics is valid and records
// nothing, so callers never need to check.
type Metrics struct {
	registry      *prometheus.Registry
	turns         *prometheus.CounterVec
	turnDuration  *prometheus.HistogramVec
	fallbacks     *prometheus.CounterVec
	storeFailures prometheus.Counter
	reminders     prometheus.Counter
}

// NewMetrics registers the collectors on a fresh registry, along with the
// Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		turns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_total",
			Help:      "Conversation turns by classified intent and outcome.",
		}, []string{"intent", "outcome"}),
		turnDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "turn_duration_seconds",
			Help:      "Time to answer a turn.",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 2.5, 5, 10, 30},
		}, []string{"outcome"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_replies_total",
			Help:      "Language-model fallback calls by result.",
		}, []string{"result"}),
		storeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminder_store_failures_total",
			Help:      "Reminder writes that failed.",
		}),
		reminders: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_created_total",
			Help:      "Reminders committed to the store.",
		}),
	}

	reg.MustRegister(
		m.turns, m.turnDuration, m.fallbacks, m.storeFailures, m.reminders,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Turn outcomes.
const (
	OutcomeHandled   = "handled"
	OutcomeDelegated = "delegated"
	OutcomeError     = "error"
	OutcomeEmpty     = "empty"
)

// ObserveTurn records one answered turn.
func (m *Metrics) ObserveTurn(intent, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.turns.WithLabelValues(intent, outcome).Inc()
	m.turnDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// ObserveFallback records a language-model call; ok is false on failure.
func (m *Metrics) ObserveFallback(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.fallbacks.WithLabelValues(result).Inc()
}

// ObserveReminder records a reminder write.
func (m *Metrics) ObserveReminder(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.storeFailures.Inc()
		return
	}
	m.reminders.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
