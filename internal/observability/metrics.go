// Package observability holds the Prometheus metrics and OpenTelemetry
// tracing used by the form engine and the HTTP layer.
//
// All Metrics methods accept a nil receiver so services can run without
// instrumentation in tests.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "formflow"

type Metrics struct {
	// EditsTotal counts form edits. Labels: outcome (in_place, forked, or an error kind).
	EditsTotal *prometheus.CounterVec

	// SubmissionsTotal counts submit attempts. Labels: result (accepted, or an error kind).
	SubmissionsTotal *prometheus.CounterVec

	// LifecycleTotal counts lifecycle transitions. Labels: transition.
	LifecycleTotal *prometheus.CounterVec

	// OperationDuration measures engine operations end to end. Labels: operation.
	OperationDuration *prometheus.HistogramVec

	// StatsCacheTotal counts stats cache lookups. Labels: result (hit, miss).
	StatsCacheTotal *prometheus.CounterVec
}

// NewMetrics registers every collector with reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EditsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "forms",
				Name:      "edits_total",
				Help:      "Form edits by outcome",
			},
			[]string{"outcome"},
		),
		SubmissionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "forms",
				Name:      "submissions_total",
				Help:      "Submission attempts by result",
			},
			[]string{"result"},
		),
		LifecycleTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "forms",
				Name:      "lifecycle_transitions_total",
				Help:      "Soft delete, restore and permanent delete transitions",
			},
			[]string{"transition"},
		),
		OperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "engine",
				Name:      "operation_duration_seconds",
				Help:      "Duration of engine operations",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		StatsCacheTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "stats_cache",
				Name:      "lookups_total",
				Help:      "Stats cache lookups by result",
			},
			[]string{"result"},
		),
	}
}

func (m *Metrics) ObserveEdit(outcome string) {
	if m == nil {
		return
	}
	m.EditsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveSubmission(result string) {
	if m == nil {
		return
	}
	m.SubmissionsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveLifecycle(transition string) {
	if m == nil {
		return
	}
	m.LifecycleTotal.WithLabelValues(transition).Inc()
}

// ObserveOperation records the time elapsed since start. Use it with defer.
func (m *Metrics) ObserveOperation(operation string, start time.Time) {
	if m == nil {
		return
	}
	m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.StatsCacheTotal.WithLabelValues(result).Inc()
}
