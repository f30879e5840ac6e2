// Package metrics provides Prometheus observability metrics for the
// DialPro operations API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for the application.
var Registry = prometheus.NewRegistry()

// factory registers metrics to our custom Registry directly.
var factory = promauto.With(Registry)

// LoginAttemptsTotal tracks login attempts by outcome
// (success, invalid_credentials, in_progress).
var LoginAttemptsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "dialpro",
	Subsystem: "auth",
	Name:      "login_attempts_total",
	Help:      "Total login attempts by outcome",
}, []string{"outcome"})

// RecordsLoaded tracks call log entries accepted into the record store.
var RecordsLoaded = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "dialpro",
	Subsystem: "records",
	Name:      "loaded_total",
	Help:      "Number of call log entries currently held by the record store",
})

// RecordsRejectedTotal tracks entries rejected during load by reason.
var RecordsRejectedTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "dialpro",
	Subsystem: "records",
	Name:      "rejected_total",
	Help:      "Call log entries rejected during load, by reason",
}, []string{"reason"})

// QueriesTotal tracks call log queries served by role.
var QueriesTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "dialpro",
	Subsystem: "query",
	Name:      "served_total",
	Help:      "Call log queries served, by role",
}, []string{"role"})

// QueryDurationSeconds tracks time spent filtering the call log.
var QueryDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "dialpro",
	Subsystem: "query",
	Name:      "duration_seconds",
	Help:      "Time taken to filter the call log",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
})

// IntentEventsTotal tracks intent events published by kind.
var IntentEventsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "dialpro",
	Subsystem: "intents",
	Name:      "published_total",
	Help:      "Intent events published, by kind",
}, []string{"kind"})

// IntentEventsConsumedTotal tracks intent events consumed by the
// worker, by kind.
var IntentEventsConsumedTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "dialpro",
	Subsystem: "intents",
	Name:      "consumed_total",
	Help:      "Intent events consumed by the worker, by kind",
}, []string{"kind"})

// ExportsTotal tracks call log CSV exports by outcome.
var ExportsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "dialpro",
	Subsystem: "exports",
	Name:      "total",
	Help:      "Call log exports, by outcome",
}, []string{"outcome"})
