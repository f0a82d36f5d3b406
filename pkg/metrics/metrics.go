// Package metrics provides Prometheus metrics for the Compass service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ScoringRequestsTotal tracks scoring passes by tenant
	ScoringRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "compass",
			Subsystem: "scoring",
			Name:      "requests_total",
			Help:      "Total number of motion scoring requests",
		},
		[]string{"tenant_id"},
	)

	// ScoringDuration tracks scoring pass duration in seconds
	ScoringDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "compass",
			Subsystem: "scoring",
			Name:      "duration_seconds",
			Help:      "Duration of motion scoring passes in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	// PlanOperationsTotal tracks plan library mutations by operation and outcome
	PlanOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "compass",
			Subsystem: "plans",
			Name:      "operations_total",
			Help:      "Total number of plan library operations by outcome",
		},
		[]string{"tenant_id", "operation", "outcome"},
	)

	// PlanStatusTransitionsTotal tracks successful status transitions
	PlanStatusTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "compass",
			Subsystem: "plans",
			Name:      "status_transitions_total",
			Help:      "Total number of plan status transitions by from/to pair",
		},
		[]string{"from", "to"},
	)

	// StrategyRequestsTotal tracks strategy generation calls by result
	StrategyRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "compass",
			Subsystem: "strategy",
			Name:      "requests_total",
			Help:      "Total number of strategy generation requests by result",
		},
		[]string{"tenant_id", "result"},
	)

	// StrategyRequestDuration tracks strategy generation latency
	StrategyRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "compass",
			Subsystem: "strategy",
			Name:      "request_duration_seconds",
			Help:      "Duration of strategy generation requests in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	// LibraryReadsTotal tracks plan library loads from storage
	LibraryReadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "compass",
			Subsystem: "storage",
			Name:      "library_reads_total",
			Help:      "Total number of plan library loads by outcome",
		},
		[]string{"outcome"},
	)

	// LibraryWritesTotal tracks plan library saves to storage
	LibraryWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "compass",
			Subsystem: "storage",
			Name:      "library_writes_total",
			Help:      "Total number of plan library saves by outcome",
		},
		[]string{"outcome"},
	)
)
