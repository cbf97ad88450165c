package search

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	candidatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "persistence",
		Subsystem: "search",
		Name:      "candidates_total",
		Help:      "Candidates tested, by search variant.",
	}, []string{"variant"})

	recordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "persistence",
		Subsystem: "search",
		Name:      "records_total",
		Help:      "New maximum persistence records found, by search variant.",
	}, []string{"variant"})

	sinkFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "persistence",
		Subsystem: "search",
		Name:      "sink_failures_total",
		Help:      "Record events the sink failed to accept, by search variant.",
	}, []string{"variant"})

	bestPersistence = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "persistence",
		Subsystem: "search",
		Name:      "best_persistence",
		Help:      "Highest persistence seen by the most recent run, by search variant.",
	}, []string{"variant"})

	candidateDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "persistence",
		Subsystem: "search",
		Name:      "candidate_duration_seconds",
		Help:      "Time spent computing the persistence of one candidate.",
		Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
	}, []string{"variant"})
)
