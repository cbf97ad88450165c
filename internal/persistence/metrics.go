package persistence

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "persistence",
		Name:      "product_cache_lookups_total",
		Help:      "Divide-and-conquer product cache lookups by result (hit, miss).",
	}, []string{"result"})

	checksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "persistence",
		Name:      "checks_total",
		Help:      "Numbers whose multiplicative persistence was computed.",
	})

	stepsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "persistence",
		Name:      "reduction_steps_total",
		Help:      "Digit-product reduction steps applied across all checks.",
	})
)
