package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	lookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "social",
		Subsystem: "cache",
		Name:      "lookups_total",
		Help:      "Named cache lookups by result (hit, miss, error)",
	}, []string{"cache", "result"})

	sweeps = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "social",
		Subsystem: "cache",
		Name:      "sweeps_total",
		Help:      "Global eviction sweeps that cleared every named cache",
	})
)
