package vcs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "forgesim",
		Subsystem: "core",
		Name:      "operations_total",
		Help:      "Completed core engine operations by kind.",
	}, []string{"operation"})

	commitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "forgesim",
		Subsystem: "core",
		Name:      "commits_recorded_total",
		Help:      "Commits appended to the aggregate log.",
	})

	mergesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "forgesim",
		Subsystem: "core",
		Name:      "merges_total",
		Help:      "Branch merges performed.",
	})
)
