package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// queueDepth is only written by worker goroutines after each job.
var (
	submissionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shodan",
			Subsystem: "dispatch",
			Name:      "submissions_total",
			Help:      "Jobs accepted for execution.",
		},
	)

	queueFullTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shodan",
			Subsystem: "dispatch",
			Name:      "queue_full_total",
			Help:      "Enqueue attempts that timed out on a full queue.",
		},
	)

	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "shodan",
			Subsystem: "dispatch",
			Name:      "run_duration_seconds",
			Help:      "Job execution latency.",
			Buckets:   prometheus.DefBuckets,
		},
	)

	queueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "shodan",
			Subsystem: "dispatch",
			Name:      "queue_depth",
			Help:      "Current depth of the dispatch queue.",
		},
	)
)
