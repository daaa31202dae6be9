package mealdb

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealfinder_mealdb_requests_total",
			Help: "Total number of TheMealDB requests by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	upstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mealfinder_mealdb_request_duration_seconds",
			Help:    "TheMealDB request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

// outcome labels
const (
	outcomeOK        = "ok"
	outcomeNetwork   = "network_error"
	outcomeStatus    = "status_error"
	outcomeMalformed = "malformed"
)
