// Package metrics holds the Prometheus collectors of the news pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecordsCollected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "novatrend_records_collected_total",
			Help: "Raw records returned by search backends",
		},
		[]string{"feed"},
	)

	DuplicatesDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "novatrend_duplicates_dropped_total",
			Help: "Records removed by near-duplicate detection",
		},
		[]string{"feed"},
	)

	ClassifierFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "novatrend_classifier_fallbacks_total",
			Help: "Records graded with the fallback because classification failed",
		},
		[]string{"reason"},
	)

	QueryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "novatrend_query_failures_total",
			Help: "Search queries that failed or timed out",
		},
		[]string{"source"},
	)

	PipelineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "novatrend_pipeline_duration_seconds",
			Help:    "Duration of one pipeline run per feed",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"feed"},
	)
)
