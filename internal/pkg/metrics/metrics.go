// Package metrics declares the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recommendation modes used as label values.
const (
	ModeCoverage = "coverage"
	ModeWeighted = "weighted"
)

var (
	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unimatch_recommendations_total",
			Help: "Total number of recommendation requests by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "unimatch_recommendation_duration_seconds",
			Help:    "Time spent ranking the catalog for one request",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)

	CatalogCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unimatch_catalog_cache_lookups_total",
			Help: "Catalog snapshot lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	IngestedRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unimatch_ingestion_records_total",
			Help: "Ingested records by entity and outcome status",
		},
		[]string{"entity", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "unimatch_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)
