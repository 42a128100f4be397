package geolocators

import (
	"log-insights/internal/shared/metrics"
)

var (
	metricLookupsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubGeolocation,
			Name:      "lookups_total",
		},
		[]string{"provider", "outcome"},
	)

	metricLookupDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubGeolocation,
			Name:      "lookup_latency",
			Buckets:   metrics.DefBuckets,
		},
		[]string{"provider"},
	)
)
