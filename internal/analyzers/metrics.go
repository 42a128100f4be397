package analyzers

import (
	"log-insights/internal/shared/metrics"
)

var (
	metricAnalysesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAnalysis,
			Name:      "analyses_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricAnalysisDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAnalysis,
			Name:      "analysis_latency",
			Buckets:   metrics.DefBuckets,
		},
		[]string{metrics.FieldErrorCode},
	)
)
