package aggregators

import (
	"log-insights/internal/shared/metrics"
)

const (
	fieldAddress   = "address"
	fieldEndpoint  = "endpoint"
	fieldTimestamp = "timestamp"
)

var (
	metricLinesReadTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "lines_read_total",
		},
	)

	// metricLinePatternMissTotal counts lines that did not yield a given field.
	// A miss only excludes the line from that field's mapping.
	metricLinePatternMissTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "line_pattern_miss_total",
		},
		[]string{"field"},
	)

	metricTimestampParseFailedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "timestamp_parse_failed_total",
		},
	)

	// metricUnattributedFailuresTotal counts failed-login lines dropped because no address was extracted.
	metricUnattributedFailuresTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "unattributed_failures_total",
		},
	)
)
