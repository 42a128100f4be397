package aggregators

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"log-insights/internal/models"
	"log-insights/internal/shared/loggers"
)

// LogAggregator turns an access log stream into an AggregationResult in a single sequential pass.
//
//go:generate mockgen -source=log_aggregator.go -destination=./mocks/log_aggregator_mock.go -package=mocks
type LogAggregator interface {
	// Aggregate reads r to the end. It only fails when r itself fails; lines that do
	// not match a pattern are left out of that pattern's mapping.
	Aggregate(ctx context.Context, r io.Reader) (*models.AggregationResult, error)
}

type logAggregator struct{}

func NewLogAggregator() LogAggregator {
	return &logAggregator{}
}

// aggregation is the mutable state of one pass. It is never shared between calls.
type aggregation struct {
	linesRead             int64
	requestsByAddress     *models.Tally[string]
	requestsByEndpoint    *models.Tally[string]
	failedLoginsByAddress *models.Tally[string]
	requestsByHour        *models.Tally[int]
	requestsByUserAgent   *models.Tally[string]
}

func newAggregation() *aggregation {
	return &aggregation{
		requestsByAddress:     models.NewTally[string](),
		requestsByEndpoint:    models.NewTally[string](),
		failedLoginsByAddress: models.NewTally[string](),
		requestsByHour:        models.NewTally[int](),
		requestsByUserAgent:   models.NewTally[string](),
	}
}

func (a *logAggregator) Aggregate(ctx context.Context, r io.Reader) (*models.AggregationResult, error) {
	logger := loggers.Ctx(ctx)
	state := newAggregation()

	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			state.add(ctx, strings.TrimRight(line, "\r\n"))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read log stream after %d lines: %w", state.linesRead, err)
		}
	}

	logger.Debug().
		Int64(loggers.FieldLinesRead, state.linesRead).
		Int("addresses", state.requestsByAddress.Len()).
		Int("endpoints", state.requestsByEndpoint.Len()).
		Msg("finished aggregating log stream")

	return models.NewAggregationResult(
		state.linesRead,
		state.requestsByAddress,
		state.requestsByEndpoint,
		state.failedLoginsByAddress,
		state.requestsByHour,
		state.requestsByUserAgent,
	), nil
}

// add applies every extraction to line independently; a miss in one never skips another.
func (s *aggregation) add(ctx context.Context, line string) {
	s.linesRead++
	metricLinesReadTotal.Inc()

	address, hasAddress := extractAddress(line)
	if hasAddress {
		s.requestsByAddress.Increment(address)
	} else {
		metricLinePatternMissTotal.WithLabelValues(fieldAddress).Inc()
	}

	if endpoint, ok := extractEndpoint(line); ok {
		s.requestsByEndpoint.Increment(endpoint)
	} else {
		metricLinePatternMissTotal.WithLabelValues(fieldEndpoint).Inc()
	}

	hour, found, err := extractHour(line)
	switch {
	case err != nil:
		metricTimestampParseFailedTotal.Inc()
		loggers.Ctx(ctx).Debug().
			Err(err).
			Int64(loggers.FieldLine, s.linesRead).
			Msg("skipping unparseable timestamp")
	case found:
		s.requestsByHour.Increment(hour)
	default:
		metricLinePatternMissTotal.WithLabelValues(fieldTimestamp).Inc()
	}

	// A failure that cannot be attributed to an address is dropped.
	if isFailureIndicator(line) {
		if hasAddress {
			s.failedLoginsByAddress.Increment(address)
		} else {
			metricUnattributedFailuresTotal.Inc()
		}
	}

	if userAgent, ok := extractUserAgent(line); ok {
		s.requestsByUserAgent.Increment(userAgent)
	}
}
