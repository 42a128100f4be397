package models

import "cmp"

// AggregationResult is the snapshot produced by one aggregation pass over an access log.
// It is read-only: every accessor returns a copy, in first-seen order.
//
// Example, for the lines
//
//	192.168.1.1 - - [10/Oct/2023:13:55:36] "GET /index.html HTTP/1.1" 401 Invalid credentials
//	192.168.1.1 - - [10/Oct/2023:13:56:10] "GET /index.html HTTP/1.1" 200 OK
//	10.0.0.5 - - [10/Oct/2023:14:01:00] "GET /admin HTTP/1.1" 401 Invalid credentials
//
// the result holds:
//   - requests by address: 192.168.1.1=2, 10.0.0.5=1
//   - requests by endpoint: /index.html=2, /admin=1
//   - failed logins by address: 192.168.1.1=1, 10.0.0.5=1
//   - requests by hour: 13=2, 14=1
type AggregationResult struct {
	linesRead             int64
	requestsByAddress     *Tally[string]
	requestsByEndpoint    *Tally[string]
	failedLoginsByAddress *Tally[string]
	requestsByHour        *Tally[int]
	requestsByUserAgent   *Tally[string]
}

// NewAggregationResult takes ownership of the given tallies. Callers must not mutate them afterwards.
func NewAggregationResult(
	linesRead int64,
	requestsByAddress, requestsByEndpoint, failedLoginsByAddress *Tally[string],
	requestsByHour *Tally[int],
	requestsByUserAgent *Tally[string],
) *AggregationResult {
	return &AggregationResult{
		linesRead:             linesRead,
		requestsByAddress:     orEmpty(requestsByAddress),
		requestsByEndpoint:    orEmpty(requestsByEndpoint),
		failedLoginsByAddress: orEmpty(failedLoginsByAddress),
		requestsByHour:        orEmpty(requestsByHour),
		requestsByUserAgent:   orEmpty(requestsByUserAgent),
	}
}

func orEmpty[K cmp.Ordered](t *Tally[K]) *Tally[K] {
	if t == nil {
		return NewTally[K]()
	}
	return t
}

// LinesRead is the number of lines consumed from the stream, matched or not.
func (r *AggregationResult) LinesRead() int64 {
	return r.linesRead
}

func (r *AggregationResult) RequestsByAddress() []KeyCount[string] {
	return r.requestsByAddress.Pairs()
}

func (r *AggregationResult) RequestsByEndpoint() []KeyCount[string] {
	return r.requestsByEndpoint.Pairs()
}

// FailedLoginsByAddress only lists addresses with at least one attributed failure.
func (r *AggregationResult) FailedLoginsByAddress() []KeyCount[string] {
	return r.failedLoginsByAddress.Pairs()
}

func (r *AggregationResult) RequestsByHour() []KeyCount[int] {
	return r.requestsByHour.Pairs()
}

func (r *AggregationResult) RequestsByUserAgent() []KeyCount[string] {
	return r.requestsByUserAgent.Pairs()
}

// SuspiciousAddresses returns the addresses whose failed-login count is strictly greater than threshold.
func (r *AggregationResult) SuspiciousAddresses(threshold int64) []KeyCount[string] {
	suspicious := make([]KeyCount[string], 0)
	for _, p := range r.failedLoginsByAddress.pairs {
		if p.Count > threshold {
			suspicious = append(suspicious, p)
		}
	}
	return suspicious
}

// MostAccessedEndpoint returns the endpoint with the highest count.
// On ties the endpoint seen first wins. ok is false when no endpoint was extracted.
func (r *AggregationResult) MostAccessedEndpoint() (top KeyCount[string], ok bool) {
	for _, p := range r.requestsByEndpoint.pairs {
		if !ok || p.Count > top.Count {
			top, ok = p, true
		}
	}
	return top, ok
}
