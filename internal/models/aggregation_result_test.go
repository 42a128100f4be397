package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newFailedLoginResult(counts map[string]int) *AggregationResult {
	failed := NewTally[string]()
	for _, address := range []string{"10.0.0.9", "10.0.0.10", "10.0.0.11"} {
		for i := 0; i < counts[address]; i++ {
			failed.Increment(address)
		}
	}
	return NewAggregationResult(0, nil, nil, failed, nil, nil)
}

func TestAggregationResult_SuspiciousAddresses_StrictThreshold(t *testing.T) {
	t.Parallel()

	result := newFailedLoginResult(map[string]int{
		"10.0.0.9":  9,
		"10.0.0.10": 10,
		"10.0.0.11": 11,
	})

	suspicious := result.SuspiciousAddresses(10)

	assert.Equal(t, []KeyCount[string]{{Key: "10.0.0.11", Count: 11}}, suspicious)
}

func TestAggregationResult_SuspiciousAddresses_Empty(t *testing.T) {
	t.Parallel()

	result := NewAggregationResult(0, nil, nil, nil, nil, nil)

	suspicious := result.SuspiciousAddresses(0)
	assert.NotNil(t, suspicious)
	assert.Empty(t, suspicious)
}

func TestAggregationResult_MostAccessedEndpoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		endpoints []string
		expected  KeyCount[string]
		ok        bool
	}{
		{
			name:      "no endpoints",
			endpoints: nil,
			ok:        false,
		},
		{
			name:      "single maximum",
			endpoints: []string{"/admin", "/index.html", "/index.html"},
			expected:  KeyCount[string]{Key: "/index.html", Count: 2},
			ok:        true,
		},
		{
			name:      "tie goes to first seen",
			endpoints: []string{"/login", "/admin", "/admin", "/login"},
			expected:  KeyCount[string]{Key: "/login", Count: 2},
			ok:        true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			byEndpoint := NewTally[string]()
			for _, e := range tt.endpoints {
				byEndpoint.Increment(e)
			}
			result := NewAggregationResult(0, nil, byEndpoint, nil, nil, nil)

			top, ok := result.MostAccessedEndpoint()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, top)
		})
	}
}

func TestAggregationResult_AccessorsReturnCopies(t *testing.T) {
	t.Parallel()

	byAddress := NewTally[string]()
	byAddress.Increment("192.168.1.1")
	result := NewAggregationResult(1, byAddress, nil, nil, nil, nil)

	pairs := result.RequestsByAddress()
	pairs[0].Count = 42

	assert.Equal(t, int64(1), result.RequestsByAddress()[0].Count)
	assert.Equal(t, int64(1), result.LinesRead())
	assert.Empty(t, result.RequestsByHour())
	assert.Empty(t, result.RequestsByUserAgent())
}
