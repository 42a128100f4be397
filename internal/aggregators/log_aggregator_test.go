package aggregators

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"log-insights/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threeLineLog = `192.168.1.1 - - [10/Oct/2023:13:55:36] "GET /index.html HTTP/1.1" 401 Invalid credentials
192.168.1.1 - - [10/Oct/2023:13:56:10] "GET /index.html HTTP/1.1" 200 OK
10.0.0.5 - - [10/Oct/2023:14:01:00] "GET /admin HTTP/1.1" 401 Invalid credentials
`

func aggregate(t *testing.T, log string) *models.AggregationResult {
	t.Helper()
	result, err := NewLogAggregator().Aggregate(context.Background(), strings.NewReader(log))
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func TestLogAggregator_Aggregate_ThreeLineScenario(t *testing.T) {
	t.Parallel()

	result := aggregate(t, threeLineLog)

	assert.Equal(t, int64(3), result.LinesRead())
	assert.Equal(t, map[string]int64{"192.168.1.1": 2, "10.0.0.5": 1}, models.CountMap(result.RequestsByAddress()))
	assert.Equal(t, map[string]int64{"/index.html": 2, "/admin": 1}, models.CountMap(result.RequestsByEndpoint()))
	assert.Equal(t, map[string]int64{"192.168.1.1": 1, "10.0.0.5": 1}, models.CountMap(result.FailedLoginsByAddress()))
	assert.Equal(t, map[int]int64{13: 2, 14: 1}, models.CountMap(result.RequestsByHour()))

	top, ok := result.MostAccessedEndpoint()
	require.True(t, ok)
	assert.Equal(t, models.KeyCount[string]{Key: "/index.html", Count: 2}, top)

	suspicious := result.SuspiciousAddresses(0)
	assert.Equal(t, map[string]int64{"192.168.1.1": 1, "10.0.0.5": 1}, models.CountMap(suspicious))
	assert.Empty(t, result.SuspiciousAddresses(10))
}

func TestLogAggregator_Aggregate_AddressSumMatchesAddressLines(t *testing.T) {
	t.Parallel()

	log := strings.Join([]string{
		`10.0.0.1 - - [10/Oct/2023:13:55:36] "GET / HTTP/1.1" 200`,
		`10.0.0.1 just an address`,
		`- - [10/Oct/2023:13:55:36] "GET /no-address HTTP/1.1" 200`,
		`10.0.0.2 - - [10/Oct/2023:13:55:36] "get /lowercase HTTP/1.1" 200`,
		``,
		`garbage line`,
		`10.0.0.3 - - [99/Zzz/2023:13:55:36] "GET /bad-time HTTP/1.1" 200`,
	}, "\n")

	result := aggregate(t, log)

	var total int64
	for _, p := range result.RequestsByAddress() {
		total += p.Count
	}
	assert.Equal(t, int64(4), total, "only lines starting with an address count")
	assert.Equal(t, int64(7), result.LinesRead())
	assert.Equal(t, map[string]int64{"/": 1, "/no-address": 1, "/bad-time": 1}, models.CountMap(result.RequestsByEndpoint()))
	assert.Equal(t, map[int]int64{13: 3}, models.CountMap(result.RequestsByHour()))
}

func TestLogAggregator_Aggregate_FailureAttribution(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		line     string
		expected map[string]int64
	}{
		{
			name:     "401 with leading address",
			line:     `172.16.0.9 - - [10/Oct/2023:13:55:36] "POST /login HTTP/1.1" 401 128`,
			expected: map[string]int64{"172.16.0.9": 1},
		},
		{
			name:     "401 without leading address is dropped",
			line:     `- - [10/Oct/2023:13:55:36] "POST /login HTTP/1.1" 401 128`,
			expected: map[string]int64{},
		},
		{
			name:     "both indicators count once",
			line:     `172.16.0.9 - - "POST /login HTTP/1.1" 401 Invalid credentials`,
			expected: map[string]int64{"172.16.0.9": 1},
		},
		{
			name:     "success line",
			line:     `172.16.0.9 - - "POST /login HTTP/1.1" 200 OK`,
			expected: map[string]int64{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := aggregate(t, tt.line+"\n")
			assert.Equal(t, tt.expected, models.CountMap(result.FailedLoginsByAddress()))
		})
	}
}

func TestLogAggregator_Aggregate_SuspiciousBoundary(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	for address, failures := range map[string]int{"10.0.0.9": 9, "10.0.0.10": 10, "10.0.0.11": 11} {
		for i := 0; i < failures; i++ {
			fmt.Fprintf(&b, "%s - - [10/Oct/2023:13:55:36] \"POST /login HTTP/1.1\" 401 Invalid credentials\n", address)
		}
	}

	result := aggregate(t, b.String())

	assert.Equal(t, []models.KeyCount[string]{{Key: "10.0.0.11", Count: 11}}, result.SuspiciousAddresses(10))
}

func TestLogAggregator_Aggregate_UnparseableTimestampKeepsOtherFields(t *testing.T) {
	t.Parallel()

	result := aggregate(t, `10.0.0.5 - - [10/Foo/2023:13:55:36] "GET /admin HTTP/1.1" 401 Invalid credentials`)

	assert.Empty(t, result.RequestsByHour())
	assert.Equal(t, map[string]int64{"10.0.0.5": 1}, models.CountMap(result.RequestsByAddress()))
	assert.Equal(t, map[string]int64{"/admin": 1}, models.CountMap(result.RequestsByEndpoint()))
	assert.Equal(t, map[string]int64{"10.0.0.5": 1}, models.CountMap(result.FailedLoginsByAddress()))
}

func TestLogAggregator_Aggregate_IsDeterministic(t *testing.T) {
	t.Parallel()

	log := threeLineLog + `10.0.0.5 - - [10/Oct/2023:15:01:00] "GET /admin HTTP/1.1" 200 OK` + "\n"
	aggregator := NewLogAggregator()

	first, err := aggregator.Aggregate(context.Background(), strings.NewReader(log))
	require.NoError(t, err)
	second, err := aggregator.Aggregate(context.Background(), strings.NewReader(log))
	require.NoError(t, err)

	assert.Equal(t, first, second)

	// A tie on /index.html and /admin resolves to the endpoint seen first, on every run.
	top, ok := second.MostAccessedEndpoint()
	require.True(t, ok)
	assert.Equal(t, "/index.html", top.Key)
}

func TestLogAggregator_Aggregate_CRLFAndMissingTrailingNewline(t *testing.T) {
	t.Parallel()

	log := "10.0.0.1 - - [10/Oct/2023:08:00:00] \"GET /a HTTP/1.1\" 200\r\n" +
		"10.0.0.2 - - [10/Oct/2023:09:00:00] \"GET /b HTTP/1.1\" 401 "

	result := aggregate(t, log)

	assert.Equal(t, int64(2), result.LinesRead())
	assert.Equal(t, map[int]int64{8: 1, 9: 1}, models.CountMap(result.RequestsByHour()))
	assert.Equal(t, map[string]int64{"10.0.0.2": 1}, models.CountMap(result.FailedLoginsByAddress()))
}

func TestLogAggregator_Aggregate_LongLine(t *testing.T) {
	t.Parallel()

	line := `10.0.0.1 - - [10/Oct/2023:08:00:00] "GET /` + strings.Repeat("a", 200*1024) + ` HTTP/1.1" 200`

	result := aggregate(t, line)

	require.Len(t, result.RequestsByEndpoint(), 1)
	assert.Len(t, result.RequestsByEndpoint()[0].Key, 200*1024+1)
}

func TestLogAggregator_Aggregate_UserAgents(t *testing.T) {
	t.Parallel()

	log := `1.2.3.4 - - [10/Oct/2023:13:55:36 +0000] "GET / HTTP/1.1" 200 2028 "-" "curl/7.68.0"
1.2.3.5 - - [10/Oct/2023:13:55:37 +0000] "GET / HTTP/1.1" 200 2028 "-" "curl/8.1.2"
1.2.3.6 - - [10/Oct/2023:13:55:38 +0000] "GET / HTTP/1.1" 200 2028
`
	result := aggregate(t, log)

	assert.Equal(t, map[string]int64{"curl": 2}, models.CountMap(result.RequestsByUserAgent()))
}

func TestLogAggregator_Aggregate_EmptyStream(t *testing.T) {
	t.Parallel()

	result := aggregate(t, "")

	assert.Equal(t, int64(0), result.LinesRead())
	assert.Empty(t, result.RequestsByAddress())
	_, ok := result.MostAccessedEndpoint()
	assert.False(t, ok)
}

func TestLogAggregator_Aggregate_ReadFailure(t *testing.T) {
	t.Parallel()

	errDisk := errors.New("disk failure")
	r := io.MultiReader(strings.NewReader(threeLineLog), iotest.ErrReader(errDisk))

	result, err := NewLogAggregator().Aggregate(context.Background(), r)

	assert.Nil(t, result)
	require.Error(t, err)
	assert.ErrorIs(t, err, errDisk)
	assert.Contains(t, err.Error(), "after 3 lines")
}
