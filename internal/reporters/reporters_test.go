package reporters

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"log-insights/internal/models"
)

func newTestReport() *models.Report {
	return &models.Report{
		ReportID:    "01JA2Y0V6S5Q1T8W0C4ZB3KX7M",
		Source:      "sample.log",
		GeneratedAt: time.Date(2026, 10, 18, 9, 12, 44, 0, time.UTC),
		Threshold:   10,
		LinesRead:   15,
		MostAccessedEndpoint: &models.EndpointRow{
			Endpoint:    "/login",
			AccessCount: 12,
		},
		RequestsByAddress: []models.AddressRow{
			{Address: "10.0.0.9", RequestCount: 12, City: "Hanoi", Country: "VN"},
			{Address: "192.168.1.1", RequestCount: 2, City: "Unknown", Country: "Unknown"},
			{Address: "10.0.0.5", RequestCount: 1, City: "San Jose, CA", Country: "US"},
		},
		RequestsByEndpoint: []models.EndpointRow{
			{Endpoint: "/login", AccessCount: 12},
			{Endpoint: "/index.html", AccessCount: 3},
		},
		SuspiciousAddresses: []models.SuspiciousRow{
			{Address: "10.0.0.9", FailedLoginCount: 11},
		},
		RequestsByHour: []models.HourRow{
			{Hour: 9, RequestCount: 1},
			{Hour: 13, RequestCount: 14},
		},
		RequestsByUserAgent: []models.UserAgentRow{
			{UserAgent: "Chrome", RequestCount: 10},
		},
	}
}

func TestCSVWriter_Write(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewCSVWriter().Write(&buf, newTestReport()))

	expected := strings.Join([]string{
		"IP Address,Request Count,City,Country",
		"10.0.0.9,12,Hanoi,VN",
		"192.168.1.1,2,Unknown,Unknown",
		`10.0.0.5,1,"San Jose, CA",US`,
		"",
		"Endpoint,Access Count",
		"/login,12",
		"/index.html,3",
		"",
		"IP Address,Failed Login Count",
		"10.0.0.9,11",
		"",
		"Hour,Request Count",
		"9,1",
		"13,14",
		"",
	}, "\r\n")
	assert.Equal(t, expected, buf.String())
}

func TestCSVWriter_EmptyReportKeepsAllSections(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewCSVWriter().Write(&buf, &models.Report{}))

	assert.Equal(t, "IP Address,Request Count,City,Country\r\n\r\nEndpoint,Access Count\r\n\r\nIP Address,Failed Login Count\r\n\r\nHour,Request Count\r\n", buf.String())
}

func TestConsoleWriter_Write(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewConsoleWriter().Write(&buf, newTestReport()))

	expected := `IP Address           Request Count
10.0.0.9             12
192.168.1.1          2
10.0.0.5             1

Most Frequently Accessed Endpoint:
/login (Accessed 12 times)

Suspicious Activity Detected (more than 10 failed logins):
10.0.0.9             11

Requests by Hour:
9:00 - 10:00   1 requests
13:00 - 14:00   14 requests

Requests by User Agent:
Chrome               10
`
	assert.Equal(t, expected, buf.String())
}

func TestConsoleWriter_EmptyReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewConsoleWriter().Write(&buf, &models.Report{Threshold: 3}))

	out := buf.String()
	assert.Contains(t, out, "No endpoints found")
	assert.Contains(t, out, "Suspicious Activity Detected (more than 3 failed logins):\nNone\n")
	assert.NotContains(t, out, "User Agent")
}

func TestChartWriter_Write(t *testing.T) {
	t.Parallel()

	report := newTestReport()
	report.RequestsByAddress = append(report.RequestsByAddress,
		models.AddressRow{Address: "10.0.0.6", RequestCount: 1},
		models.AddressRow{Address: "10.0.0.7", RequestCount: 1},
		models.AddressRow{Address: "10.0.0.8", RequestCount: 1},
	)

	var buf bytes.Buffer
	require.NoError(t, NewChartWriter(12).Write(&buf, report))

	expected := `Top 5 IP Addresses by Requests
10.0.0.9    | ############ 12
192.168.1.1 | ## 2
10.0.0.5    | # 1
10.0.0.6    | # 1
10.0.0.7    | # 1

Requests by Hour
09 | # 1
13 | ############ 14
`
	assert.Equal(t, expected, buf.String())
}

func TestChartWriter_NoData(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewChartWriter(0).Write(&buf, &models.Report{}))

	assert.Equal(t, "Top 5 IP Addresses by Requests\n(no data)\n\nRequests by Hour\n(no data)\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write(io.Writer, *models.Report) error {
	return errors.New("render failed")
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	t.Run("writes csv", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out", "log_analysis_results.csv")
		require.NoError(t, WriteFile(path, NewCSVWriter(), newTestReport()))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "IP Address,Request Count,City,Country\r\n"))
	})

	t.Run("render failure leaves nothing behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "log_analysis_results.csv")
		err := WriteFile(path, failingWriter{}, newTestReport())
		require.Error(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
