package aggregators

import (
	"regexp"
	"strings"
	"time"

	"github.com/mileusna/useragent"
)

const timestampLayout = "2/Jan/2006:15:04:05"

var (
	// Four dot-separated digit groups at the very start of the line; octet ranges are not checked.
	addressPattern = regexp.MustCompile(`^(\d+\.\d+\.\d+\.\d+)`)
	// Quoted request line, e.g. "GET /index.html HTTP/1.1". The path must start with a slash.
	endpointPattern = regexp.MustCompile(`"[A-Z]+ (/\S*) HTTP/1\.1"`)
	// Opening of a bracketed timestamp, e.g. [10/Oct/2023:13:55:36 +0000]
	timestampPattern = regexp.MustCompile(`\[(\d+/\w+/\d+:\d+:\d+:\d+)`)
	// Combined log format tail: "<request>" <status> <bytes> "<referer>" "<user agent>"
	userAgentPattern = regexp.MustCompile(`HTTP/[0-9.]+" \d{3} \S+ "[^"]*" "([^"]*)"`)
)

var failureIndicators = []string{" 401 ", "Invalid credentials"}

// extractAddress returns the address token at the start of line.
func extractAddress(line string) (string, bool) {
	m := addressPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// extractEndpoint returns the path of the first quoted HTTP/1.1 request in line.
func extractEndpoint(line string) (string, bool) {
	m := endpointPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// extractHour returns the hour of day of the first bracketed timestamp in line.
// found is false when the line has no timestamp field at all; err is set when
// the field is present but is not a valid DD/Mon/YYYY:HH:MM:SS time.
func extractHour(line string) (hour int, found bool, err error) {
	m := timestampPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false, nil
	}
	ts, err := time.Parse(timestampLayout, m[1])
	if err != nil {
		return 0, true, err
	}
	return ts.Hour(), true, nil
}

// isFailureIndicator reports whether line looks like a failed login.
func isFailureIndicator(line string) bool {
	for _, indicator := range failureIndicators {
		if strings.Contains(line, indicator) {
			return true
		}
	}
	return false
}

// extractUserAgent returns the client family of a combined-format line ("Firefox", "curl", ...).
func extractUserAgent(line string) (string, bool) {
	m := userAgentPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	ua := strings.TrimSpace(m[1])
	if ua == "" || ua == "-" {
		return "", false
	}
	return normalizeUserAgent(ua), true
}

// normalizeUserAgent parses user agent to extract family, or returns original if parsing fails.
func normalizeUserAgent(ua string) string {
	parsed := useragent.Parse(ua)
	if parsed.Name != "" {
		return parsed.Name
	}
	return ua
}
