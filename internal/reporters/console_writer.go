package reporters

import (
	"bufio"
	"fmt"
	"io"

	"log-insights/internal/models"
)

type consoleWriter struct{}

// NewConsoleWriter returns a writer producing the plain-text terminal summary.
func NewConsoleWriter() ReportWriter {
	return consoleWriter{}
}

func (consoleWriter) Write(w io.Writer, report *models.Report) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%-20s %s\n", "IP Address", "Request Count")
	for _, row := range report.RequestsByAddress {
		fmt.Fprintf(bw, "%-20s %d\n", row.Address, row.RequestCount)
	}

	fmt.Fprint(bw, "\nMost Frequently Accessed Endpoint:\n")
	if top := report.MostAccessedEndpoint; top != nil {
		fmt.Fprintf(bw, "%s (Accessed %d times)\n", top.Endpoint, top.AccessCount)
	} else {
		fmt.Fprint(bw, "No endpoints found\n")
	}

	fmt.Fprintf(bw, "\nSuspicious Activity Detected (more than %d failed logins):\n", report.Threshold)
	if len(report.SuspiciousAddresses) == 0 {
		fmt.Fprint(bw, "None\n")
	}
	for _, row := range report.SuspiciousAddresses {
		fmt.Fprintf(bw, "%-20s %d\n", row.Address, row.FailedLoginCount)
	}

	fmt.Fprint(bw, "\nRequests by Hour:\n")
	for _, row := range report.RequestsByHour {
		fmt.Fprintf(bw, "%d:00 - %d:00   %d requests\n", row.Hour, row.Hour+1, row.RequestCount)
	}

	if len(report.RequestsByUserAgent) > 0 {
		fmt.Fprint(bw, "\nRequests by User Agent:\n")
		for _, row := range report.RequestsByUserAgent {
			fmt.Fprintf(bw, "%-20s %d\n", row.UserAgent, row.RequestCount)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write console report: %w", err)
	}
	return nil
}
