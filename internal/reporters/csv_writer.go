package reporters

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"log-insights/internal/models"
)

var (
	csvAddressHeader    = []string{"IP Address", "Request Count", "City", "Country"}
	csvEndpointHeader   = []string{"Endpoint", "Access Count"}
	csvSuspiciousHeader = []string{"IP Address", "Failed Login Count"}
	csvHourHeader       = []string{"Hour", "Request Count"}
)

type csvWriter struct{}

// NewCSVWriter returns a writer emitting the four report sections (addresses,
// endpoints, suspicious addresses, hours) separated by blank rows, CRLF terminated.
func NewCSVWriter() ReportWriter {
	return csvWriter{}
}

func (csvWriter) Write(w io.Writer, report *models.Report) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	records := make([][]string, 0, len(report.RequestsByAddress)+len(report.RequestsByEndpoint)+len(report.SuspiciousAddresses)+len(report.RequestsByHour)+7)

	records = append(records, csvAddressHeader)
	for _, row := range report.RequestsByAddress {
		records = append(records, []string{row.Address, formatCount(row.RequestCount), row.City, row.Country})
	}

	records = append(records, []string{}, csvEndpointHeader)
	for _, row := range report.RequestsByEndpoint {
		records = append(records, []string{row.Endpoint, formatCount(row.AccessCount)})
	}

	records = append(records, []string{}, csvSuspiciousHeader)
	for _, row := range report.SuspiciousAddresses {
		records = append(records, []string{row.Address, formatCount(row.FailedLoginCount)})
	}

	records = append(records, []string{}, csvHourHeader)
	for _, row := range report.RequestsByHour {
		records = append(records, []string{strconv.Itoa(row.Hour), formatCount(row.RequestCount)})
	}

	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv report: %w", err)
	}
	return nil
}

func formatCount(n int64) string {
	return strconv.FormatInt(n, 10)
}
