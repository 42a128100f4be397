package reporters

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"log-insights/internal/models"
)

const (
	DefaultChartWidth = 40
	topAddressCount   = 5
	barRune           = "#"
)

type chartWriter struct {
	width int
}

// NewChartWriter returns a writer drawing horizontal bar charts of the top
// addresses and the hourly histogram. The longest bar is width characters.
func NewChartWriter(width int) ReportWriter {
	if width < 1 {
		width = DefaultChartWidth
	}
	return chartWriter{width: width}
}

type bar struct {
	label string
	value int64
}

func (c chartWriter) Write(w io.Writer, report *models.Report) error {
	bw := bufio.NewWriter(w)

	top := report.RequestsByAddress[:min(topAddressCount, len(report.RequestsByAddress))]
	addressBars := make([]bar, 0, len(top))
	for _, row := range top {
		addressBars = append(addressBars, bar{label: row.Address, value: row.RequestCount})
	}
	c.drawChart(bw, "Top 5 IP Addresses by Requests", addressBars)

	bw.WriteString("\n")

	hourBars := make([]bar, 0, len(report.RequestsByHour))
	for _, row := range report.RequestsByHour {
		hourBars = append(hourBars, bar{label: fmt.Sprintf("%02d", row.Hour), value: row.RequestCount})
	}
	c.drawChart(bw, "Requests by Hour", hourBars)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return nil
}

func (c chartWriter) drawChart(w *bufio.Writer, title string, bars []bar) {
	fmt.Fprintln(w, title)
	if len(bars) == 0 {
		fmt.Fprintln(w, "(no data)")
		return
	}

	labelWidth := 0
	var maxValue int64
	for _, b := range bars {
		labelWidth = max(labelWidth, len(b.label))
		maxValue = max(maxValue, b.value)
	}

	for _, b := range bars {
		fmt.Fprintf(w, "%-*s | %s %s\n", labelWidth, b.label, strings.Repeat(barRune, c.barLength(b.value, maxValue)), strconv.FormatInt(b.value, 10))
	}
}

// barLength scales value to the chart width. Non-zero values always get at least one rune.
func (c chartWriter) barLength(value, maxValue int64) int {
	if value <= 0 || maxValue <= 0 {
		return 0
	}
	n := int(value * int64(c.width) / maxValue)
	return max(n, 1)
}
