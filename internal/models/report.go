package models

import "time"

// Report is the presentation view of one analysis: every section already sorted
// the way it is emitted (addresses, endpoints and suspicious addresses by count
// descending, hours ascending).
//
// Example JSON:
//
//	{
//	  "reportId": "01JA2Y0V6S5Q1T8W0C4ZB3KX7M",
//	  "source": "sample.log",
//	  "generatedAt": "2026-10-18T09:12:44Z",
//	  "threshold": 10,
//	  "linesRead": 3,
//	  "mostAccessedEndpoint": {"endpoint": "/index.html", "accessCount": 2},
//	  "requestsByAddress": [
//	    {"address": "192.168.1.1", "requestCount": 2, "city": "Unknown", "country": "Unknown"},
//	    {"address": "10.0.0.5", "requestCount": 1, "city": "Unknown", "country": "Unknown"}
//	  ],
//	  "requestsByEndpoint": [
//	    {"endpoint": "/index.html", "accessCount": 2},
//	    {"endpoint": "/admin", "accessCount": 1}
//	  ],
//	  "suspiciousAddresses": [],
//	  "requestsByHour": [
//	    {"hour": 13, "requestCount": 2},
//	    {"hour": 14, "requestCount": 1}
//	  ],
//	  "requestsByUserAgent": []
//	}
type Report struct {
	ReportID             string          `json:"reportId"`
	Source               string          `json:"source"`
	GeneratedAt          time.Time       `json:"generatedAt"`
	Threshold            int64           `json:"threshold"`
	LinesRead            int64           `json:"linesRead"`
	MostAccessedEndpoint *EndpointRow    `json:"mostAccessedEndpoint"`
	RequestsByAddress    []AddressRow    `json:"requestsByAddress"`
	RequestsByEndpoint   []EndpointRow   `json:"requestsByEndpoint"`
	SuspiciousAddresses  []SuspiciousRow `json:"suspiciousAddresses"`
	RequestsByHour       []HourRow       `json:"requestsByHour"`
	RequestsByUserAgent  []UserAgentRow  `json:"requestsByUserAgent"`
}

type AddressRow struct {
	Address      string `json:"address"`
	RequestCount int64  `json:"requestCount"`
	City         string `json:"city"`
	Country      string `json:"country"`
}

type EndpointRow struct {
	Endpoint    string `json:"endpoint"`
	AccessCount int64  `json:"accessCount"`
}

type SuspiciousRow struct {
	Address          string `json:"address"`
	FailedLoginCount int64  `json:"failedLoginCount"`
}

type HourRow struct {
	Hour         int   `json:"hour"`
	RequestCount int64 `json:"requestCount"`
}

type UserAgentRow struct {
	UserAgent    string `json:"userAgent"`
	RequestCount int64  `json:"requestCount"`
}

// NewReport builds a Report from an aggregation result and the resolved locations.
// Addresses missing from locations are reported as Unknown.
func NewReport(reportID, source string, generatedAt time.Time, threshold int64, result *AggregationResult, locations map[string]Location) *Report {
	report := &Report{
		ReportID:            reportID,
		Source:              source,
		GeneratedAt:         generatedAt.UTC(),
		Threshold:           threshold,
		LinesRead:           result.LinesRead(),
		RequestsByAddress:   make([]AddressRow, 0),
		RequestsByEndpoint:  make([]EndpointRow, 0),
		SuspiciousAddresses: make([]SuspiciousRow, 0),
		RequestsByHour:      make([]HourRow, 0),
		RequestsByUserAgent: make([]UserAgentRow, 0),
	}

	if top, ok := result.MostAccessedEndpoint(); ok {
		report.MostAccessedEndpoint = &EndpointRow{Endpoint: top.Key, AccessCount: top.Count}
	}

	for _, p := range SortByCountDesc(result.RequestsByAddress()) {
		location, ok := locations[p.Key]
		if !ok {
			location = NewUnknownLocation()
		}
		report.RequestsByAddress = append(report.RequestsByAddress, AddressRow{
			Address:      p.Key,
			RequestCount: p.Count,
			City:         location.City,
			Country:      location.Country,
		})
	}
	for _, p := range SortByCountDesc(result.RequestsByEndpoint()) {
		report.RequestsByEndpoint = append(report.RequestsByEndpoint, EndpointRow{Endpoint: p.Key, AccessCount: p.Count})
	}
	for _, p := range SortByCountDesc(result.SuspiciousAddresses(threshold)) {
		report.SuspiciousAddresses = append(report.SuspiciousAddresses, SuspiciousRow{Address: p.Key, FailedLoginCount: p.Count})
	}
	for _, p := range SortByKeyAsc(result.RequestsByHour()) {
		report.RequestsByHour = append(report.RequestsByHour, HourRow{Hour: p.Key, RequestCount: p.Count})
	}
	for _, p := range SortByCountDesc(result.RequestsByUserAgent()) {
		report.RequestsByUserAgent = append(report.RequestsByUserAgent, UserAgentRow{UserAgent: p.Key, RequestCount: p.Count})
	}

	return report
}
