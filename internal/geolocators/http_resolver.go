package geolocators

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"log-insights/internal/models"
	"log-insights/internal/shared/loggers"
)

const (
	ipInfoBaseURL = "https://ipinfo.io"
	ipAPIBaseURL  = "https://ipapi.co"

	maxResponseBytes = 64 * 1024
)

const (
	outcomeResolved      = "resolved"
	outcomeMissingFields = "missing_fields"
	outcomeRequestFailed = "request_failed"
	outcomeBadStatus     = "bad_status"
	outcomeDecodeFailed  = "decode_failed"
	outcomePanic         = "panic"
)

// Option configures an HTTP resolver.
type Option func(*httpResolver)

// WithBaseURL points the resolver at another host, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(r *httpResolver) {
		r.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the default HTTP client. The per-lookup timeout still applies.
func WithHTTPClient(client *http.Client) Option {
	return func(r *httpResolver) {
		r.httpClient = client
	}
}

// httpResolver queries a JSON geolocation API, one GET per address.
type httpResolver struct {
	provider   string
	baseURL    string
	pathFormat string
	decode     func(body []byte) (city, country string, err error)
	timeout    time.Duration
	httpClient *http.Client
}

// NewIPInfoResolver resolves through https://ipinfo.io/{ip}/json.
func NewIPInfoResolver(timeout time.Duration, opts ...Option) LocationResolver {
	return newHTTPResolver(ProviderIPInfo, ipInfoBaseURL, "/%s/json", decodeIPInfo, timeout, opts)
}

// NewIPAPIResolver resolves through https://ipapi.co/{ip}/json/.
func NewIPAPIResolver(timeout time.Duration, opts ...Option) LocationResolver {
	return newHTTPResolver(ProviderIPAPI, ipAPIBaseURL, "/%s/json/", decodeIPAPI, timeout, opts)
}

func newHTTPResolver(provider, baseURL, pathFormat string, decode func([]byte) (string, string, error), timeout time.Duration, opts []Option) *httpResolver {
	r := &httpResolver{
		provider:   provider,
		baseURL:    baseURL,
		pathFormat: pathFormat,
		decode:     decode,
		timeout:    timeout,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *httpResolver) Provider() string {
	return r.provider
}

func (r *httpResolver) ResolveLocation(ctx context.Context, address string) models.Location {
	start := time.Now()
	location, outcome, err := r.lookup(ctx, address)
	metricLookupDuration.WithLabelValues(r.provider).Observe(time.Since(start).Seconds())
	metricLookupsTotal.WithLabelValues(r.provider, outcome).Inc()

	if err != nil {
		loggers.Ctx(ctx).Debug().
			Err(err).
			Str(loggers.FieldProvider, r.provider).
			Str(loggers.FieldAddress, address).
			Msg("geolocation lookup failed, using unknown location")
	}
	return location
}

func (r *httpResolver) lookup(ctx context.Context, address string) (models.Location, string, error) {
	unknown := models.NewUnknownLocation()

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	fullURL := r.baseURL + fmt.Sprintf(r.pathFormat, url.PathEscape(address))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return unknown, outcomeRequestFailed, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return unknown, outcomeRequestFailed, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return unknown, outcomeBadStatus, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return unknown, outcomeRequestFailed, err
	}

	city, country, err := r.decode(body)
	if err != nil {
		return unknown, outcomeDecodeFailed, err
	}

	location := models.Location{City: orUnknown(city), Country: orUnknown(country)}
	if city == "" || country == "" {
		return location, outcomeMissingFields, nil
	}
	return location, outcomeResolved, nil
}

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return models.UnknownLocation
	}
	return s
}

// ipInfoResponse is the subset of https://ipinfo.io/{ip}/json we read.
type ipInfoResponse struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

func decodeIPInfo(body []byte) (string, string, error) {
	var resp ipInfoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", "", err
	}
	return resp.City, resp.Country, nil
}

// ipAPIResponse is the subset of https://ipapi.co/{ip}/json/ we read.
type ipAPIResponse struct {
	City        string `json:"city"`
	CountryName string `json:"country_name"`
}

func decodeIPAPI(body []byte) (string, string, error) {
	var resp ipAPIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", "", err
	}
	return resp.City, resp.CountryName, nil
}
