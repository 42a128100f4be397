package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ### Start - fixed configs (no change)
// These values define deterministic test data generation and must match expected results.
// DO NOT MODIFY: Changing these will break the test's deterministic behavior.
var (
	hours     = []int{9, 13, 14, 23}
	endpoints = []string{"/index.html", "/login", "/about", "/contact"}
	// failed login attempts per attacker address; threshold is 10 so only the 11 and 25 are suspicious
	attackers = map[string]int{
		"203.0.113.7":  9,
		"203.0.113.8":  10,
		"203.0.113.9":  11,
		"198.51.100.4": 25,
	}
	visitors   = []string{"192.168.1.1", "192.168.1.2", "10.0.0.5", "10.0.0.6"}
	userAgents = []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
		"curl/7.88.1",
	}
	visitsPerVisitor = 40
)

// ### End - fixed configs

type report struct {
	ReportID             string `json:"reportId"`
	LinesRead            int64  `json:"linesRead"`
	MostAccessedEndpoint *struct {
		Endpoint    string `json:"endpoint"`
		AccessCount int64  `json:"accessCount"`
	} `json:"mostAccessedEndpoint"`
	RequestsByAddress []struct {
		Address      string `json:"address"`
		RequestCount int64  `json:"requestCount"`
	} `json:"requestsByAddress"`
	SuspiciousAddresses []struct {
		Address          string `json:"address"`
		FailedLoginCount int64  `json:"failedLoginCount"`
	} `json:"suspiciousAddresses"`
	RequestsByHour []struct {
		Hour         int   `json:"hour"`
		RequestCount int64 `json:"requestCount"`
	} `json:"requestsByHour"`
}

// main runs the e2e scenario: 001_failed_login_detection
//
// It generates a combined-format access log with ordinary visitors and a few
// addresses hammering /login with bad credentials, then submits the same log
// several times in parallel to a running analyzer started with --serve and
// --geolocation=none.
//
// Expected results:
//   - Every submission returns 201 with a distinct report id
//   - Suspicious addresses are exactly 198.51.100.4 (25) and 203.0.113.9 (11);
//     203.0.113.8 sits on the threshold and is not flagged
//   - /index.html is the most accessed endpoint
//   - Every report can be fetched back through GET /analyses/{reportId}
func main() {
	baseURL := "http://localhost:8080" // Base URL of the analyzer API
	submissions := 4                   // Number of times the same log is submitted
	parallel := 2                      // Number of concurrent submissions

	logBody := generateLog()
	fmt.Println("Starting e2e scenario: 001_failed_login_detection")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("LOG_LINES: %d\n", strings.Count(logBody, "\n"))
	fmt.Printf("SUBMISSIONS: %d\n", submissions)
	fmt.Println()

	workerChan := make(chan struct{}, parallel)
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		reportIDs = make(map[string]bool)
		errs      []error
	)

	for i := 1; i <= submissions; i++ {
		wg.Add(1)
		workerChan <- struct{}{}

		go func(submission int) {
			defer wg.Done()
			defer func() { <-workerChan }()

			r, err := submit(baseURL, logBody)
			if err == nil {
				err = verify(r)
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("submission %d: %w", submission, err))
				return
			}
			reportIDs[r.ReportID] = true
			fmt.Printf("Submission %d completed (report %s)\n", submission, r.ReportID)
		}(i)
	}
	wg.Wait()

	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		}
		os.Exit(1)
	}
	if len(reportIDs) != submissions {
		fmt.Fprintf(os.Stderr, "ERROR: expected %d distinct reports, got %d\n", submissions, len(reportIDs))
		os.Exit(1)
	}

	for reportID := range reportIDs {
		if err := fetch(baseURL, reportID); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println()
	fmt.Println("Scenario completed successfully")
}

func generateLog() string {
	var b strings.Builder
	line := 0
	write := func(address, method, endpoint string, status int, extra string) {
		hour := hours[line%len(hours)]
		ua := userAgents[line%len(userAgents)]
		fmt.Fprintf(&b, "%s - - [10/Oct/2023:%02d:%02d:%02d +0000] \"%s %s HTTP/1.1\" %d %d \"-\" \"%s\"%s\n",
			address, hour, line%60, (line*7)%60, method, endpoint, status, 100+line%900, ua, extra)
		line++
	}

	for _, visitor := range visitors {
		for i := 0; i < visitsPerVisitor; i++ {
			endpoint := endpoints[0]
			if i%3 == 1 {
				endpoint = endpoints[2+i%2]
			}
			write(visitor, "GET", endpoint, 200, "")
		}
	}
	for _, attacker := range []string{"203.0.113.7", "203.0.113.8", "203.0.113.9", "198.51.100.4"} {
		for i := 0; i < attackers[attacker]; i++ {
			write(attacker, "POST", "/login", 401, " \"Invalid credentials\"")
		}
	}
	return b.String()
}

func submit(baseURL, body string) (*report, error) {
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Post(baseURL+"/analyses?threshold=10&source=e2e", "text/plain", bytes.NewReader([]byte(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(data))
	}

	var r report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &r, nil
}

func verify(r *report) error {
	suspicious := make([]string, 0, len(r.SuspiciousAddresses))
	for _, s := range r.SuspiciousAddresses {
		suspicious = append(suspicious, s.Address+"="+strconv.FormatInt(s.FailedLoginCount, 10))
	}
	if got, want := strings.Join(suspicious, ","), "198.51.100.4=25,203.0.113.9=11"; got != want {
		return fmt.Errorf("suspicious addresses: got %s, want %s", got, want)
	}

	if r.MostAccessedEndpoint == nil || r.MostAccessedEndpoint.Endpoint != "/index.html" {
		return fmt.Errorf("most accessed endpoint: got %+v, want /index.html", r.MostAccessedEndpoint)
	}

	var total int64
	for _, a := range r.RequestsByAddress {
		total += a.RequestCount
	}
	if total != r.LinesRead {
		return fmt.Errorf("address counts sum to %d, want %d lines", total, r.LinesRead)
	}
	return nil
}

func fetch(baseURL, reportID string) error {
	resp, err := http.Get(baseURL + "/analyses/" + reportID)
	if err != nil {
		return fmt.Errorf("failed to fetch report %s: %w", reportID, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch report %s: unexpected status %d", reportID, resp.StatusCode)
	}
	fmt.Printf("Report %s fetched\n", reportID)
	return nil
}
