package models

import "time"

// TestResult represents the result of running a single suite case
type TestResult struct {
	// Case details
	Name   string `json:"name"`
	Path   string `json:"path"`
	Method string `json:"method"`
	URL    string `json:"url,omitempty"` // built request URL, empty when the build failed

	// Test status
	Passed bool   `json:"passed"`
	Error  string `json:"error,omitempty"`

	// Response details
	ExpectedStatus int           `json:"expected_status"`
	StatusCode     int           `json:"status_code"`
	ResponseTime   time.Duration `json:"response_time_ns"`
}

// TestSummary represents the overall results of a suite run
type TestSummary struct {
	RunID      string       `json:"run_id"`
	TotalTests int          `json:"total_tests"`
	Passed     int          `json:"passed"`
	Failed     int          `json:"failed"`
	Results    []TestResult `json:"results"`
}

// AddResult adds a test result to the summary
func (s *TestSummary) AddResult(result TestResult) {
	s.TotalTests++
	s.Results = append(s.Results, result)
	if result.Passed {
		s.Passed++
	} else {
		s.Failed++
	}
}
