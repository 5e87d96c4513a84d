package tester

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/capripot/rswag/internal/examples"
	"github.com/capripot/rswag/internal/models"
	"github.com/capripot/rswag/internal/parser"
	"github.com/capripot/rswag/internal/request"
)

// EventType represents the type of test event
type EventType int

const (
	// EventStarting indicates a test is about to start
	EventStarting EventType = iota
	// EventCompleted indicates a test has completed
	EventCompleted
)

// TestEvent represents an event during test execution
type TestEvent struct {
	Type   EventType
	Case   Case
	Result *models.TestResult // nil for Starting events
	Index  int                // current test index (0-based)
	Total  int                // total number of tests
}

// OnTestEvent is a callback function for test events
type OnTestEvent func(event TestEvent)

// Tester builds suite cases into requests and checks the status each one returns
type Tester struct {
	parser  *parser.Parser
	builder *request.Builder
	client  *http.Client
}

// NewTester creates a new tester instance with configurable timeout
func NewTester(p *parser.Parser, timeout time.Duration, opts ...request.Option) *Tester {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Tester{
		parser:  p,
		builder: request.NewBuilder(p.Document(), opts...),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// TestCase runs a single case. shared holds suite-level values the case's own
// values override.
func (t *Tester) TestCase(ctx context.Context, c Case, serverURL string, shared examples.Values) models.TestResult {
	result := models.TestResult{
		Name:           c.Title(),
		Path:           c.Path,
		Method:         c.Method,
		ExpectedStatus: c.Status,
	}

	meta, err := t.parser.GetOperationMetadata(c.Path, c.Method)
	if err != nil {
		result.Error = fmt.Sprintf("failed to get operation metadata: %v", err)
		return result
	}
	result.Method = meta.Verb

	built, err := t.builder.Build(meta, shared.With(c.Values))
	if err != nil {
		result.Error = fmt.Sprintf("failed to build request: %v", err)
		return result
	}

	req, err := NewHTTPRequest(ctx, built, serverURL)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.URL = req.URL.String()

	// Execute request
	startTime := time.Now()
	resp, err := t.client.Do(req)
	result.ResponseTime = time.Since(startTime)
	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		return result
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	result.StatusCode = resp.StatusCode
	switch {
	case c.Status == 0 && resp.StatusCode < 400:
		result.Passed = true
	case c.Status == resp.StatusCode:
		result.Passed = true
	case c.Status == 0:
		result.Error = fmt.Sprintf("unexpected status code %d", resp.StatusCode)
	default:
		result.Error = fmt.Sprintf("expected status code %d, got %d", c.Status, resp.StatusCode)
	}

	return result
}

// RunSuite runs every case of suite in order with optional live event reporting
func (t *Tester) RunSuite(ctx context.Context, suite *Suite, serverURL string, onEvent OnTestEvent) models.TestSummary {
	summary := models.TestSummary{
		RunID:   uuid.NewString(),
		Results: make([]models.TestResult, 0, len(suite.Cases)),
	}
	total := len(suite.Cases)

	for i, c := range suite.Cases {
		if ctx.Err() != nil {
			break
		}

		// Report: test is starting
		if onEvent != nil {
			onEvent(TestEvent{Type: EventStarting, Case: c, Index: i, Total: total})
		}

		result := t.TestCase(ctx, c, serverURL, suite.Values)
		summary.AddResult(result)

		// Report: test completed
		if onEvent != nil {
			onEvent(TestEvent{Type: EventCompleted, Case: c, Result: &result, Index: i, Total: total})
		}
	}

	return summary
}
