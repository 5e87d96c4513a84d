package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/capripot/rswag/internal/models"
	"github.com/capripot/rswag/internal/request"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Format represents the output format type
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ExportTestSummary exports test results to the specified format
func ExportTestSummary(summary models.TestSummary, format Format, filePath string) error {
	w, closer, err := getWriter(filePath)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	switch format {
	case FormatJSON:
		return writeJSON(w, summary)
	case FormatCSV:
		return exportTestCSV(w, summary)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteRequest renders a built request as indented JSON
func WriteRequest(w io.Writer, req *request.Request) error {
	return writeJSON(w, req)
}

// getWriter returns an io.Writer for output (stdout or file)
func getWriter(filePath string) (io.Writer, io.Closer, error) {
	if filePath == "" {
		return os.Stdout, nil, nil
	}

	f, err := os.Create(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f, nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// exportTestCSV exports test results as CSV
func exportTestCSV(w io.Writer, summary models.TestSummary) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	// Write header
	header := []string{
		"run_id", "name", "method", "path", "url", "passed",
		"expected_status", "status_code", "response_time_ms", "error",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	// Write rows
	for _, r := range summary.Results {
		row := []string{
			summary.RunID,
			r.Name,
			r.Method,
			r.Path,
			r.URL,
			strconv.FormatBool(r.Passed),
			strconv.Itoa(r.ExpectedStatus),
			strconv.Itoa(r.StatusCode),
			fmt.Sprintf("%.2f", float64(r.ResponseTime.Microseconds())/1000),
			r.Error,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ParseFormat parses a string into a Format, returning error if invalid
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("invalid format '%s': must be 'json' or 'csv'", s)
	}
}
