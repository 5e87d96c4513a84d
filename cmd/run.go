package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/capripot/rswag/internal/models"
	"github.com/capripot/rswag/internal/output"
	"github.com/capripot/rswag/internal/parser"
	"github.com/capripot/rswag/internal/request"
	"github.com/capripot/rswag/internal/tester"
)

var (
	runSpec         string
	runOutputFormat string
	runOutputFile   string
	verbose         bool

	isTTY = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	// Color helpers
	green = color.New(color.FgGreen, color.Bold).SprintFunc()
	red   = color.New(color.FgRed, color.Bold).SprintFunc()
	white = color.New(color.FgWhite, color.Bold).SprintFunc()
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [suite-file]",
	Short: "Run a suite of requests against a server",
	Long: `Run every case of a suite file: build its request from the document and the
example values, send it, and compare the response status with the expected one.

Examples:
  rswag run suite.yaml
  rswag run suite.yaml --spec petstore.yaml --server http://localhost:8080
  rswag run suite.yaml -o json --output-file results.json`,
	Args: cobra.ExactArgs(1),
	RunE: runSuite,
}

func runSuite(cmd *cobra.Command, args []string) error {
	suitePath := args[0]
	suite, err := tester.LoadSuite(suitePath)
	if err != nil {
		return err
	}

	specFile := runSpec
	if specFile == "" {
		if suite.Spec == "" {
			return fmt.Errorf("no document given: set spec in %s or pass --spec", suitePath)
		}
		specFile = suite.Spec
		if !filepath.IsAbs(specFile) {
			specFile = filepath.Join(filepath.Dir(suitePath), specFile)
		}
	}

	p, err := parser.ParseFile(specFile)
	if err != nil {
		return err
	}

	// Flag or config first, then the suite, then the document
	baseURL := viper.GetString("server")
	if baseURL == "" {
		baseURL = suite.Server
	}
	if baseURL == "" {
		serverURLs, err := p.GetServerURLs()
		if err != nil {
			return err
		}
		if len(serverURLs) > 0 {
			baseURL = serverURLs[0]
		}
	}
	if baseURL == "" {
		baseURL = "http://localhost"
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := newLogger(os.Stderr, viper.GetString("log.level"))
	runner := tester.NewTester(p, time.Duration(viper.GetInt("timeout"))*time.Second,
		request.WithLogger(logger),
		request.WithServer(viper.GetString("server_key")),
	)

	out := cmd.OutOrStdout()
	var s *spinner.Spinner
	onEvent := func(event tester.TestEvent) {
		switch event.Type {
		case tester.EventStarting:
			if isTTY {
				s = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
				s.Suffix = fmt.Sprintf(" [%d/%d] %s", event.Index+1, event.Total, event.Case.Title())
				s.Start()
			}
		case tester.EventCompleted:
			if s != nil {
				s.Stop()
				s = nil
			}
			printResult(out, *event.Result, event.Index, event.Total)
		}
	}

	summary := runner.RunSuite(ctx, suite, baseURL, onEvent)
	displaySummary(out, summary, verbose)

	if runOutputFormat != "" {
		format, err := output.ParseFormat(runOutputFormat)
		if err != nil {
			return err
		}
		if err := output.ExportTestSummary(summary, format, runOutputFile); err != nil {
			return err
		}
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d cases failed", summary.Failed, summary.TotalTests)
	}
	return nil
}

func printResult(w io.Writer, result models.TestResult, index, total int) {
	status := green("PASS")
	if !result.Passed {
		status = red("FAIL")
	}
	fmt.Fprintf(w, "[%d/%d] %s %s %s", index+1, total, status, result.Method, result.Path)
	if !result.Passed && result.Error != "" {
		fmt.Fprintf(w, " - %s", result.Error)
	}
	fmt.Fprintln(w)
}

func displaySummary(w io.Writer, summary models.TestSummary, verbose bool) {
	fmt.Fprintf(w, "\n%s\n", white("=== Test Results ==="))
	fmt.Fprintf(w, "Run ID: %s\n", summary.RunID)
	fmt.Fprintf(w, "Total Tests: %d\n", summary.TotalTests)
	fmt.Fprintf(w, "Passed: %d\n", summary.Passed)
	fmt.Fprintf(w, "Failed: %d\n", summary.Failed)

	if !verbose {
		return
	}
	fmt.Fprintln(w)
	for _, result := range summary.Results {
		fmt.Fprintf(w, "%s\n", result.Name)
		if result.URL != "" {
			fmt.Fprintf(w, "  URL: %s %s\n", result.Method, result.URL)
		}
		fmt.Fprintf(w, "  Status Code: %d (expected %d)\n", result.StatusCode, result.ExpectedStatus)
		fmt.Fprintf(w, "  Response Time: %v\n", result.ResponseTime)
		if result.Error != "" {
			fmt.Fprintf(w, "  Error: %s\n", result.Error)
		}
	}
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runSpec, "spec", "", "OpenAPI document, overriding the suite's spec entry")
	runCmd.Flags().String("server", "", "Override server URL from the suite and the document")
	runCmd.Flags().Int("timeout", 30, "Request timeout in seconds")
	runCmd.Flags().StringVarP(&runOutputFormat, "output", "o", "", "Export results as json or csv")
	runCmd.Flags().StringVar(&runOutputFile, "output-file", "", "Write exported results to a file instead of stdout")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed output")
	_ = viper.BindPFlag("server", runCmd.Flags().Lookup("server"))
	_ = viper.BindPFlag("timeout", runCmd.Flags().Lookup("timeout"))
}
