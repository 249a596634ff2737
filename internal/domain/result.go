package domain

import "time"

// Outcome is the reported result of one test
type Outcome string

const (
	OutcomePassed  Outcome = "passed"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
	OutcomeXFailed Outcome = "xfailed"
	OutcomeXPassed Outcome = "xpassed"
	OutcomeError   Outcome = "error"
)

// IsFailure reports whether the outcome makes the run fail
func (o Outcome) IsFailure() bool {
	return o == OutcomeFailed || o == OutcomeError
}

// Label returns the upper case label used in reports
func (o Outcome) Label() string {
	switch o {
	case OutcomePassed:
		return "PASSED"
	case OutcomeFailed:
		return "FAILED"
	case OutcomeSkipped:
		return "SKIPPED"
	case OutcomeXFailed:
		return "XFAIL"
	case OutcomeXPassed:
		return "XPASS"
	case OutcomeError:
		return "ERROR"
	}
	return string(o)
}

// TestResult represents the result of executing a single test
type TestResult struct {
	Test     Test
	Outcome  Outcome
	Reason   string        // Skip or xfail reason
	Messages []string      // Failure messages recorded by the case
	Logs     []string      // Log lines recorded by the case
	Panic    string        // Recovered panic value, if any
	Stack    string        // Stack of the recovered panic
	Error    error         // Fixture or harness error
	Duration time.Duration // Time taken to execute
	WorkerID int
}

// TestResultsMeta contains metadata about a test run
type TestResultsMeta struct {
	RunID           string  `json:"run_id"`
	TotalTests      int     `json:"total_tests"`
	PassedTests     int     `json:"passed_tests"`
	FailedTests     int     `json:"failed_tests"`
	SkippedTests    int     `json:"skipped_tests"`
	XFailedTests    int     `json:"xfailed_tests"`
	XPassedTests    int     `json:"xpassed_tests"`
	ErrorTests      int     `json:"error_tests"`
	DeselectedTests int     `json:"deselected_tests"`
	MarkExpr        string  `json:"mark_expr,omitempty"`
	Keyword         string  `json:"keyword,omitempty"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
	Timestamp       string  `json:"timestamp"`
}

// Count returns the meta counter for an outcome
func (m TestResultsMeta) Count(o Outcome) int {
	switch o {
	case OutcomePassed:
		return m.PassedTests
	case OutcomeFailed:
		return m.FailedTests
	case OutcomeSkipped:
		return m.SkippedTests
	case OutcomeXFailed:
		return m.XFailedTests
	case OutcomeXPassed:
		return m.XPassedTests
	case OutcomeError:
		return m.ErrorTests
	}
	return 0
}

// CaseRecord is the stored summary of one executed test
type CaseRecord struct {
	ID         string   `json:"id"`
	Outcome    Outcome  `json:"outcome"`
	Reason     string   `json:"reason,omitempty"`
	Markers    []string `json:"markers,omitempty"`
	DurationMS float64  `json:"duration_ms"`
}

// TestResultsOutput is the complete output structure for test results
type TestResultsOutput struct {
	Meta     TestResultsMeta `json:"meta"`
	Details  []TestFailure   `json:"details"`
	Cases    []CaseRecord    `json:"cases"`
	Warnings []string        `json:"warnings,omitempty"`
}

// Run is everything produced by one invocation of the runner
type Run struct {
	ID         string
	Results    []TestResult
	Failures   []TestFailure
	Deselected int
	Warnings   []string
	MarkExpr   string
	Keyword    string
	Duration   time.Duration
	Workers    int
	StartedAt  time.Time
}

// ExitCode returns 1 if any selected test failed or errored, 0 otherwise
func (r *Run) ExitCode() int {
	for _, res := range r.Results {
		if res.Outcome.IsFailure() {
			return 1
		}
	}
	return 0
}
