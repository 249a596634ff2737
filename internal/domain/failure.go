package domain

// TestFailure represents a failed test case
type TestFailure struct {
	TestID     string   `json:"test_id"`
	TestName   string   `json:"test_name"`
	Module     string   `json:"module"`
	Outcome    Outcome  `json:"outcome"`
	Message    string   `json:"message"`
	StackTrace []string `json:"stack_trace"`
	File       string   `json:"file"`
	Line       int      `json:"line"`
	Resolved   bool     `json:"resolved,omitempty"` // Track if test case is marked as resolved
}
