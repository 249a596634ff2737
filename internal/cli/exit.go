package cli

import "fmt"

// Process exit codes
const (
	ExitOK          = 0
	ExitTestsFailed = 1
	ExitInterrupted = 2
	ExitInternal    = 3
	ExitUsage       = 4
)

// ExitError asks main to exit with Code. Err is printed when set.
type ExitError struct {
	Code int
	Err  error
}

// NewExitError creates an ExitError wrapping err
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}
