package parser

import (
	"errors"
	"testing"

	"shapecheck/internal/domain"
)

const sampleStack = `goroutine 7 [running]:
runtime/debug.Stack()
	/usr/local/go/src/runtime/debug/stack.go:26 +0x5e
shapecheck/internal/harness.Invoke.func1()
	/src/shapecheck/internal/harness/t.go:131 +0x8a
panic({0x5b0e40?, 0x6d0a10?})
	/usr/local/go/src/runtime/panic.go:785 +0x132
runtime.panicdivide(...)
	/usr/local/go/src/runtime/panic.go:260 +0x25
shapecheck/internal/suite.functionCases.func3(0xc000124000)
	/src/shapecheck/internal/suite/functions.go:46 +0x1b
shapecheck/internal/harness.Invoke(0xc000124000, 0x5f6a18)
	/src/shapecheck/internal/harness/t.go:137 +0x6c
`

func TestFailureParser_ParseFailure(t *testing.T) {
	p := NewFailureParser()
	test := domain.Test{ID: "test_functions::test_x", Module: "test_functions", Name: "test_x"}

	t.Run("passing outcomes produce nothing", func(t *testing.T) {
		for _, o := range []domain.Outcome{domain.OutcomePassed, domain.OutcomeSkipped, domain.OutcomeXFailed, domain.OutcomeXPassed} {
			if failures := p.ParseFailure(domain.TestResult{Test: test, Outcome: o}); len(failures) != 0 {
				t.Errorf("%s: expected no failures, got %d", o, len(failures))
			}
		}
	})

	t.Run("assertion failure", func(t *testing.T) {
		failures := p.ParseFailure(domain.TestResult{
			Test:     test,
			Outcome:  domain.OutcomeFailed,
			Messages: []string{"assert 15 == 16"},
			Logs:     []string{"side=4"},
		})
		if len(failures) != 1 {
			t.Fatalf("expected 1 failure, got %d", len(failures))
		}
		f := failures[0]
		if f.TestID != test.ID || f.Module != "test_functions" || f.TestName != "test_x" {
			t.Errorf("unexpected identity: %+v", f)
		}
		expected := "assert 15 == 16\n\nCaptured log:\nside=4"
		if f.Message != expected {
			t.Errorf("expected message %q, got %q", expected, f.Message)
		}
		if f.File != "" || f.Line != 0 || len(f.StackTrace) != 0 {
			t.Errorf("expected no location without a panic, got %s:%d", f.File, f.Line)
		}
	})

	t.Run("panic with stack", func(t *testing.T) {
		failures := p.ParseFailure(domain.TestResult{
			Test:     test,
			Outcome:  domain.OutcomeFailed,
			Messages: []string{"panic: runtime error: integer divide by zero"},
			Panic:    "runtime error: integer divide by zero",
			Stack:    sampleStack,
		})
		f := failures[0]
		if f.File != "/src/shapecheck/internal/suite/functions.go" || f.Line != 46 {
			t.Errorf("expected functions.go:46, got %s:%d", f.File, f.Line)
		}
		if len(f.StackTrace) != 6 {
			t.Fatalf("expected 6 frames, got %d: %v", len(f.StackTrace), f.StackTrace)
		}
		if f.StackTrace[4] != "/src/shapecheck/internal/suite/functions.go:46 shapecheck/internal/suite.functionCases.func3" {
			t.Errorf("unexpected frame: %s", f.StackTrace[4])
		}
	})

	t.Run("error outcome keeps reason", func(t *testing.T) {
		failures := p.ParseFailure(domain.TestResult{
			Test:     test,
			Outcome:  domain.OutcomeError,
			Reason:   "[XPASS(strict)] flaky",
			Error:    errors.New("x"),
			Messages: nil,
		})
		if failures[0].Message != "[XPASS(strict)] flaky" || failures[0].Outcome != domain.OutcomeError {
			t.Errorf("unexpected failure: %+v", failures[0])
		}
	})
}
