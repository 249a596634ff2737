package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		outcome Outcome
		label   string
		failure bool
	}{
		{OutcomePassed, "PASSED", false},
		{OutcomeFailed, "FAILED", true},
		{OutcomeSkipped, "SKIPPED", false},
		{OutcomeXFailed, "XFAIL", false},
		{OutcomeXPassed, "XPASS", false},
		{OutcomeError, "ERROR", true},
		{Outcome("weird"), "weird", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.outcome), func(t *testing.T) {
			assert.Equal(t, tt.label, tt.outcome.Label())
			assert.Equal(t, tt.failure, tt.outcome.IsFailure())
		})
	}
}

func TestRun_ExitCode(t *testing.T) {
	withOutcomes := func(outcomes ...Outcome) *Run {
		run := &Run{}
		for _, o := range outcomes {
			run.Results = append(run.Results, TestResult{Outcome: o})
		}
		return run
	}

	assert.Equal(t, 0, withOutcomes().ExitCode(), "nothing ran")
	assert.Equal(t, 0, withOutcomes(OutcomePassed, OutcomeSkipped, OutcomeXFailed, OutcomeXPassed).ExitCode())
	assert.Equal(t, 1, withOutcomes(OutcomePassed, OutcomeFailed).ExitCode())
	assert.Equal(t, 1, withOutcomes(OutcomeSkipped, OutcomeError).ExitCode())
}

func TestTestResultsMeta_Count(t *testing.T) {
	meta := TestResultsMeta{PassedTests: 8, SkippedTests: 1, XFailedTests: 1}

	assert.Equal(t, 8, meta.Count(OutcomePassed))
	assert.Equal(t, 1, meta.Count(OutcomeSkipped))
	assert.Equal(t, 1, meta.Count(OutcomeXFailed))
	assert.Equal(t, 0, meta.Count(OutcomeFailed))
	assert.Equal(t, 0, meta.Count(Outcome("weird")))
}

func TestTest_HasMarker(t *testing.T) {
	test := Test{Markers: []string{"slow", "parametrize"}}

	assert.True(t, test.HasMarker("slow"))
	assert.True(t, test.HasMarker("parametrize"))
	assert.False(t, test.HasMarker("skip"))
	assert.False(t, Test{}.HasMarker("slow"))
}
