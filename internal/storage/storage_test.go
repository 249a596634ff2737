package storage

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shapecheck/internal/config"
	"shapecheck/internal/domain"
)

func sampleRun() *domain.Run {
	result := func(id string, o domain.Outcome, reason string) domain.TestResult {
		return domain.TestResult{
			Test:     domain.Test{ID: id, Markers: []string{"m"}},
			Outcome:  o,
			Reason:   reason,
			Duration: 1500 * time.Microsecond,
		}
	}
	return &domain.Run{
		ID: "6f1f5a52-8a5e-4a8e-9a43-4f3f0d3c1b11",
		Results: []domain.TestResult{
			result("a::pass", domain.OutcomePassed, ""),
			result("a::fail", domain.OutcomeFailed, ""),
			result("a::skip", domain.OutcomeSkipped, "broken"),
			result("a::xfail", domain.OutcomeXFailed, "div"),
			result("a::xpass", domain.OutcomeXPassed, "flaky"),
			result("a::error", domain.OutcomeError, ""),
		},
		Failures:   []domain.TestFailure{{TestID: "a::fail", Message: "assert 15 == 16"}},
		Deselected: 2,
		Warnings:   []string{"a::typo: unknown marker"},
		MarkExpr:   "not slow",
		Duration:   2 * time.Second,
		Workers:    1,
		StartedAt:  time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC),
	}
}

func TestBuildOutput(t *testing.T) {
	output := BuildOutput(sampleRun())
	meta := output.Meta

	assert.Equal(t, 6, meta.TotalTests)
	for _, o := range []domain.Outcome{domain.OutcomePassed, domain.OutcomeFailed, domain.OutcomeSkipped, domain.OutcomeXFailed, domain.OutcomeXPassed, domain.OutcomeError} {
		assert.Equal(t, 1, meta.Count(o), string(o))
	}
	assert.Equal(t, 2, meta.DeselectedTests)
	assert.Equal(t, "not slow", meta.MarkExpr)
	assert.Equal(t, 2.0, meta.DurationSeconds)
	assert.Equal(t, "2026-10-16T12:00:00Z", meta.Timestamp)
	assert.Len(t, output.Cases, 6)
	assert.Equal(t, 1.5, output.Cases[0].DurationMS)
	assert.Equal(t, "broken", output.Cases[2].Reason)
	assert.Len(t, output.Details, 1)

	empty := BuildOutput(&domain.Run{})
	assert.NotNil(t, empty.Details, "details serialize as an empty list")
}

func TestFailedIDs(t *testing.T) {
	ids := FailedIDs(BuildOutput(sampleRun()))
	assert.Equal(t, map[string]struct{}{"a::fail": {}, "a::error": {}}, ids)
}

func TestJSONStorage_SaveLoad(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	s := NewJSONStorage(cfg)

	_, err := s.Load()
	assert.Error(t, err, "nothing stored yet")

	require.NoError(t, s.Save(sampleRun()))
	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "6f1f5a52-8a5e-4a8e-9a43-4f3f0d3c1b11", loaded.Meta.RunID)
	assert.Equal(t, 1, loaded.Meta.FailedTests)
	require.Len(t, loaded.Details, 1)
	assert.Equal(t, "assert 15 == 16", loaded.Details[0].Message)

	loaded.Details[0].Resolved = true
	require.NoError(t, s.SaveOutput(loaded))
	again, err := s.Load()
	require.NoError(t, err)
	assert.True(t, again.Details[0].Resolved)
}

type fakeStorage struct {
	saved  int
	err    error
	output *domain.TestResultsOutput
}

func (f *fakeStorage) Save(*domain.Run) error { f.saved++; return f.err }
func (f *fakeStorage) Load() (*domain.TestResultsOutput, error) {
	return f.output, f.err
}
func (f *fakeStorage) SaveOutput(*domain.TestResultsOutput) error { f.saved++; return f.err }

func TestMultiStorage(t *testing.T) {
	primary := &fakeStorage{output: &domain.TestResultsOutput{Meta: domain.TestResultsMeta{RunID: "primary"}}}
	broken := &fakeStorage{err: errors.New("mysql down")}
	m := NewMultiStorage(primary, broken)

	err := m.Save(sampleRun())
	assert.ErrorContains(t, err, "mysql down")
	assert.Equal(t, 1, primary.saved, "primary still saved")
	assert.Equal(t, 1, broken.saved)

	out, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, "primary", out.Meta.RunID)

	assert.Error(t, m.SaveOutput(out))
	assert.Equal(t, 2, primary.saved)
}

func TestSchema(t *testing.T) {
	schema := Schema()
	require.Len(t, schema, 2)
	assert.True(t, strings.Contains(schema[0], RunsTable))
	assert.True(t, strings.Contains(schema[1], CasesTable))
	for _, stmt := range schema {
		assert.True(t, strings.HasPrefix(stmt, "CREATE TABLE IF NOT EXISTS"))
	}
}
