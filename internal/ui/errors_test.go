package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shapecheck/internal/domain"
)

type recordingStorage struct {
	saved []*domain.TestResultsOutput
}

func (r *recordingStorage) Save(*domain.Run) error { return nil }
func (r *recordingStorage) Load() (*domain.TestResultsOutput, error) {
	return nil, nil
}
func (r *recordingStorage) SaveOutput(output *domain.TestResultsOutput) error {
	r.saved = append(r.saved, output)
	return nil
}

func sampleFailure() domain.TestFailure {
	return domain.TestFailure{
		TestID:     "test_square::test_multiple_square_permimeters[2-8]",
		TestName:   "test_multiple_square_permimeters[2-8]",
		Module:     "test_square",
		Outcome:    domain.OutcomeFailed,
		Message:    "assert 8 == 8",
		StackTrace: []string{"square.go:30 shapecheck/internal/suite.squareCases.func2"},
		File:       "square.go",
		Line:       30,
	}
}

func TestErrorViewer_NoFailures(t *testing.T) {
	st := &recordingStorage{}
	ev := NewErrorViewer(st, zap.NewNop())

	require.NoError(t, ev.View(&domain.TestResultsOutput{}))
	assert.Empty(t, st.saved)
}

func TestErrorViewer_FormatFailureDetails(t *testing.T) {
	ev := NewErrorViewer(&recordingStorage{}, zap.NewNop())

	details := ev.formatFailureDetails(sampleFailure())
	assert.Contains(t, details, "Test: test_multiple_square_permimeters[2-8[]")
	assert.Contains(t, details, "Module: test_square")
	assert.Contains(t, details, "Outcome: FAILED")
	assert.Contains(t, details, "Location: square.go:30")
	assert.Contains(t, details, "assert 8 == 8")

	failure := sampleFailure()
	failure.StackTrace = make([]string, 12)
	for i := range failure.StackTrace {
		failure.StackTrace[i] = "frame"
	}
	assert.Contains(t, ev.formatFailureDetails(failure), "... and 2 more lines")
}

func TestErrorViewer_FormatFailureStats(t *testing.T) {
	ev := NewErrorViewer(&recordingStorage{}, zap.NewNop())

	stats := ev.formatFailureStats(sampleFailure(), 1)
	assert.Contains(t, stats, "test_square")
	assert.True(t, strings.Contains(stats, "test_multiple_square_permimeters"))

	stats = ev.formatFailureStats(domain.TestFailure{}, 3)
	assert.Contains(t, stats, "Unknown module")
	assert.Contains(t, stats, "Test 3")
}

func TestErrorViewer_ToggleResolved(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	st := &recordingStorage{}
	ev := NewErrorViewer(st, zap.NewNop())
	ev.app = tview.NewApplication().SetScreen(screen)

	output := &domain.TestResultsOutput{Details: []domain.TestFailure{sampleFailure()}}

	screen.InjectKey(tcell.KeyRune, 'r', tcell.ModNone)
	screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModNone)

	done := make(chan error, 1)
	go func() { done <- ev.View(output) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		ev.app.Stop()
		t.Fatal("viewer did not stop")
	}

	require.Len(t, st.saved, 1)
	assert.True(t, output.Details[0].Resolved)
}

func TestFailureBrowser_ToggleUpdatesViews(t *testing.T) {
	st := &recordingStorage{}
	ev := NewErrorViewer(st, zap.NewNop())
	errored := sampleFailure()
	errored.TestID = "test_rectangle::test_area"
	errored.Outcome = domain.OutcomeError
	output := &domain.TestResultsOutput{Details: []domain.TestFailure{sampleFailure(), errored}}

	b := newFailureBrowser(ev, tview.NewApplication(), output)
	assert.Contains(t, b.header.GetText(false), "2 failing tests, 2 unresolved")
	item, _ := b.list.GetItemText(0)
	assert.Contains(t, item, "test_multiple_square_permimeters[2-8[]")
	item, _ = b.list.GetItemText(1)
	assert.Contains(t, item, "[orange]2.")

	b.toggleResolved()
	assert.True(t, output.Details[0].Resolved)
	assert.Contains(t, b.header.GetText(false), "2 failing tests, 1 unresolved")
	item, _ = b.list.GetItemText(0)
	assert.Contains(t, item, "✓")
	require.Len(t, st.saved, 1)

	b.toggleResolved()
	assert.False(t, output.Details[0].Resolved)
	assert.Len(t, st.saved, 2)
}
