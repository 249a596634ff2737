package storage

import (
	"time"

	"shapecheck/internal/config"
	"shapecheck/internal/domain"
)

// Storage persists and loads test run results (e.g. for the failures viewer).
type Storage interface {
	Save(run *domain.Run) error
	Load() (*domain.TestResultsOutput, error)
	// SaveOutput writes the full output (e.g. after marking failures resolved).
	SaveOutput(output *domain.TestResultsOutput) error
}

// JSONStorage stores results in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}

// BuildOutput summarizes a run into the stored output structure
func BuildOutput(run *domain.Run) *domain.TestResultsOutput {
	meta := domain.TestResultsMeta{
		RunID:           run.ID,
		TotalTests:      len(run.Results),
		DeselectedTests: run.Deselected,
		MarkExpr:        run.MarkExpr,
		Keyword:         run.Keyword,
		Duration:        run.Duration.String(),
		DurationSeconds: run.Duration.Seconds(),
		Workers:         run.Workers,
		Timestamp:       run.StartedAt.Format(time.RFC3339),
	}

	cases := make([]domain.CaseRecord, 0, len(run.Results))
	for _, r := range run.Results {
		switch r.Outcome {
		case domain.OutcomePassed:
			meta.PassedTests++
		case domain.OutcomeFailed:
			meta.FailedTests++
		case domain.OutcomeSkipped:
			meta.SkippedTests++
		case domain.OutcomeXFailed:
			meta.XFailedTests++
		case domain.OutcomeXPassed:
			meta.XPassedTests++
		case domain.OutcomeError:
			meta.ErrorTests++
		}
		cases = append(cases, domain.CaseRecord{
			ID:         r.Test.ID,
			Outcome:    r.Outcome,
			Reason:     r.Reason,
			Markers:    r.Test.Markers,
			DurationMS: float64(r.Duration.Microseconds()) / 1000,
		})
	}

	details := run.Failures
	if details == nil {
		details = []domain.TestFailure{}
	}

	return &domain.TestResultsOutput{
		Meta:     meta,
		Details:  details,
		Cases:    cases,
		Warnings: run.Warnings,
	}
}

// FailedIDs returns the ids of failed or errored cases in a stored output
func FailedIDs(output *domain.TestResultsOutput) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, c := range output.Cases {
		if c.Outcome.IsFailure() {
			ids[c.ID] = struct{}{}
		}
	}
	return ids
}
