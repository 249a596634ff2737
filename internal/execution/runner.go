package execution

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"shapecheck/internal/config"
	"shapecheck/internal/domain"
	"shapecheck/internal/harness"
)

// Runner executes a single test
type Runner struct {
	config   *config.Config
	fixtures *harness.Fixtures
	logger   *zap.Logger
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config, fixtures *harness.Fixtures, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{config: cfg, fixtures: fixtures, logger: logger}
}

// Run executes one test and classifies its outcome. It never panics.
func (r *Runner) Run(ctx context.Context, test domain.Test, workerID int) (result domain.TestResult) {
	start := time.Now()
	result = domain.TestResult{Test: test, WorkerID: workerID}
	defer func() {
		result.Duration = time.Since(start)
		r.logger.Debug("test finished",
			zap.String("test", test.ID),
			zap.String("outcome", string(result.Outcome)),
			zap.Int("worker", workerID),
			zap.Duration("duration", result.Duration))
	}()

	if test.Case.Skip != "" {
		result.Outcome = domain.OutcomeSkipped
		result.Reason = test.Case.Skip
		return result
	}
	if test.Case.Body == nil {
		result.Outcome = domain.OutcomeError
		result.Error = errors.New("test has no body")
		result.Messages = []string{result.Error.Error()}
		return result
	}

	values, err := r.fixtures.Resolve(ctx, test.Case.Fixtures)
	if err != nil {
		result.Outcome = domain.OutcomeError
		result.Error = err
		result.Messages = []string{err.Error()}
		return result
	}

	t := harness.NewT(ctx, test.ID, test.Params, values)
	p := harness.Invoke(t, test.Case.Body)

	result.Messages = t.Errors()
	result.Logs = t.Logs()
	if p != nil {
		result.Panic = fmt.Sprint(p.Value)
		result.Stack = p.Stack
		result.Messages = append(result.Messages, p.Error())
	}
	result.Outcome, result.Reason = r.classify(ctx, test, t, p != nil)

	if err := values.Close(); err != nil {
		result.Messages = append(result.Messages, err.Error())
		if !result.Outcome.IsFailure() {
			result.Outcome = domain.OutcomeError
			result.Error = err
		}
	}
	return result
}

func (r *Runner) classify(ctx context.Context, test domain.Test, t *harness.T, panicked bool) (domain.Outcome, string) {
	if skipped, reason := t.Skipped(); skipped {
		return domain.OutcomeSkipped, reason
	}

	failed := t.Failed() || panicked
	if failed && ctx.Err() != nil {
		return domain.OutcomeFailed, "interrupted"
	}

	if xfail := test.Case.XFail; xfail != "" {
		if failed {
			return domain.OutcomeXFailed, xfail
		}
		if r.config.XFailStrict {
			return domain.OutcomeFailed, "[XPASS(strict)] " + xfail
		}
		return domain.OutcomeXPassed, xfail
	}

	if failed {
		return domain.OutcomeFailed, ""
	}
	return domain.OutcomePassed, ""
}
