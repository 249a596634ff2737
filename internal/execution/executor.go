package execution

import (
	"context"
	"time"

	"shapecheck/internal/domain"
)

// Executor executes tests and returns results
type Executor interface {
	Execute(ctx context.Context, tests []domain.Test) ([]domain.TestResult, time.Duration, error)
}

// Progress receives a callback after every executed test
type Progress interface {
	Update(result domain.TestResult, done, total int)
	Finish()
}
