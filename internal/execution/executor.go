package execution

import (
	"context"
	"time"

	"ctp/internal/domain"
	"ctp/internal/ui"
)

// Executor executes tests and returns results
type Executor interface {
	Execute(ctx context.Context, tests []domain.Test) ([]domain.TestResult, time.Duration, error)
	SetProgress(progress *ui.ProgressBar)
}
