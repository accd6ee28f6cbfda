package driven

import (
	"context"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
)

// RunJournal persists pipeline run history for the history command.
type RunJournal interface {
	// Record inserts or updates a run by ID.
	Record(ctx context.Context, run domain.SyncRun) error

	// List returns the most recent runs, newest first, up to limit.
	List(ctx context.Context, limit int) ([]domain.SyncRun, error)

	// Close releases resources.
	Close() error
}
