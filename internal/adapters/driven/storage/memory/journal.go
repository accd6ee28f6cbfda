// Package memory provides in-memory implementations of the driven
// storage ports. Useful for tests and for running the pipeline without
// a persistent history journal.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
)

// Journal keeps sync run history in memory.
type Journal struct {
	mu   sync.RWMutex
	runs map[string]domain.SyncRun
}

var _ driven.RunJournal = (*Journal)(nil)

// NewJournal creates an empty in-memory journal.
func NewJournal() *Journal {
	return &Journal{runs: make(map[string]domain.SyncRun)}
}

// Record stores or replaces the run keyed by its ID.
func (j *Journal) Record(_ context.Context, run domain.SyncRun) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.runs[run.ID] = run
	return nil
}

// List returns up to limit runs, newest first by start time.
func (j *Journal) List(_ context.Context, limit int) ([]domain.SyncRun, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if limit <= 0 {
		limit = defaultListLimit
	}

	runs := make([]domain.SyncRun, 0, len(j.runs))
	for _, run := range j.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, k int) bool {
		return runs[i].StartedAt.After(runs[k].StartedAt)
	})

	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// Close is a no-op for the in-memory journal.
func (j *Journal) Close() error {
	return nil
}

const defaultListLimit = 20
