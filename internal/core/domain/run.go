package domain

import "time"

// RunStatus describes the outcome of a pipeline run.
type RunStatus string

const (
	// RunStatusRunning marks a run that has started but not finished.
	RunStatusRunning RunStatus = "running"

	// RunStatusSucceeded marks a run whose dataset reached READY and
	// whose upload completed in full.
	RunStatusSucceeded RunStatus = "succeeded"

	// RunStatusFailed marks a run that terminated early.
	RunStatusFailed RunStatus = "failed"
)

// SyncRun records one pipeline run for the history journal.
type SyncRun struct {
	// ID is the unique run identifier.
	ID string

	// DatasetTrackingID is the tracking id of the dataset written to.
	DatasetTrackingID string

	// ChunkCount is the total number of chunk records produced.
	ChunkCount int

	// BatchCount is the number of bulk-create calls that succeeded.
	BatchCount int

	// SourceErrors counts documents or specs that failed to read/parse
	// and contributed zero chunks.
	SourceErrors int

	Status     RunStatus
	StartedAt  time.Time
	FinishedAt time.Time

	// Error holds the failure message for failed runs.
	Error string
}
