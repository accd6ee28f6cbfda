package driving

import (
	"context"
	"time"
)

// Pipeline runs the full extract, synchronize, upload cycle.
type Pipeline interface {
	// Push extracts chunks from all configured sources and replaces the
	// remote dataset's contents with them. Returns a report on success.
	// Cancelling the context stops the run between remote attempts.
	Push(ctx context.Context) (*RunReport, error)

	// Extract runs only the extraction phase, leaving the remote store
	// untouched. Used by dry runs.
	Extract(ctx context.Context) (*RunReport, error)
}

// RunReport summarises one pipeline run for display.
type RunReport struct {
	// RunID is the unique identifier recorded in the journal.
	RunID string

	// DatasetID is the resolved remote dataset identifier. Empty for dry runs.
	DatasetID string

	// MarkdownDocs is the number of documentation paths processed.
	MarkdownDocs int

	// SpecChunks and MarkdownChunks split ChunkCount by extractor.
	SpecChunks     int
	MarkdownChunks int

	// ChunkCount is the total number of chunk records produced.
	ChunkCount int

	// BatchCount is the number of bulk-create calls issued. Zero for dry runs.
	BatchCount int

	// SourceErrors counts sources that failed to read or parse.
	SourceErrors int

	Duration time.Duration
}
