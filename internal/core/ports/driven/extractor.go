package driven

import (
	"context"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
)

// MarkdownExtractor turns one documentation file into chunk records.
// A failing document returns a nil slice and a non-nil error; the caller
// counts the failure and continues. The error never aborts a pipeline run.
type MarkdownExtractor interface {
	Extract(ctx context.Context, path string) ([]domain.ChunkRecord, error)
}

// SpecExtractor turns one API specification into chunk records.
// The spec location is fixed at construction. Fetch or parse failure of
// the whole spec returns a nil slice and a non-nil error, never aborting
// the pipeline run.
type SpecExtractor interface {
	Extract(ctx context.Context) ([]domain.ChunkRecord, error)
}

// ContentResolver lists the documentation paths to process, relative to
// the content root, in a deterministic order.
type ContentResolver interface {
	Resolve(ctx context.Context) ([]string, error)
}
