package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docdex-cli/internal/logger"
)

// Ensure PipelineOrchestrator implements the interface.
var _ driving.Pipeline = (*PipelineOrchestrator)(nil)

// PipelineOrchestrator coordinates the extract, synchronize, upload cycle.
//
// Extraction runs each source through its extractor; a failing source is
// logged and contributes zero chunks. Spec-derived records come first,
// then per-path markdown records in resolver order, so all chunks from
// one source stay contiguous. The synchronizer must reach ready before
// the first batch call is issued.
type PipelineOrchestrator struct {
	resolver     driven.ContentResolver
	markdown     driven.MarkdownExtractor
	spec         driven.SpecExtractor // optional
	synchronizer *DatasetSynchronizer
	uploader     *BatchUploader
	journal      driven.RunJournal // optional
	trackingID   string
}

// NewPipelineOrchestrator creates an orchestrator. The spec extractor and
// journal may be nil; runs then skip spec extraction and history recording.
func NewPipelineOrchestrator(
	resolver driven.ContentResolver,
	markdown driven.MarkdownExtractor,
	spec driven.SpecExtractor,
	synchronizer *DatasetSynchronizer,
	uploader *BatchUploader,
	journal driven.RunJournal,
	trackingID string,
) *PipelineOrchestrator {
	return &PipelineOrchestrator{
		resolver:     resolver,
		markdown:     markdown,
		spec:         spec,
		synchronizer: synchronizer,
		uploader:     uploader,
		journal:      journal,
		trackingID:   trackingID,
	}
}

// Push runs the full pipeline against the remote dataset.
func (o *PipelineOrchestrator) Push(ctx context.Context) (*driving.RunReport, error) {
	started := time.Now()
	report := &driving.RunReport{RunID: uuid.New().String()}

	o.record(ctx, report, started, domain.RunStatusRunning, nil)

	records := o.extract(ctx, report)

	logger.Section("Dataset sync")
	handle, err := o.synchronizer.Ready(ctx, o.trackingID)
	if err != nil {
		o.record(ctx, report, started, domain.RunStatusFailed, err)
		return nil, fmt.Errorf("synchronize dataset: %w", err)
	}
	report.DatasetID = handle.ID

	logger.Section("Upload")
	batches, err := o.uploader.Upload(ctx, handle.ID, records)
	report.BatchCount = batches
	if err != nil {
		o.record(ctx, report, started, domain.RunStatusFailed, err)
		return nil, fmt.Errorf("upload chunks: %w", err)
	}

	report.Duration = time.Since(started)
	o.record(ctx, report, started, domain.RunStatusSucceeded, nil)
	return report, nil
}

// Extract runs only the extraction phase. The remote store is not touched
// and nothing is journalled.
func (o *PipelineOrchestrator) Extract(ctx context.Context) (*driving.RunReport, error) {
	started := time.Now()
	report := &driving.RunReport{RunID: uuid.New().String()}
	o.extract(ctx, report)
	report.Duration = time.Since(started)
	return report, nil
}

// extract gathers all chunk records, spec-derived first, then markdown in
// path order. Individual source failures are counted, never propagated.
func (o *PipelineOrchestrator) extract(ctx context.Context, report *driving.RunReport) []domain.ChunkRecord {
	var records []domain.ChunkRecord

	if o.spec != nil {
		logger.Section("OpenAPI extraction")
		chunks, err := o.spec.Extract(ctx)
		if err != nil {
			logger.Warn("Spec extraction failed: %v", err)
			report.SourceErrors++
		}
		report.SpecChunks = len(chunks)
		records = append(records, chunks...)
	}

	logger.Section("Markdown extraction")
	paths, err := o.resolver.Resolve(ctx)
	if err != nil {
		logger.Warn("Resolving content paths failed: %v", err)
		report.SourceErrors++
	}
	for _, path := range paths {
		chunks, err := o.markdown.Extract(ctx, path)
		if err != nil {
			logger.Warn("Skipping %s: %v", path, err)
			report.SourceErrors++
			continue
		}
		report.MarkdownDocs++
		report.MarkdownChunks += len(chunks)
		records = append(records, chunks...)
	}

	report.ChunkCount = len(records)
	logger.Info("Extracted %d chunks (%d spec, %d markdown) from %d documents",
		report.ChunkCount, report.SpecChunks, report.MarkdownChunks, report.MarkdownDocs)
	return records
}

// record persists run state to the journal when one is configured.
func (o *PipelineOrchestrator) record(ctx context.Context, report *driving.RunReport, started time.Time, status domain.RunStatus, runErr error) {
	if o.journal == nil {
		return
	}

	run := domain.SyncRun{
		ID:                report.RunID,
		DatasetTrackingID: o.trackingID,
		ChunkCount:        report.ChunkCount,
		BatchCount:        report.BatchCount,
		SourceErrors:      report.SourceErrors,
		Status:            status,
		StartedAt:         started,
	}
	if status != domain.RunStatusRunning {
		run.FinishedAt = time.Now()
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}

	if err := o.journal.Record(ctx, run); err != nil {
		logger.Warn("Recording run %s failed: %v", run.ID, err)
	}
}
