package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdex-cli/internal/logger"
)

// DefaultBatchSize is the number of chunk records per bulk-create call.
const DefaultBatchSize = 120

// BatchUploader pushes chunk records to the remote store in bounded,
// strictly ordered batches. Batch k+1 never starts before batch k's
// bulk-create call succeeds.
type BatchUploader struct {
	store     driven.DatasetStore
	batchSize int
	retry     RetryPolicy
}

// NewBatchUploader creates an uploader. A non-positive batchSize falls
// back to DefaultBatchSize.
func NewBatchUploader(store driven.DatasetStore, batchSize int, retry RetryPolicy) *BatchUploader {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &BatchUploader{store: store, batchSize: batchSize, retry: retry}
}

// Upload pushes all records into the dataset, returning the number of
// bulk-create calls that succeeded. A batch that fails is retried under
// the policy; exhausting it fails the upload.
func (u *BatchUploader) Upload(ctx context.Context, datasetID string, records []domain.ChunkRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	total := (len(records) + u.batchSize - 1) / u.batchSize
	batches := 0
	for start := 0; start < len(records); start += u.batchSize {
		end := min(start+u.batchSize, len(records))

		if err := u.uploadBatch(ctx, datasetID, records[start:end], batches+1, total); err != nil {
			return batches, err
		}
		batches++
	}

	logger.Info("Uploaded %d chunks in %d batch(es)", len(records), batches)
	return batches, nil
}

func (u *BatchUploader) uploadBatch(ctx context.Context, datasetID string, batch []domain.ChunkRecord, num, total int) error {
	for attempt := 0; ; attempt++ {
		err := u.store.BulkCreateChunks(ctx, datasetID, batch)
		if err == nil {
			logger.Debug("Batch %d/%d uploaded (%d chunks)", num, total, len(batch))
			return nil
		}
		logger.Warn("Batch %d/%d failed (attempt %d): %v", num, total, attempt+1, err)

		if u.retry.Exhausted(attempt + 1) {
			return fmt.Errorf("%w: batch %d/%d failed after %d attempts: %w",
				domain.ErrUploadIncomplete, num, total, attempt+1, err)
		}
		if err := u.retry.Sleep(ctx, attempt); err != nil {
			return err
		}
	}
}
