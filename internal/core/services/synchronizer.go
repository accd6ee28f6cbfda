package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdex-cli/internal/logger"
)

// DatasetSynchronizer brings exactly one named dataset into a state ready
// to accept a fresh bulk load. There is at most one live dataset per
// tracking id: an existing dataset is cleared and drained, a missing one
// is created.
type DatasetSynchronizer struct {
	store driven.DatasetStore
	retry RetryPolicy
}

// NewDatasetSynchronizer creates a synchronizer over the given store.
func NewDatasetSynchronizer(store driven.DatasetStore, retry RetryPolicy) *DatasetSynchronizer {
	return &DatasetSynchronizer{store: store, retry: retry}
}

// Ready resolves the dataset for trackingID and returns its handle once
// the dataset is empty and ready for upload.
//
// A clean not-found, or any lookup failure that cannot distinguish
// not-found from transient trouble, proceeds to create. Create failure is
// the one fatal outcome. For an existing dataset the clear call is
// best-effort; readiness is observed by polling the first group page
// until it comes back empty.
func (s *DatasetSynchronizer) Ready(ctx context.Context, trackingID string) (*domain.DatasetHandle, error) {
	handle, err := s.store.LookupByTrackingID(ctx, trackingID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Dataset lookup for %q ambiguous, treating as not found: %v", trackingID, err)
		}
		return s.create(ctx, trackingID)
	}

	logger.Info("Found dataset %s for tracking id %q, clearing", handle.ID, trackingID)
	if err := s.store.Clear(ctx, handle.ID); err != nil {
		// Non-fatal: the drain poll below still observes the dataset state.
		logger.Warn("Clear request for dataset %s failed: %v", handle.ID, err)
	}

	if err := s.drain(ctx, handle.ID); err != nil {
		return nil, err
	}
	return handle, nil
}

func (s *DatasetSynchronizer) create(ctx context.Context, trackingID string) (*domain.DatasetHandle, error) {
	logger.Info("Creating dataset with tracking id %q", trackingID)
	handle, err := s.store.Create(ctx, trackingID, trackingID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDatasetCreate, err)
	}
	return handle, nil
}

// drain polls the dataset's first group page until it is empty.
// Poll failures are transient: logged, then retried under the policy.
func (s *DatasetSynchronizer) drain(ctx context.Context, datasetID string) error {
	for attempt := 0; ; attempt++ {
		groups, err := s.store.ListGroups(ctx, datasetID, 1)
		switch {
		case err != nil:
			logger.Warn("Polling dataset %s groups failed: %v", datasetID, err)
		case len(groups) == 0:
			logger.Debug("Dataset %s drained after %d poll(s)", datasetID, attempt+1)
			return nil
		default:
			logger.Debug("Dataset %s still holds %d group(s)", datasetID, len(groups))
		}

		if s.retry.Exhausted(attempt + 1) {
			return fmt.Errorf("%w: dataset %s not drained after %d polls", domain.ErrDatasetNotReady, datasetID, attempt+1)
		}
		if err := s.retry.Sleep(ctx, attempt); err != nil {
			return err
		}
	}
}
