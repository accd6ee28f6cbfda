package driven

import (
	"context"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
)

// DatasetStore is the remote search store's dataset-management surface.
// The transport (HTTP, auth, rate limiting) is the adapter's concern;
// core services only see these five calls.
type DatasetStore interface {
	// LookupByTrackingID resolves a dataset by its stable tracking id.
	// Returns domain.ErrNotFound when no dataset carries the id.
	LookupByTrackingID(ctx context.Context, trackingID string) (*domain.DatasetHandle, error)

	// Create allocates a new dataset with the given tracking id and
	// display name, returning the resolved handle.
	Create(ctx context.Context, trackingID, name string) (*domain.DatasetHandle, error)

	// Clear requests removal of all chunks in the dataset. The remote
	// store drains asynchronously; observe progress via ListGroups.
	Clear(ctx context.Context, datasetID string) error

	// ListGroups returns one page of the dataset's chunk groups.
	// Pages start at 1. An empty first page means the dataset is drained.
	ListGroups(ctx context.Context, datasetID string, page int) ([]domain.Group, error)

	// BulkCreateChunks uploads one batch of chunk records.
	BulkCreateChunks(ctx context.Context, datasetID string, records []domain.ChunkRecord) error
}
