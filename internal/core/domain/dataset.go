package domain

// DatasetHandle identifies the remote dataset a pipeline run writes into.
// It is resolved once per run via lookup-or-create and never mutated after
// resolution. Ownership ends at process exit; the handle is not persisted.
type DatasetHandle struct {
	// TrackingID is the stable, caller-supplied identifier.
	TrackingID string

	// ID is the remote-allocated identifier, resolved at runtime.
	ID string
}

// Group is a remote grouping of chunks, typically all chunks from one
// source document. The synchronizer polls groups to observe a cleared
// dataset; only presence matters to this pipeline.
type Group struct {
	ID         string `json:"id"`
	TrackingID string `json:"tracking_id"`
	Name       string `json:"name"`
}
