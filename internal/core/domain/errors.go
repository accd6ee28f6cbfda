package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Source errors. A single failing source never aborts the pipeline;
	// it is logged and contributes zero chunks.

	// ErrSourceRead indicates a document or specification could not be
	// read or parsed.
	ErrSourceRead = errors.New("source read failed")

	// ErrSpecShape indicates an API specification lacks the top-level
	// path-to-operations map.
	ErrSpecShape = errors.New("specification has no paths")

	// Dataset errors.

	// ErrDatasetCreate indicates the remote dataset could not be created.
	// This is the only failure class that terminates a pipeline run.
	ErrDatasetCreate = errors.New("dataset create failed")

	// ErrDatasetNotReady indicates the dataset never reached a drained
	// state within the synchronizer's retry budget.
	ErrDatasetNotReady = errors.New("dataset not ready")

	// ErrUploadIncomplete indicates a batch exhausted its retry budget.
	ErrUploadIncomplete = errors.New("upload incomplete")

	// ErrRateLimited indicates the remote API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
