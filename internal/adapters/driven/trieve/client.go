// Package trieve implements the DatasetStore port against a Trieve-style
// search store's HTTP API. The adapter owns transport concerns: auth
// headers, JSON encoding, timeouts and proactive rate limiting.
package trieve

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRequestsPerSecond is the proactive throttle rate.
	DefaultRequestsPerSecond = 10

	// HeaderDataset scopes a request to one dataset.
	HeaderDataset = "TR-Dataset"

	// HeaderOrganization scopes dataset management to one organization.
	HeaderOrganization = "TR-Organization"
)

// Ensure Client implements the interface.
var _ driven.DatasetStore = (*Client)(nil)

// Config holds the connection settings for the remote store.
type Config struct {
	// BaseURL is the API root, e.g. "https://api.trieve.ai".
	BaseURL string

	// APIKey authenticates every request.
	APIKey string

	// OrganizationID scopes dataset creation and lookup.
	OrganizationID string

	// Timeout bounds each HTTP request. Zero means DefaultTimeout.
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing calls. Zero means the default.
	RequestsPerSecond float64
}

// Client is a rate-limited JSON/HTTP client for the dataset API.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a dataset store client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}
}

// dataset is the wire shape of a dataset resource.
type dataset struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TrackingID string `json:"tracking_id"`
}

// LookupByTrackingID resolves a dataset by its stable tracking id.
func (c *Client) LookupByTrackingID(ctx context.Context, trackingID string) (*domain.DatasetHandle, error) {
	var ds dataset
	err := c.do(ctx, http.MethodGet, "/api/dataset/tracking_id/"+trackingID, nil, &ds, nil)
	if err != nil {
		return nil, err
	}
	return &domain.DatasetHandle{TrackingID: trackingID, ID: ds.ID}, nil
}

// Create allocates a new dataset in the configured organization.
func (c *Client) Create(ctx context.Context, trackingID, name string) (*domain.DatasetHandle, error) {
	body := map[string]any{
		"dataset_name":    name,
		"tracking_id":     trackingID,
		"organization_id": c.cfg.OrganizationID,
	}

	var ds dataset
	headers := map[string]string{HeaderOrganization: c.cfg.OrganizationID}
	if err := c.do(ctx, http.MethodPost, "/api/dataset", body, &ds, headers); err != nil {
		return nil, err
	}
	return &domain.DatasetHandle{TrackingID: trackingID, ID: ds.ID}, nil
}

// Clear requests removal of all chunks in the dataset.
func (c *Client) Clear(ctx context.Context, datasetID string) error {
	headers := map[string]string{HeaderDataset: datasetID}
	return c.do(ctx, http.MethodPut, "/api/dataset/clear/"+datasetID, nil, nil, headers)
}

// ListGroups returns one page of the dataset's chunk groups.
func (c *Client) ListGroups(ctx context.Context, datasetID string, page int) ([]domain.Group, error) {
	var out struct {
		Groups []domain.Group `json:"groups"`
	}
	headers := map[string]string{HeaderDataset: datasetID}
	path := fmt.Sprintf("/api/dataset/groups/%s/%d", datasetID, page)
	if err := c.do(ctx, http.MethodGet, path, nil, &out, headers); err != nil {
		return nil, err
	}
	return out.Groups, nil
}

// BulkCreateChunks uploads one batch of chunk records.
func (c *Client) BulkCreateChunks(ctx context.Context, datasetID string, records []domain.ChunkRecord) error {
	headers := map[string]string{HeaderDataset: datasetID}
	return c.do(ctx, http.MethodPost, "/api/chunk", records, nil, headers)
}

// do issues one JSON request, decoding the response into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any, headers map[string]string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.cfg.APIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, domain.ErrNotFound)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%s %s: %w", method, path, domain.ErrRateLimited)
	case resp.StatusCode >= 300:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: %s: %s", method, path, resp.Status, bytes.TrimSpace(detail))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
