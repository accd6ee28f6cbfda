package trieve

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		BaseURL:        srv.URL,
		APIKey:         "tr-key",
		OrganizationID: "org-1",
		// Keep tests fast regardless of the default throttle.
		RequestsPerSecond: 10_000,
	})
}

func TestLookupByTrackingID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/dataset/tracking_id/docs-prod", r.URL.Path)
		assert.Equal(t, "tr-key", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]string{"id": "ds-42", "tracking_id": "docs-prod"})
	})

	handle, err := c.LookupByTrackingID(context.Background(), "docs-prod")
	require.NoError(t, err)
	assert.Equal(t, "ds-42", handle.ID)
	assert.Equal(t, "docs-prod", handle.TrackingID)
}

func TestLookupByTrackingID_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no dataset", http.StatusNotFound)
	})

	_, err := c.LookupByTrackingID(context.Background(), "absent")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_SendsOrganizationHeader(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/dataset", r.URL.Path)
		assert.Equal(t, "org-1", r.Header.Get(HeaderOrganization))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "docs-prod", body["tracking_id"])
		assert.Equal(t, "docs-prod", body["dataset_name"])

		json.NewEncoder(w).Encode(map[string]string{"id": "ds-new"})
	})

	handle, err := c.Create(context.Background(), "docs-prod", "docs-prod")
	require.NoError(t, err)
	assert.Equal(t, "ds-new", handle.ID)
}

func TestClear(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/dataset/clear/ds-42", r.URL.Path)
		assert.Equal(t, "ds-42", r.Header.Get(HeaderDataset))
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, c.Clear(context.Background(), "ds-42"))
}

func TestListGroups(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/dataset/groups/ds-42/1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"groups": []map[string]string{{"id": "g1", "tracking_id": "a.md"}},
		})
	})

	groups, err := c.ListGroups(context.Background(), "ds-42", 1)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "g1", groups[0].ID)
	assert.Equal(t, "a.md", groups[0].TrackingID)
}

func TestBulkCreateChunks_PayloadShape(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chunk", r.URL.Path)
		assert.Equal(t, "ds-42", r.Header.Get(HeaderDataset))

		var payload []map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Len(t, payload, 1)
		assert.Equal(t, "<h3>t</h3><p>b</p>", payload[0]["chunk_html"])
		assert.Equal(t, true, payload[0]["convert_html_to_text"])
		assert.Contains(t, payload[0], "group_tracking_ids")

		boost, ok := payload[0]["semantic_boost"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "t", boost["phrase"])
	})

	record := domain.ChunkRecord{
		HTML:              "<h3>t</h3><p>b</p>",
		GroupTrackingIDs:  []string{"a.md"},
		ConvertHTMLToText: true,
	}
	record.WithBoosts("t")

	err := c.BulkCreateChunks(context.Background(), "ds-42", []domain.ChunkRecord{record})
	assert.NoError(t, err)
}

func TestDo_ServerErrorIncludesDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "index rebuilding", http.StatusServiceUnavailable)
	})

	err := c.Clear(context.Background(), "ds-42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index rebuilding")
}

func TestDo_RateLimited(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	err := c.Clear(context.Background(), "ds-42")
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}
