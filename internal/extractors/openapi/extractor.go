// Package openapi extracts chunk records from an OpenAPI specification,
// one record per (path, method) operation. The specification is fully
// dereferenced before extraction so descriptions pulled from shared
// components survive into the chunks.
package openapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/gertd/go-pluralize"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdex-cli/internal/logger"
)

// DefaultFetchTimeout bounds the HTTP fetch of a remote specification.
const DefaultFetchTimeout = 30 * time.Second

// RouteTag is the first tag on every spec-derived chunk.
const RouteTag = "openapi-route"

// methodOrder fixes the iteration order of operations under a path.
var methodOrder = []string{"get", "post", "put", "patch", "delete", "head", "options", "trace"}

// Ensure Extractor implements the interface.
var _ driven.SpecExtractor = (*Extractor)(nil)

// Extractor turns one API specification into chunk records.
type Extractor struct {
	location  string
	siteURL   string
	refParent string
	client    *http.Client
	pl        *pluralize.Client
}

// New creates an extractor for the specification at location (URL or
// filesystem path). Links are built as siteURL/refParent/endpoint.
func New(location, siteURL, refParent string) *Extractor {
	return &Extractor{
		location:  location,
		siteURL:   strings.TrimRight(siteURL, "/"),
		refParent: strings.Trim(refParent, "/"),
		client:    &http.Client{Timeout: DefaultFetchTimeout},
		pl:        pluralize.NewClient(),
	}
}

// Extract fetches, dereferences and chunks the specification. Any
// whole-spec failure returns an error and zero chunks; it never aborts
// the pipeline.
func (e *Extractor) Extract(ctx context.Context) ([]domain.ChunkRecord, error) {
	deref := newDereferencer(func(location string) ([]byte, error) {
		return e.fetchLocation(ctx, location)
	})
	spec, err := deref.dereference(e.location)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSourceRead, err)
	}

	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSpecShape, e.location)
	}

	routes := make([]string, 0, len(paths))
	for route := range paths {
		routes = append(routes, route)
	}
	sort.Strings(routes)

	var records []domain.ChunkRecord
	for _, route := range routes {
		operations, ok := paths[route].(map[string]any)
		if !ok {
			continue
		}
		for _, method := range methodOrder {
			operation, ok := operations[method].(map[string]any)
			if !ok {
				continue
			}
			records = append(records, e.buildRecord(route, method, operation))
		}
	}

	logger.Info("Extracted %d operation chunks from %s", len(records), e.location)
	return records, nil
}

// buildRecord assembles one chunk record for a (path, method) operation.
// All methods on one path share a group.
func (e *Extractor) buildRecord(route, method string, operation map[string]any) domain.ChunkRecord {
	operationID := stringField(operation, "operationId")
	summary := stringField(operation, "summary")
	description := stringField(operation, "description")

	endpoint := endpointSlug(e.pl, summary, route)
	link := e.siteURL + "/" + e.refParent + "/" + endpoint

	heading := strings.TrimSpace(strings.ToUpper(method) + " " + summary)
	html := fmt.Sprintf("<h2>%s</h2>", heading)
	if description != "" {
		html += fmt.Sprintf("<p>%s</p>", description)
	}

	record := domain.ChunkRecord{
		HTML:   html,
		Link:   link,
		TagSet: []string{RouteTag, operationID, method},
		Metadata: map[string]any{
			"operation_id": operationID,
			"url":          link,
			"hierarchy":    []string{e.refParent, slugify(summary, route)},
			"summary":      summary,
			"description":  description,
		},
		GroupTrackingIDs:  []string{route},
		ConvertHTMLToText: true,
	}
	record.WithBoosts(heading)
	return record
}

// fetchLocation loads raw specification bytes from a URL or a file.
func (e *Extractor) fetchLocation(ctx context.Context, location string) ([]byte, error) {
	if !strings.HasPrefix(location, "http://") && !strings.HasPrefix(location, "https://") {
		return os.ReadFile(location)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", location, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
