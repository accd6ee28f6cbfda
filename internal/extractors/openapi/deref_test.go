package openapi

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileFetcher(t *testing.T) func(string) ([]byte, error) {
	t.Helper()
	return func(location string) ([]byte, error) {
		return os.ReadFile(location)
	}
}

func TestDereference_LocalRef(t *testing.T) {
	dir := t.TempDir()
	spec := filepath.Join(dir, "spec.yaml")
	require.NoError(t, os.WriteFile(spec, []byte(`openapi: 3.0.0
components:
  schemas:
    Widget:
      type: object
paths:
  /widgets:
    get:
      summary: Widgets List
      responses:
        "200":
          schema:
            $ref: "#/components/schemas/Widget"
`), 0o600))

	doc, err := newDereferencer(fileFetcher(t)).dereference(spec)
	require.NoError(t, err)

	schema := dig(t, doc, "paths", "/widgets", "get", "responses", "200", "schema")
	assert.Equal(t, map[string]any{"type": "object"}, schema)
}

func TestDereference_SelfReferentialSchemaIsCycleSafe(t *testing.T) {
	dir := t.TempDir()
	spec := filepath.Join(dir, "spec.yaml")
	require.NoError(t, os.WriteFile(spec, []byte(`openapi: 3.0.0
components:
  schemas:
    Node:
      type: object
      properties:
        next:
          $ref: "#/components/schemas/Node"
paths: {}
`), 0o600))

	doc, err := newDereferencer(fileFetcher(t)).dereference(spec)
	require.NoError(t, err)

	// The inner reference stays as a bounded, unexpanded pointer.
	next := dig(t, doc, "components", "schemas", "Node", "properties", "next")
	nextSchema, ok := next.(map[string]any)
	require.True(t, ok)
	inner := dig(t, nextSchema, "properties", "next")
	assert.Equal(t, map[string]any{"$ref": "#/components/schemas/Node"}, inner)
}

func TestDereference_ExternalFileRef(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shared.yaml"), []byte(`schemas:
  Error:
    type: string
`), 0o600))
	spec := filepath.Join(dir, "spec.yaml")
	require.NoError(t, os.WriteFile(spec, []byte(`openapi: 3.0.0
paths:
  /err:
    get:
      responses:
        default:
          schema:
            $ref: "shared.yaml#/schemas/Error"
`), 0o600))

	doc, err := newDereferencer(fileFetcher(t)).dereference(spec)
	require.NoError(t, err)

	schema := dig(t, doc, "paths", "/err", "get", "responses", "default", "schema")
	assert.Equal(t, map[string]any{"type": "string"}, schema)
}

func TestDereference_DanglingPointer(t *testing.T) {
	dir := t.TempDir()
	spec := filepath.Join(dir, "spec.yaml")
	require.NoError(t, os.WriteFile(spec, []byte(`openapi: 3.0.0
paths:
  /x:
    get:
      schema:
        $ref: "#/components/schemas/Missing"
`), 0o600))

	_, err := newDereferencer(fileFetcher(t)).dereference(spec)
	assert.Error(t, err)
}

func TestWalkPointer_EscapedSegments(t *testing.T) {
	doc := map[string]any{"a/b": map[string]any{"c~d": "value"}}

	node, err := walkPointer(doc, "/a~1b/c~0d")
	require.NoError(t, err)
	assert.Equal(t, "value", node)
}

// dig walks nested string-keyed maps, failing the test on a missing key.
func dig(t *testing.T, node any, keys ...string) any {
	t.Helper()
	for _, key := range keys {
		mapping, ok := node.(map[string]any)
		require.True(t, ok, fmt.Sprintf("not a mapping at %q", key))
		node, ok = mapping[key]
		require.True(t, ok, fmt.Sprintf("missing key %q", key))
	}
	return node
}
