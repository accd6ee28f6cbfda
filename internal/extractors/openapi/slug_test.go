package openapi

import (
	"testing"

	"github.com/gertd/go-pluralize"
	"github.com/stretchr/testify/assert"
)

func TestEndpointSlug(t *testing.T) {
	pl := pluralize.NewClient()

	tests := []struct {
		summary string
		path    string
		want    string
	}{
		{"Widgets List", "/widgets", "lists/widgets"},
		{"Create Chunk", "/chunk", "chunks/create"},
		{"Get Dataset Usage", "/usage", "dataset-usages/get"},
		{"Search", "/search", "search"},
		{"", "/raw/path", "/raw/path"},
		{"   ", "/raw/path", "/raw/path"},
	}

	for _, tt := range tests {
		t.Run(tt.summary+"|"+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, endpointSlug(pl, tt.summary, tt.path))
		})
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "widgets-list", slugify("Widgets List", "/w"))
	assert.Equal(t, "/w", slugify("", "/w"))
}
