package openapi

import (
	"strings"

	"github.com/gertd/go-pluralize"
)

// endpointSlug derives the documentation URL segment for an operation
// from its summary. The first word of the lower-cased summary is a
// namespace tag; the remaining words, joined and pluralized as a single
// phrase, form the resource segment. "Create Chunk" becomes
// "chunks/create". An absent or empty summary falls back to the raw
// route path.
//
// The heuristic has no documented fallback for single-word summaries;
// those keep the namespace alone as the endpoint.
func endpointSlug(pl *pluralize.Client, summary, routePath string) string {
	words := strings.Fields(strings.ToLower(summary))
	if len(words) == 0 {
		return routePath
	}

	namespace := words[0]
	resource := pl.Plural(strings.Join(words[1:], "-"))
	if resource == "" {
		return namespace
	}
	return resource + "/" + namespace
}

// slugify lower-cases a summary and joins its words with dashes for the
// metadata hierarchy. An empty summary yields the raw route path.
func slugify(summary, routePath string) string {
	words := strings.Fields(strings.ToLower(summary))
	if len(words) == 0 {
		return routePath
	}
	return strings.Join(words, "-")
}
