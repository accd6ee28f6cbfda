package openapi

import (
	"encoding/json"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// dereferencer expands $ref pointers into a self-contained structure.
// Visited-pointer tracking keeps it cycle-safe: a schema that references
// itself, directly or transitively, resolves to a bounded stub instead of
// expanding forever.
type dereferencer struct {
	// docs caches loaded documents by location.
	docs map[string]map[string]any

	// fetch loads the raw bytes of a document location.
	fetch func(location string) ([]byte, error)
}

func newDereferencer(fetch func(string) ([]byte, error)) *dereferencer {
	return &dereferencer{
		docs:  make(map[string]map[string]any),
		fetch: fetch,
	}
}

// dereference resolves every $ref in the document at location, returning
// a structure with no remaining resolvable pointers.
func (d *dereferencer) dereference(location string) (map[string]any, error) {
	root, err := d.load(location)
	if err != nil {
		return nil, err
	}

	resolved, err := d.resolve(root, location, map[string]bool{})
	if err != nil {
		return nil, err
	}
	doc, ok := resolved.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("specification root is not a mapping")
	}
	return doc, nil
}

// load parses and caches one document. Locations ending in .json are
// parsed as JSON, everything else as YAML.
func (d *dereferencer) load(location string) (map[string]any, error) {
	if doc, ok := d.docs[location]; ok {
		return doc, nil
	}

	raw, err := d.fetch(location)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", location, err)
	}

	var doc map[string]any
	if strings.HasSuffix(location, ".json") {
		err = json.Unmarshal(raw, &doc)
	} else {
		err = yaml.Unmarshal(raw, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", location, err)
	}

	d.docs[location] = doc
	return doc, nil
}

// resolve walks a node, substituting $ref maps with their targets.
// visiting is keyed by "location|ref"; revisiting a key is a cycle and
// yields the unexpanded ref map as the bounded representation.
func (d *dereferencer) resolve(node any, location string, visiting map[string]bool) (any, error) {
	switch value := node.(type) {
	case map[string]any:
		if ref, ok := value["$ref"].(string); ok {
			return d.resolveRef(ref, location, visiting)
		}

		out := make(map[string]any, len(value))
		for key, child := range value {
			resolved, err := d.resolve(child, location, visiting)
			if err != nil {
				return nil, err
			}
			out[key] = resolved
		}
		return out, nil

	case []any:
		out := make([]any, len(value))
		for i, child := range value {
			resolved, err := d.resolve(child, location, visiting)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil

	default:
		return node, nil
	}
}

func (d *dereferencer) resolveRef(ref, location string, visiting map[string]bool) (any, error) {
	targetLoc, pointer := splitRef(ref, location)

	key := targetLoc + "|" + pointer
	if visiting[key] {
		// Cycle: substitute the unexpanded pointer.
		return map[string]any{"$ref": ref}, nil
	}

	doc, err := d.load(targetLoc)
	if err != nil {
		return nil, err
	}
	target, err := walkPointer(doc, pointer)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", ref, err)
	}

	visiting[key] = true
	resolved, err := d.resolve(target, targetLoc, visiting)
	delete(visiting, key)
	return resolved, err
}

// splitRef separates a reference into its document location and JSON
// pointer, resolving relative external locations against the referring
// document.
func splitRef(ref, location string) (targetLoc, pointer string) {
	doc, frag, _ := strings.Cut(ref, "#")
	if doc == "" {
		return location, frag
	}
	return resolveLocation(location, doc), frag
}

// resolveLocation joins a possibly relative document location with the
// base it was referenced from. Handles both URLs and filesystem paths.
func resolveLocation(base, target string) string {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return target
	}
	if strings.HasPrefix(base, "http://") || strings.HasPrefix(base, "https://") {
		baseURL, err := url.Parse(base)
		if err != nil {
			return target
		}
		targetURL, err := url.Parse(target)
		if err != nil {
			return target
		}
		return baseURL.ResolveReference(targetURL).String()
	}
	if filepath.IsAbs(target) {
		return target
	}
	return filepath.Join(filepath.Dir(base), target)
}

// walkPointer follows a JSON pointer fragment ("/components/schemas/Pet")
// through a document.
func walkPointer(doc any, pointer string) (any, error) {
	if pointer == "" {
		return doc, nil
	}

	node := doc
	for _, segment := range strings.Split(strings.TrimPrefix(pointer, "/"), "/") {
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")

		mapping, ok := node.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("pointer segment %q: not a mapping", segment)
		}
		node, ok = mapping[segment]
		if !ok {
			return nil, fmt.Errorf("pointer segment %q: not found", segment)
		}
	}
	return node, nil
}
