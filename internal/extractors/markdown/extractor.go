// Package markdown extracts chunk records from Markdown and MDX
// documentation pages. Each page is rendered to a hypertext tree whose
// top-level elements are grouped into heading/body sections; every
// section becomes one chunk record.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	xhtml "golang.org/x/net/html"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdex-cli/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.MarkdownExtractor = (*Extractor)(nil)

// Extractor turns one documentation file into chunk records.
type Extractor struct {
	root    string
	rootURL string
	md      goldmark.Markdown
}

// New creates an extractor reading documents below root and building
// absolute links from rootURL.
func New(root, rootURL string) *Extractor {
	return &Extractor{
		root:    root,
		rootURL: strings.TrimRight(rootURL, "/"),
		md:      goldmark.New(),
	}
}

// Extract reads, renders and chunks one document. The path is resolved
// relative to the content root. Read or parse failure returns an error
// and zero chunks; it never aborts the pipeline.
func (e *Extractor) Extract(_ context.Context, path string) ([]domain.ChunkRecord, error) {
	raw, err := os.ReadFile(filepath.Join(e.root, path))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSourceRead, err)
	}

	var fm domain.Frontmatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm)
	if err != nil {
		return nil, fmt.Errorf("%w: frontmatter: %w", domain.ErrSourceRead, err)
	}

	var rendered bytes.Buffer
	if err := e.md.Convert(body, &rendered); err != nil {
		return nil, fmt.Errorf("%w: render: %w", domain.ErrSourceRead, err)
	}

	// Synthetic headings participate in chunking exactly like document
	// headings: the title leads, the subtitle follows it.
	var page bytes.Buffer
	if fm.Title != "" {
		fmt.Fprintf(&page, "<h1>%s</h1>", html.EscapeString(fm.Title))
	}
	if fm.Subtitle != "" {
		fmt.Fprintf(&page, "<h2>%s</h2>", html.EscapeString(fm.Subtitle))
	}
	page.Write(rendered.Bytes())

	doc, err := xhtml.Parse(&page)
	if err != nil {
		return nil, fmt.Errorf("%w: parse html: %w", domain.ErrSourceRead, err)
	}

	pairs := sections(findBody(doc))
	records := make([]domain.ChunkRecord, 0, len(pairs))
	for _, pair := range pairs {
		records = append(records, e.buildRecord(path, fm, pair))
	}

	logger.Debug("Extracted %d chunks from %s", len(records), path)
	return records, nil
}

// buildRecord assembles one chunk record from a heading/body pair.
func (e *Extractor) buildRecord(path string, fm domain.Frontmatter, pair sectionPair) domain.ChunkRecord {
	page := fm.Slug
	if page == "" {
		page = strings.TrimSuffix(strings.TrimSuffix(path, ".mdx"), ".md")
	}
	link := e.rootURL + "/" + page
	tagSet := splitSegments(page)

	metadata := map[string]any{
		"url":       link,
		"hierarchy": tagSet,
		"heading":   pair.heading,
	}
	if fm.Title != "" {
		metadata["title"] = fm.Title
	}
	if fm.Subtitle != "" {
		metadata["description"] = fm.Subtitle
	}

	record := domain.ChunkRecord{
		HTML:              fmt.Sprintf("<h3>%s</h3><p>%s</p>", pair.heading, pair.body),
		Link:              link,
		TagSet:            tagSet,
		Metadata:          metadata,
		GroupTrackingIDs:  []string{path},
		ConvertHTMLToText: true,
	}
	record.WithBoosts(boostPhrase(fm, pair.heading))
	return record
}

// boostPhrase joins title, subtitle and heading, omitting absent parts.
func boostPhrase(fm domain.Frontmatter, heading string) string {
	parts := make([]string, 0, 3)
	for _, part := range []string{fm.Title, fm.Subtitle, heading} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " ")
}

// splitSegments splits a page path on "/", dropping empty segments.
func splitSegments(page string) []string {
	segments := make([]string, 0, 4)
	for _, segment := range strings.Split(page, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

// findBody locates the body element of a parsed document. The renderer
// always produces one; the document root is a safe fallback.
func findBody(doc *xhtml.Node) *xhtml.Node {
	var body *xhtml.Node
	var walk func(*xhtml.Node)
	walk = func(n *xhtml.Node) {
		if n.Type == xhtml.ElementNode && n.Data == "body" {
			body = n
			return
		}
		for child := n.FirstChild; child != nil && body == nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	if body == nil {
		return doc
	}
	return body
}
