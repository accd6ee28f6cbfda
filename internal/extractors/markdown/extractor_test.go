package markdown

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, root, path, content string) {
	t.Helper()
	full := filepath.Join(root, path)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o600))
}

func TestExtract_OneChunkPerHeading(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "guide.md", `# First

Intro paragraph.

## Second

More detail.

## Third

Final words.
`)

	e := New(root, "https://docs.example.com")
	records, err := e.Extract(context.Background(), "guide.md")
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "<h3>First</h3><p>Intro paragraph.</p>", records[0].HTML)
	assert.Equal(t, "<h3>Second</h3><p>More detail.</p>", records[1].HTML)
	assert.Equal(t, "<h3>Third</h3><p>Final words.</p>", records[2].HTML)

	for _, r := range records {
		assert.Equal(t, "https://docs.example.com/guide", r.Link)
		assert.Equal(t, []string{"guide"}, r.TagSet)
		assert.Equal(t, []string{"guide.md"}, r.GroupTrackingIDs)
		assert.True(t, r.ConvertHTMLToText)
	}
}

func TestExtract_Deterministic(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "page.md", "# A\n\none\n\n# B\n\ntwo\n")

	e := New(root, "https://x")
	first, err := e.Extract(context.Background(), "page.md")
	require.NoError(t, err)
	second, err := e.Extract(context.Background(), "page.md")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExtract_FrontmatterSlugDrivesLinkAndTags(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "nested/page.mdx", `---
title: Widgets
subtitle: All about widgets
slug: foo/bar
---

## Overview

Widgets are great.
`)

	e := New(root, "https://x")
	records, err := e.Extract(context.Background(), "nested/page.mdx")
	require.NoError(t, err)
	require.NotEmpty(t, records)

	for _, r := range records {
		assert.Equal(t, "https://x/foo/bar", r.Link)
		assert.Equal(t, []string{"foo", "bar"}, r.TagSet)
	}

	// Synthetic title and subtitle headings lead the chunk sequence.
	assert.Equal(t, "<h3>Widgets</h3><p>All about widgets</p>", records[0].HTML)
	assert.Equal(t, "Widgets", records[0].Metadata["title"])
	assert.Equal(t, "All about widgets", records[0].Metadata["description"])
}

func TestExtract_BoostPhraseJoinsTitleSubtitleHeading(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "boost.md", `---
title: Guide
subtitle: Deep dive
---

## Setup

Steps here.
`)

	e := New(root, "https://x")
	records, err := e.Extract(context.Background(), "boost.md")
	require.NoError(t, err)
	require.NotEmpty(t, records)

	last := records[len(records)-1]
	require.NotNil(t, last.SemanticBoost)
	require.NotNil(t, last.FulltextBoost)
	assert.Equal(t, "Guide Deep dive Setup", last.SemanticBoost.Phrase)
	assert.InDelta(t, 0.3, last.SemanticBoost.DistanceFactor, 0.0001)
	assert.InDelta(t, 1.3, last.FulltextBoost.BoostFactor, 0.0001)
}

func TestExtract_NoFrontmatterBoostIsHeadingOnly(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "plain.md", "# Only Heading\n\nbody\n")

	e := New(root, "https://x")
	records, err := e.Extract(context.Background(), "plain.md")
	require.NoError(t, err)
	require.Len(t, records, 1)

	require.NotNil(t, records[0].SemanticBoost)
	assert.Equal(t, "Only Heading", records[0].SemanticBoost.Phrase)
}

func TestExtract_MissingFileReturnsErrorAndNoChunks(t *testing.T) {
	e := New(t.TempDir(), "https://x")

	records, err := e.Extract(context.Background(), "absent.md")
	assert.Error(t, err)
	assert.Empty(t, records)
}

func TestExtract_MetadataShape(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "api/usage.md", "# Usage\n\nCall the API.\n")

	e := New(root, "https://docs.example.com")
	records, err := e.Extract(context.Background(), "api/usage.md")
	require.NoError(t, err)
	require.Len(t, records, 1)

	md := records[0].Metadata
	assert.Equal(t, "https://docs.example.com/api/usage", md["url"])
	assert.Equal(t, []string{"api", "usage"}, md["hierarchy"])
	assert.Equal(t, "Usage", md["heading"])
	assert.NotContains(t, md, "title")
	assert.NotContains(t, md, "description")
}
