package content

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/archivegen"
)

func writePost(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestParsePostFrontMatter(t *testing.T) {
	src := `---
title: "Hello World"
date: 2024-03-05 10:00:00 +0000
categories: [tech, life]
description: First post
image:
  feature: hello.jpg
  credit: Ann
  creditlink: https://example.com/ann
---
Body **text**.
`
	p, ok, err := ParsePost("2024-03-01-hello-world.md", []byte(src))
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "Hello World", p.Title)
	assert.Equal(t, "2024-03-05", p.Date)
	assert.Equal(t, "hello-world", p.Slug)
	assert.Equal(t, "/blog/hello-world/", p.URL)
	assert.Equal(t, []string{"tech", "life"}, p.Categories)
	assert.Equal(t, "First post", p.Description)
	assert.Equal(t, "Body **text**.", strings.TrimSpace(p.Content))
	assert.Equal(t, &archivegen.FeatureImage{Feature: "hello.jpg", Credit: "Ann", CreditLink: "https://example.com/ann"}, p.Image)
}

func TestParsePostFilenameDate(t *testing.T) {
	p, ok, err := ParsePost("2023-12-24-Xmas Notes.md", []byte("---\ntitle: Xmas\n---\nhi\n"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2023-12-24", p.Date)
	assert.Equal(t, "xmas-notes", p.Slug)
	assert.Nil(t, p.Categories)
	assert.Nil(t, p.Image)
}

func TestParsePostCategoryForms(t *testing.T) {
	p, _, err := ParsePost("a.md", []byte("---\ncategories: tech life\n---\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"tech", "life"}, p.Categories)

	p, _, err = ParsePost("b.md", []byte("---\ncategory: Machine Learning\n---\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Machine Learning"}, p.Categories)

	p, _, err = ParsePost("c.md", []byte("---\ncategories:\n  - 2024\n  - go\n---\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2024", "go"}, p.Categories)
}

func TestParsePostPermalinkAndSlug(t *testing.T) {
	p, _, err := ParsePost("x.md", []byte("---\nslug: Custom Slug\npermalink: /posts/custom/\n---\n"))
	require.NoError(t, err)
	assert.Equal(t, "custom-slug", p.Slug)
	assert.Equal(t, "/posts/custom/", p.URL)
}

func TestParsePostDraft(t *testing.T) {
	_, ok, err := ParsePost("d.md", []byte("---\ntitle: Draft\npublished: false\n---\n"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParsePostWithoutFrontMatter(t *testing.T) {
	p, ok, err := ParsePost("plain.md", []byte("just text\n"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "plain", p.Title)
	assert.Equal(t, "just text", strings.TrimSpace(p.Content))
}

func TestDirListPosts(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "2024-01-01-a.md", "---\ntitle: A\ncategories: [tech]\n---\n")
	writePost(t, dir, "2024-02-01-b.md", "---\ntitle: B\ncategories: [tech, life]\n---\n")
	writePost(t, dir, "nested/2024-02-01-c.md", "---\ntitle: C\n---\n")
	writePost(t, dir, "2025-01-01-draft.md", "---\ntitle: D\npublished: false\n---\n")
	writePost(t, dir, "notes.txt", "ignored")

	posts, err := NewDir(dir).ListPosts(context.Background())
	require.NoError(t, err)

	var got []string
	for _, p := range posts {
		got = append(got, p.Title)
	}
	assert.Equal(t, []string{"B", "C", "A"}, got)
}

func TestDirListPostsMissingRoot(t *testing.T) {
	_, err := NewDir(filepath.Join(t.TempDir(), "nope")).ListPosts(context.Background())
	assert.Error(t, err)
}

func TestDirFeedsGenerator(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "2024-01-02-a.md", "---\ntitle: A\ncategories: [tech]\n---\n")
	writePost(t, dir, "2024-01-01-b.md", "---\ntitle: B\ncategories: [tech, life]\n---\n")

	posts, err := NewDir(dir).ListPosts(context.Background())
	require.NoError(t, err)
	pages := archivegen.NewGenerator(archivegen.ArchiveConfig{}, nil).Generate(posts)
	require.Len(t, pages, 2)
	assert.Equal(t, "/tech/index.html", pages[0].OutputPath(""))
	assert.Equal(t, "/life/index.html", pages[1].OutputPath(""))
}
