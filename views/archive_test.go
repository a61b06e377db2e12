package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/archivegen"
)

func renderArchive(t *testing.T, cfg archivegen.SiteConfig, category string, posts []archivegen.Post) string {
	t.Helper()
	tmpl := archivegen.NewTemplates()
	Register(tmpl)
	page := archivegen.NewArchivePage(cfg.CategoryArchive, cfg.CategoryArchive.Path, category, posts)

	var buf bytes.Buffer
	require.NoError(t, page.Render(context.Background(), &buf, tmpl, archivegen.NewSitePayload(cfg, nil)))
	return buf.String()
}

func TestArchiveContent(t *testing.T) {
	cfg := archivegen.SiteConfig{Name: "Blog", URL: "https://example.com", Author: "Ann", Description: "Notes"}
	posts := []archivegen.Post{
		{Title: "First", URL: "/blog/first/", Description: "Lead post",
			Image: &archivegen.FeatureImage{Feature: "lead.jpg", Credit: "Bob", CreditLink: "https://example.com/bob"}},
		{Title: "Second", URL: "/blog/second/", Content: "Some *markdown* body."},
	}
	out := renderArchive(t, cfg, "tech", posts)

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>Category archive for tech | Blog</title>")
	assert.Contains(t, out, `<h1 itemprop="name">Archive for tech</h1>`)
	assert.Contains(t, out, `<img src="https://example.com/images/lead.jpg" alt="First feature image"`)
	assert.Contains(t, out, `Photo Credit: <a href="https://example.com/bob">Bob</a>`)
	assert.Contains(t, out, `<h3 class="author-name">Ann</h3>`)
	assert.Contains(t, out, `<a href="https://example.com/blog/first/" rel="bookmark" title="First">First</a>`)
	assert.Contains(t, out, `<p itemprop="text">Lead post</p>`)
	assert.Contains(t, out, `<p itemprop="text">Some markdown body.</p>`)
	assert.Contains(t, out, `<link rel="canonical" href="https://example.com/tech/">`)
	assert.Contains(t, out, `href="https://example.com/tech/feed.xml"`)
	assert.Contains(t, out, `"@type":"CollectionPage"`)
	assert.True(t, strings.Index(out, "First") < strings.Index(out, "Second"))
}

func TestArchiveContentEscapes(t *testing.T) {
	cfg := archivegen.SiteConfig{Name: "Blog", URL: "https://example.com"}
	posts := []archivegen.Post{{Title: `<script>alert(1)</script>`, URL: "/blog/x/", Description: "a & b"}}
	out := renderArchive(t, cfg, "<b>", posts)

	assert.NotContains(t, out, "<script>alert(1)</script>")
	assert.Contains(t, out, "Archive for &lt;b&gt;")
	assert.Contains(t, out, "a &amp; b")
}

func TestArchiveContentNoImageNoAuthor(t *testing.T) {
	cfg := archivegen.SiteConfig{Name: "Blog", URL: "https://example.com"}
	out := renderArchive(t, cfg, "life", []archivegen.Post{{Title: "Only", URL: "/blog/only/"}})

	assert.NotContains(t, out, "image-wrap")
	assert.NotContains(t, out, "article-author-side")
}

func TestArchiveLinksEscapeCategory(t *testing.T) {
	cfg := archivegen.SiteConfig{Name: "Blog", URL: "https://example.com", CategoryArchive: archivegen.ArchiveConfig{Path: "categories"}}
	out := renderArchive(t, cfg, "Machine Learning", nil)
	assert.Contains(t, out, `href="https://example.com/categories/Machine%20Learning/"`)
}

func TestUnsafeCreditLink(t *testing.T) {
	cfg := archivegen.SiteConfig{Name: "Blog", URL: "https://example.com"}
	posts := []archivegen.Post{{Title: "x", URL: "/x/",
		Image: &archivegen.FeatureImage{Feature: "x.jpg", Credit: "c", CreditLink: "javascript:alert(1)"}}}
	out := renderArchive(t, cfg, "tech", posts)
	assert.NotContains(t, out, "javascript:")
}
