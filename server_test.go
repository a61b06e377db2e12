package archivegen

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	posts []Post
	calls atomic.Int32
}

func (s *countingSource) ListPosts(context.Context) ([]Post, error) {
	s.calls.Add(1)
	return s.posts, nil
}

func newTestApp(t *testing.T, src PostSource, cfg SiteConfig) *App {
	t.Helper()
	if cfg.Destination == "" {
		cfg.Destination = t.TempDir()
	}
	return NewApp(cfg, testTemplates(), src, WithLogger(quietLogger()), WithCacheTTL(time.Minute))
}

func get(a *App, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

var serverPosts = []Post{
	{Slug: "a", Title: "A", URL: "/blog/a/", Date: "2024-01-02", Categories: []string{"tech"}},
	{Slug: "b", Title: "B", URL: "/blog/b/", Date: "2024-01-01", Categories: []string{"tech", "Machine Learning"}},
}

func TestHandleArchive(t *testing.T) {
	a := newTestApp(t, &countingSource{posts: serverPosts}, SiteConfig{Name: "Blog"})

	rec := get(a, "/tech/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<Blog|Category archive for tech|archive|2>[A][B]</>", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}

func TestHandleArchiveEscapedCategory(t *testing.T) {
	a := newTestApp(t, &countingSource{posts: serverPosts}, SiteConfig{Name: "Blog"})

	rec := get(a, "/Machine%20Learning/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Category archive for Machine Learning")
}

func TestHandleArchiveUnderBasePath(t *testing.T) {
	cfg := SiteConfig{Name: "Blog", CategoryArchive: ArchiveConfig{Path: "categories"}}
	a := newTestApp(t, &countingSource{posts: serverPosts}, cfg)

	assert.Equal(t, http.StatusOK, get(a, "/categories/tech/").Code)
	assert.Equal(t, http.StatusNotFound, get(a, "/categories/nope/").Code)
}

func TestHandleArchiveNotFound(t *testing.T) {
	a := newTestApp(t, &countingSource{posts: serverPosts}, SiteConfig{})
	assert.Equal(t, http.StatusNotFound, get(a, "/missing/").Code)
}

func TestHandleArchiveRenderError(t *testing.T) {
	cfg := SiteConfig{CategoryArchive: ArchiveConfig{Layout: "absent"}}
	a := newTestApp(t, &countingSource{posts: serverPosts}, cfg)

	rec := get(a, "/tech/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "layout not found")
}

func TestHandleFeed(t *testing.T) {
	a := newTestApp(t, &countingSource{posts: serverPosts}, SiteConfig{Name: "Blog", URL: "https://example.com"})

	rec := get(a, "/tech/feed.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/rss+xml")
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Blog: tech</title>")
	assert.Contains(t, body, "<link>https://example.com/blog/a/</link>")
}

func TestHandleSitemap(t *testing.T) {
	a := newTestApp(t, &countingSource{posts: serverPosts}, SiteConfig{URL: "https://example.com"})

	rec := get(a, "/sitemap.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<loc>https://example.com/tech/</loc>")
	assert.Contains(t, rec.Body.String(), "<loc>https://example.com/Machine%20Learning/</loc>")
}

func TestStaticFallback(t *testing.T) {
	dest := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dest, "about.html"), []byte("about"), 0o644))
	a := newTestApp(t, &countingSource{posts: serverPosts}, SiteConfig{Destination: dest})

	rec := get(a, "/about.html")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "about", rec.Body.String())
}

func TestArchiveCacheReusesPages(t *testing.T) {
	src := &countingSource{posts: serverPosts}
	a := newTestApp(t, src, SiteConfig{})

	get(a, "/tech/")
	get(a, "/tech/")
	get(a, "/sitemap.xml")
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestArchiveCacheExpires(t *testing.T) {
	src := &countingSource{posts: serverPosts}
	c := NewArchiveCache(src, NewGenerator(ArchiveConfig{}, quietLogger()), time.Millisecond)
	ctx := context.Background()

	_, err := c.Pages(ctx)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = c.Page(ctx, "tech")
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.calls.Load())

	_, err = c.Page(ctx, "unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}
