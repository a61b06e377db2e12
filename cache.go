package archivegen

import (
	"context"
	"sync"
	"time"
)

// ArchiveCache keeps the archive pages generated from a PostSource in
// memory for a TTL.
type ArchiveCache struct {
	mu      sync.RWMutex
	pages   []*ArchivePage
	byDir   map[string]*ArchivePage
	fetched time.Time
	ttl     time.Duration
	source  PostSource
	gen     *Generator
}

// NewArchiveCache creates an ArchiveCache that regenerates pages with gen.
func NewArchiveCache(src PostSource, gen *Generator, ttl time.Duration) *ArchiveCache {
	return &ArchiveCache{source: src, gen: gen, ttl: ttl}
}

func (c *ArchiveCache) valid() bool {
	return c.pages != nil && time.Since(c.fetched) < c.ttl
}

func (c *ArchiveCache) load(ctx context.Context) error {
	if c.valid() {
		return nil
	}
	posts, err := c.source.ListPosts(ctx)
	if err != nil {
		return err
	}
	pages := c.gen.Generate(posts)
	byDir := make(map[string]*ArchivePage, len(pages))
	for _, p := range pages {
		byDir[p.DirName()] = p
	}
	c.pages = pages
	c.byDir = byDir
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached pages after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *ArchiveCache) ensureLoaded(ctx context.Context) ([]*ArchivePage, map[string]*ArchivePage, error) {
	c.mu.RLock()
	if c.valid() {
		pages, byDir := c.pages, c.byDir
		c.mu.RUnlock()
		return pages, byDir, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return nil, nil, err
	}
	return c.pages, c.byDir, nil
}

// Pages returns every archive page in first-seen category order.
func (c *ArchiveCache) Pages(ctx context.Context) ([]*ArchivePage, error) {
	pages, _, err := c.ensureLoaded(ctx)
	return pages, err
}

// Page returns the archive page written under dirName.
func (c *ArchiveCache) Page(ctx context.Context, dirName string) (*ArchivePage, error) {
	_, byDir, err := c.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}
	p, ok := byDir[dirName]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}
