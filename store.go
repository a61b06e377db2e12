package archivegen

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound is returned when a requested post does not exist.
	ErrNotFound = sql.ErrNoRows
	// ErrInvalidCategory is returned when a category cannot be stored,
	// which is the case for names containing a comma.
	ErrInvalidCategory = errors.New("invalid category")
)

// Store wraps a SQLite database of posts. It is one of the post sources a
// site can be built from.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the preview server read while a build or import writes.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    url TEXT NOT NULL DEFAULT '',
    categories TEXT NOT NULL DEFAULT ',,',
    description TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL DEFAULT '',
    image_feature TEXT NOT NULL DEFAULT '',
    image_credit TEXT NOT NULL DEFAULT '',
    image_credit_link TEXT NOT NULL DEFAULT '',
    published INTEGER NOT NULL DEFAULT 1
);
`)
	return err
}

const postColumns = `slug, title, date, url, categories, description, content, image_feature, image_credit, image_credit_link`

// ListPosts returns all published posts ordered by date descending, then slug.
func (s *Store) ListPosts(ctx context.Context) ([]Post, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+postColumns+` FROM posts WHERE published = 1 ORDER BY date DESC, slug`)
	if err != nil {
		return nil, err
	}
	return scanPosts(rows)
}

// GetPost returns a single published post by slug.
func (s *Store) GetPost(ctx context.Context, slug string) (Post, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+postColumns+` FROM posts WHERE slug = ? AND published = 1`, slug)
	if err != nil {
		return Post{}, err
	}
	posts, err := scanPosts(rows)
	if err != nil {
		return Post{}, err
	}
	if len(posts) == 0 {
		return Post{}, ErrNotFound
	}
	return posts[0], nil
}

// SavePost upserts a post. Categories keep their case; surrounding
// whitespace is trimmed and empty entries dropped. A category containing a
// comma is rejected with ErrInvalidCategory.
func (s *Store) SavePost(ctx context.Context, p Post, published bool) error {
	cats := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if strings.Contains(c, ",") {
			return fmt.Errorf("post %s: %w %q: commas are not allowed", p.Slug, ErrInvalidCategory, c)
		}
		cats = append(cats, c)
	}
	var feature, credit, creditLink string
	if p.Image != nil {
		feature, credit, creditLink = p.Image.Feature, p.Image.Credit, p.Image.CreditLink
	}
	pub := 0
	if published {
		pub = 1
	}
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO posts (`+postColumns+`, published) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Slug, p.Title, p.Date, p.URL, ","+strings.Join(cats, ",")+",", p.Description, p.Content,
		feature, credit, creditLink, pub)
	return err
}

// DeletePost removes a post by slug.
func (s *Store) DeletePost(ctx context.Context, slug string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE slug = ?`, slug)
	return err
}

// SyncResult counts the changes made by Sync.
type SyncResult struct {
	Added   int
	Updated int
	Deleted int
}

// Sync makes the published posts in the store match posts: each post is
// saved as published and any published post whose slug is not in posts is
// deleted. Drafts saved through SavePost are left alone.
func (s *Store) Sync(ctx context.Context, posts []Post) (SyncResult, error) {
	var res SyncResult
	keep := make(map[string]struct{}, len(posts))
	for _, p := range posts {
		_, err := s.GetPost(ctx, p.Slug)
		switch {
		case errors.Is(err, ErrNotFound):
			res.Added++
		case err != nil:
			return res, err
		default:
			res.Updated++
		}
		if err := s.SavePost(ctx, p, true); err != nil {
			return res, err
		}
		keep[p.Slug] = struct{}{}
	}

	stored, err := s.ListPosts(ctx)
	if err != nil {
		return res, err
	}
	for _, p := range stored {
		if _, ok := keep[p.Slug]; ok {
			continue
		}
		if err := s.DeletePost(ctx, p.Slug); err != nil {
			return res, fmt.Errorf("delete %s: %w", p.Slug, err)
		}
		res.Deleted++
	}
	return res, nil
}

func scanPosts(rows *sql.Rows) ([]Post, error) {
	defer rows.Close()
	var posts []Post
	for rows.Next() {
		var p Post
		var cats, feature, credit, creditLink string
		if err := rows.Scan(&p.Slug, &p.Title, &p.Date, &p.URL, &cats, &p.Description, &p.Content,
			&feature, &credit, &creditLink); err != nil {
			return nil, err
		}
		p.Categories = ParseCategories(cats)
		if p.URL == "" {
			p.URL = PostURL(p.Slug)
		}
		if feature != "" {
			p.Image = &FeatureImage{Feature: feature, Credit: credit, CreditLink: creditLink}
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// PostURL is the default URL of a post with the given slug.
func PostURL(slug string) string {
	return "/blog/" + slug + "/"
}

// ParseCategories splits a comma-delimited category string (e.g. ",go,web,")
// into a slice, preserving order and case.
func ParseCategories(s string) []string {
	s = strings.Trim(s, ",")
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
