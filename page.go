package archivegen

import (
	"context"
	"io"
	"path"
)

// ArchivePage is one category archive to be emitted as
// <dest>/<base>/<category>/index.html.
type ArchivePage struct {
	Category        string
	BaseDir         string
	Layout          string
	Title           string
	ContentTemplate string
	Posts           []Post

	dirName string
}

// NewArchivePage builds the archive page for one category group. The
// category is used as the directory name after CategoryDirName escaping.
func NewArchivePage(cfg ArchiveConfig, baseDir, category string, posts []Post) *ArchivePage {
	layout := cfg.Layout
	if layout == "" {
		layout = DefaultArchiveLayout
	}
	return &ArchivePage{
		Category:        category,
		BaseDir:         baseDir,
		Layout:          layout,
		Title:           "Category archive for " + category,
		ContentTemplate: DefaultContentTemplate,
		Posts:           posts,
		dirName:         CategoryDirName(category),
	}
}

// DirName is the escaped directory name the page is written under.
func (p *ArchivePage) DirName() string {
	return p.dirName
}

// OutputPath returns the absolute slash-separated path of the page's
// index.html under dest.
func (p *ArchivePage) OutputPath(dest string) string {
	return path.Join("/", dest, p.BaseDir, p.dirName, "index.html")
}

// URL returns the site-relative URL path of the page, unescaped, with a
// trailing slash. Use EscapePath before placing it in markup.
func (p *ArchivePage) URL() string {
	return path.Join("/", p.BaseDir, p.dirName) + "/"
}

// Pager returns pagination data for the page. Archives are never split.
func (p *ArchivePage) Pager() PagerData {
	return PagerData{
		Page:       1,
		PerPage:    len(p.Posts),
		TotalPages: 1,
		TotalPosts: len(p.Posts),
	}
}

// TemplateData exports the page for templates and other consumers.
func (p *ArchivePage) TemplateData() PageData {
	return PageData{
		Layout:          p.Layout,
		Type:            "archive",
		Title:           p.Title,
		Category:        p.Category,
		URL:             p.URL(),
		ContentTemplate: p.ContentTemplate,
		Posts:           p.Posts,
	}
}

// Render overlays the page's own payload onto site and renders it through
// the page's layout. Page-local values win over site values.
func (p *ArchivePage) Render(ctx context.Context, w io.Writer, t *Templates, site Payload) error {
	payload := site.Merge(Payload{
		Page:      p.TemplateData(),
		Paginator: p.Pager(),
	})
	if err := t.DoLayout(ctx, w, payload, p.Layout); err != nil {
		return &RenderError{Page: p.URL(), Layout: p.Layout, Cause: err}
	}
	return nil
}
