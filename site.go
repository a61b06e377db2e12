package archivegen

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

// PostSource supplies the posts of a site.
type PostSource interface {
	ListPosts(ctx context.Context) ([]Post, error)
}

// Site is one build of a site: its posts, the archive pages generated from
// them and the templates used to render those pages.
type Site struct {
	Config    SiteConfig
	Templates *Templates
	Source    PostSource
	Logger    *log.Logger
	Params    map[string]any // extra site-wide template data

	Posts []Post
	Pages []*ArchivePage
}

// NewSite creates a Site. cfg is defaulted in place.
func NewSite(cfg SiteConfig, tmpl *Templates, src PostSource, logger *log.Logger) *Site {
	cfg.SetDefaults()
	if logger == nil {
		logger = log.New("archivegen")
	}
	return &Site{Config: cfg, Templates: tmpl, Source: src, Logger: logger}
}

// Read loads posts from the site's source.
func (s *Site) Read(ctx context.Context) error {
	if s.Source == nil {
		return fmt.Errorf("archivegen: site has no post source")
	}
	posts, err := s.Source.ListPosts(ctx)
	if err != nil {
		return fmt.Errorf("read posts: %w", err)
	}
	s.Posts = posts
	return nil
}

// Generate creates the category archive pages for the site's posts and
// appends them to Pages. It returns the pages it added.
func (s *Site) Generate() []*ArchivePage {
	pages := NewGenerator(s.Config.CategoryArchive, s.Logger).Generate(s.Posts)
	s.Pages = append(s.Pages, pages...)
	return pages
}

// Payload returns the site-wide render payload.
func (s *Site) Payload() Payload {
	return NewSitePayload(s.Config, s.Params)
}

// RenderPage renders one page with the site payload.
func (s *Site) RenderPage(ctx context.Context, p *ArchivePage) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Render(ctx, &buf, s.Templates, s.Payload()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Render renders every page plus its feed, and the sitemap.
func (s *Site) Render(ctx context.Context) ([]File, error) {
	files := make([]File, 0, 2*len(s.Pages)+1)
	for _, p := range s.Pages {
		html, err := s.RenderPage(ctx, p)
		if err != nil {
			return nil, err
		}
		feed, err := RenderFeed(s.Config, p)
		if err != nil {
			return nil, fmt.Errorf("feed for %s: %w", p.URL(), err)
		}
		files = append(files,
			File{Path: p.OutputPath(""), Data: html},
			File{Path: FeedPath(p), Data: feed},
		)
	}
	sitemap, err := RenderSitemap(s.Config, s.Pages)
	if err != nil {
		return nil, fmt.Errorf("sitemap: %w", err)
	}
	files = append(files, File{Path: "/sitemap.xml", Data: sitemap})
	return files, nil
}

// BuildResult summarizes a finished build.
type BuildResult struct {
	ID     string
	Posts  int
	Pages  int
	Images int
	Files  int
}

// Build runs one full pass: read posts (unless already set), generate
// archive pages once, render them and write everything through w. Pages
// from an earlier Build are discarded first.
func (s *Site) Build(ctx context.Context, w *Writer) (BuildResult, error) {
	res := BuildResult{ID: uuid.NewString()}
	s.Logger.Infof("build %s: destination %s", res.ID, w.Dest)

	if s.Posts == nil {
		if err := s.Read(ctx); err != nil {
			return res, err
		}
	}
	s.Pages = nil
	pages := s.Generate()
	files, err := s.Render(ctx)
	if err != nil {
		return res, err
	}

	images := featureImageFiles(s.Config.ImagesDir, leadImages(pages),
		func(img Image) {
			if img.Resized {
				s.Logger.Infof("build %s: resized %s to %dx%d", res.ID, img.Filename, img.Width, img.Height)
				return
			}
			s.Logger.Debugf("build %s: copied %s (%dx%d)", res.ID, img.Filename, img.Width, img.Height)
		},
		func(name string, err error) {
			s.Logger.Warnf("build %s: skipping feature image %s: %v", res.ID, name, err)
		})
	files = append(files, images...)

	if err := w.WriteAll(ctx, files); err != nil {
		return res, fmt.Errorf("write output: %w", err)
	}

	res.Posts = len(s.Posts)
	res.Pages = len(pages)
	res.Images = len(images)
	res.Files = len(files)
	s.Logger.Infof("build %s: %d posts, %d archives, %d images, %d files",
		res.ID, res.Posts, res.Pages, res.Images, res.Files)
	return res, nil
}
