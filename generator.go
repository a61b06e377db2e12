package archivegen

import (
	"github.com/labstack/gommon/log"
)

// Generator turns a site's posts into category archive pages.
type Generator struct {
	Config ArchiveConfig
	Logger *log.Logger
}

// NewGenerator creates a Generator for the category_archive config section.
func NewGenerator(cfg ArchiveConfig, logger *log.Logger) *Generator {
	cfg.setDefaults()
	if logger == nil {
		logger = log.New("archivegen")
	}
	return &Generator{Config: cfg, Logger: logger}
}

// Generate groups posts by category and returns one page per category, in
// first-seen category order. The caller owns the returned pages.
func (g *Generator) Generate(posts []Post) []*ArchivePage {
	groups := GroupByCategory(posts)
	pages := make([]*ArchivePage, 0, groups.Len())
	groups.Each(func(category string, list []Post) {
		page := NewArchivePage(g.Config, g.Config.Path, category, list)
		if page.DirName() != category {
			g.Logger.Warnf("category %q written as directory %q", category, page.DirName())
		}
		g.Logger.Debugf("archive %s: %d posts", page.URL(), len(list))
		pages = append(pages, page)
	})
	return pages
}
