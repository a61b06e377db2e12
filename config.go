package archivegen

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	// DefaultArchiveLayout is used when category_archive.layout is not set.
	DefaultArchiveLayout = "category_archive"
	// DefaultContentTemplate is the content template rendered inside the archive layout.
	DefaultContentTemplate = "category_archive_content"
)

// ArchiveConfig is the category_archive section of the site configuration.
type ArchiveConfig struct {
	Path   string `mapstructure:"path" yaml:"path"`     // base dir under the destination (default "")
	Layout string `mapstructure:"layout" yaml:"layout"` // layout name (default "category_archive")
}

// SiteConfig holds all configuration for an archivegen site.
type SiteConfig struct {
	Name        string `mapstructure:"name" yaml:"name"`                                // Site name (default "Blog")
	URL         string `mapstructure:"url" yaml:"url" validate:"omitempty,url"`         // Canonical URL (default "http://localhost:4000")
	Description string `mapstructure:"description" yaml:"description"`                  // Site description for feeds and meta tags
	Author      string `mapstructure:"author" yaml:"author"`                            // Author name for the bio block and JSON-LD

	Destination  string `mapstructure:"destination" yaml:"destination" validate:"required"` // Output root (default "_site")
	ContentDir   string `mapstructure:"content_dir" yaml:"content_dir"`                     // Markdown posts (default "_posts")
	ImagesDir    string `mapstructure:"images_dir" yaml:"images_dir"`                       // Feature images (default "images")
	DatabasePath string `mapstructure:"database_path" yaml:"database_path"`                 // Optional SQLite post source

	Addr        string `mapstructure:"addr" yaml:"addr"`                               // Preview listen address (default ":4000")
	Concurrency int    `mapstructure:"concurrency" yaml:"concurrency" validate:"gte=1"` // Parallel file writes (default 4)

	CategoryArchive ArchiveConfig `mapstructure:"category_archive" yaml:"category_archive"`
}

// SetDefaults fills every unset field with its documented default.
func (c *SiteConfig) SetDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:4000"
	}
	if c.Destination == "" {
		c.Destination = "_site"
	}
	if c.ContentDir == "" {
		c.ContentDir = "_posts"
	}
	if c.ImagesDir == "" {
		c.ImagesDir = "images"
	}
	if c.Addr == "" {
		c.Addr = ":4000"
	}
	if c.Concurrency == 0 {
		c.Concurrency = 4
	}
	c.CategoryArchive.setDefaults()
}

func (c *ArchiveConfig) setDefaults() {
	if c.Layout == "" {
		c.Layout = DefaultArchiveLayout
	}
}

var validate = validator.New()

// Validate checks the config after defaults have been applied.
func (c SiteConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("archivegen: invalid config: %w", err)
	}
	return nil
}
