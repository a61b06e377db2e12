package archivegen

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// App is the preview server. It renders category archives on request from
// a cached PostSource and serves the built destination for everything else.
type App struct {
	Config    SiteConfig
	Echo      *echo.Echo
	Templates *Templates
	Cache     *ArchiveCache
	Logger    *log.Logger

	cacheTTL  time.Duration
	staticDir string
	params    map[string]any
}

// Option configures additional App behavior.
type Option func(*App)

// WithCacheTTL sets how long generated archives are reused (default 5s).
func WithCacheTTL(ttl time.Duration) Option {
	return func(a *App) {
		a.cacheTTL = ttl
	}
}

// WithStaticDir sets the directory served for non-archive paths
// (default the configured destination).
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithLogger replaces the server logger.
func WithLogger(l *log.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}

// WithParams sets extra site-wide template data.
func WithParams(params map[string]any) Option {
	return func(a *App) {
		a.params = params
	}
}

// NewApp creates a preview server for cfg, rendering with tmpl from src.
func NewApp(cfg SiteConfig, tmpl *Templates, src PostSource, opts ...Option) *App {
	cfg.SetDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Templates: tmpl,
		Logger:    log.New("archivegen"),
		cacheTTL:  5 * time.Second,
		staticDir: cfg.Destination,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.Echo.HideBanner = true
	a.Echo.Logger = a.Logger
	a.Cache = NewArchiveCache(src, NewGenerator(cfg.CategoryArchive, a.Logger), a.cacheTTL)
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

func (a *App) archiveRoute() string {
	return path.Join("/", a.Config.CategoryArchive.Path, ":category") + "/"
}

func (a *App) setupRoutes() {
	e := a.Echo
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET(a.archiveRoute(), a.handleArchive)
	e.GET(a.archiveRoute()+"feed.xml", a.handleFeed)
	e.Static("/", a.staticDir)
}

// Start serves on the configured address until Shutdown is called.
func (a *App) Start() error {
	a.Logger.Infof("preview on %s (archives under %s)", a.Config.Addr, a.archiveRoute())
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("archivegen: serve: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}
