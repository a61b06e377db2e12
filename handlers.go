package archivegen

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

// lookupPage finds the archive for the :category param. Echo hands over the
// decoded path when the raw path needs no escaping, so both forms are tried.
func (a *App) lookupPage(c echo.Context) (*ArchivePage, error) {
	raw := c.Param("category")
	p, err := a.Cache.Page(c.Request().Context(), raw)
	if !errors.Is(err, ErrNotFound) {
		return p, err
	}
	if dec, uerr := url.PathUnescape(raw); uerr == nil && dec != raw {
		return a.Cache.Page(c.Request().Context(), dec)
	}
	return nil, err
}

func (a *App) handleArchive(c echo.Context) error {
	page, err := a.lookupPage(c)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	var buf bytes.Buffer
	payload := NewSitePayload(a.Config, a.params)
	if err := page.Render(c.Request().Context(), &buf, a.Templates, payload); err != nil {
		return err
	}
	return RenderHTML(c, http.StatusOK, buf.Bytes())
}

func (a *App) handleFeed(c echo.Context) error {
	page, err := a.lookupPage(c)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	feed, err := RenderFeed(a.Config, page)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", feed)
}

func (a *App) handleSitemap(c echo.Context) error {
	pages, err := a.Cache.Pages(c.Request().Context())
	if err != nil {
		return err
	}
	sitemap, err := RenderSitemap(a.Config, pages)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/xml; charset=utf-8", sitemap)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var re *RenderError
	if errors.As(err, &re) {
		c.Logger().Errorf("render error: %v", err)
		_ = c.String(http.StatusInternalServerError, re.Error())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
