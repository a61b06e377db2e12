// Package views provides the default templ components for category archive
// pages. Sites that want their own markup register different components
// under the same names.
package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/archivegen"
)

// Register installs the default archive layout and content template.
func Register(t *archivegen.Templates) {
	t.AddLayout(archivegen.DefaultArchiveLayout, ArchiveLayout)
	t.AddContent(archivegen.DefaultContentTemplate, ArchiveContent)
}

// ArchiveLayout wraps archive content in a complete HTML document.
func ArchiveLayout(p archivegen.Payload, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		meta := archivegen.PageMeta{
			Title:       p.Page.Title + " | " + p.Site.Name,
			Description: p.Site.Description,
			URL:         siteLink(p.Site.URL, p.Page.URL),
			OGType:      "website",
		}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(meta.Title)
		h.raw(`</title>`)
		if meta.Description != "" {
			h.raw(`<meta name="description" content="`)
			h.text(meta.Description)
			h.raw(`">`)
		}
		h.raw(`<link rel="canonical" href="`)
		h.text(meta.URL)
		h.raw(`"><meta property="og:title" content="`)
		h.text(meta.Title)
		h.raw(`"><meta property="og:type" content="`)
		h.text(meta.OGType)
		h.raw(`"><meta property="og:url" content="`)
		h.text(meta.URL)
		h.raw(`"><link rel="alternate" type="application/rss+xml" href="`)
		h.text(siteLink(p.Site.URL, p.Page.URL+"feed.xml"))
		h.raw(`"><script type="application/ld+json">`,
			archivegen.CollectionPageJsonLD(p.Page, p.Site),
			`</script></head><body><main>`)
		if h.err != nil {
			return h.err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		h.raw(`</main></body></html>`)
		return h.err
	})
}

// ArchiveContent lists the archive's posts under the lead post's feature
// image and the author bio.
func ArchiveContent(p archivegen.Payload) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		if len(p.Page.Posts) > 0 {
			featureImage(h, p.Site, p.Page.Posts[0])
		}
		authorBio(h, p.Site)

		h.raw(`<div id="index" itemprop="mainContentOfPage" itemscope itemtype="http://schema.org/Blog">`)
		h.raw(`<h1 itemprop="name">Archive for `)
		h.text(p.Page.Category)
		h.raw(`</h1>`)
		for _, post := range p.Page.Posts {
			h.raw(`<article itemscope itemtype="http://schema.org/BlogPosting" itemprop="blogPost">`,
				`<h2 itemprop="headline"><a href="`)
			h.text(siteLink(p.Site.URL, post.URL))
			h.raw(`" rel="bookmark" title="`)
			h.text(post.Title)
			h.raw(`">`)
			h.text(post.Title)
			h.raw(`</a></h2>`)
			if len(post.Categories) > 0 {
				h.raw(`<meta itemprop="keywords" content="`)
				h.text(archivegen.JoinCategories(post.Categories))
				h.raw(`">`)
			}
			h.raw(`<p itemprop="text">`)
			h.text(archivegen.Excerpt(post))
			h.raw(`</p></article>`)
		}
		h.raw(`</div>`)
		return h.err
	})
}

func featureImage(h *htmlWriter, site archivegen.SiteData, post archivegen.Post) {
	img := post.Image
	if img == nil || img.Feature == "" {
		return
	}
	h.raw(`<div class="image-wrap"><img src="`)
	h.text(imageURL(site.URL, img.Feature))
	h.raw(`" alt="`)
	h.text(post.Title + " feature image")
	h.raw(`" itemprop="primaryImageOfPage">`)
	if img.Credit != "" {
		h.raw(`<span class="image-credit">Photo Credit: <a href="`)
		h.text(string(templ.URL(img.CreditLink)))
		h.raw(`">`)
		h.text(img.Credit)
		h.raw(`</a></span>`)
	}
	h.raw(`</div>`)
}

func authorBio(h *htmlWriter, site archivegen.SiteData) {
	if site.Author == "" {
		return
	}
	h.raw(`<div class="article-author-side"><h3 class="author-name">`)
	h.text(site.Author)
	h.raw(`</h3>`)
	if site.Description != "" {
		h.raw(`<p>`)
		h.text(site.Description)
		h.raw(`</p>`)
	}
	h.raw(`</div>`)
}
