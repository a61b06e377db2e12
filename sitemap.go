package archivegen

import (
	"bytes"
	"encoding/xml"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// RenderSitemap returns a sitemap listing every archive page. lastmod is
// the date of the newest post in the archive.
func RenderSitemap(cfg SiteConfig, pages []*ArchivePage) ([]byte, error) {
	urls := make([]sitemapURL, 0, len(pages))
	for _, p := range pages {
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(cfg.URL, p.URL()),
			LastMod: latestDate(p.Posts),
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(sitemap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func latestDate(posts []Post) string {
	latest := ""
	for _, p := range posts {
		if p.Date > latest {
			latest = p.Date
		}
	}
	return latest
}
