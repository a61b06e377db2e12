package archivegen

import (
	"bytes"
	"encoding/xml"
	"time"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	PubDate     string   `xml:"pubDate,omitempty"`
	GUID        string   `xml:"guid"`
	Categories  []string `xml:"category"`
}

// FeedPath returns the slash path of the category feed for page.
func FeedPath(page *ArchivePage) string {
	return page.URL() + "feed.xml"
}

// RenderFeed returns an RSS 2.0 document for one category archive.
func RenderFeed(cfg SiteConfig, page *ArchivePage) ([]byte, error) {
	base := cfg.URL
	items := make([]rssItem, 0, len(page.Posts))
	for _, p := range page.Posts {
		pubDate := ""
		if t, err := time.Parse("2006-01-02", p.Date); err == nil {
			pubDate = t.Format(time.RFC1123Z)
		}
		postURL := BuildURL(base, p.URL)
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: Excerpt(p),
			PubDate:     pubDate,
			GUID:        postURL,
			Categories:  p.Categories,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       cfg.Name + ": " + page.Category,
			Link:        BuildURL(base, page.URL()),
			Description: page.Title,
			Items:       items,
		},
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(feed); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
