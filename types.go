package archivegen

// Post is a published blog post as seen by the archive generator.
// Posts are owned by the post source and never modified here.
type Post struct {
	Slug        string
	Title       string
	URL         string // site-relative, e.g. "/blog/hello-world/"
	Date        string // YYYY-MM-DD
	Categories  []string
	Description string
	Content     string // markdown
	Image       *FeatureImage
}

// FeatureImage is the optional lead image of a post.
type FeatureImage struct {
	Feature    string // file name under the site's images dir
	Credit     string
	CreditLink string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}
