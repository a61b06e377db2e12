package archivegen

// SiteData is the site-wide part of a render payload.
type SiteData struct {
	Name        string
	URL         string
	Description string
	Author      string
	Params      map[string]any
}

// PageData is the structured view of a page handed to templates.
type PageData struct {
	Layout          string
	Type            string
	Title           string
	Category        string
	URL             string
	ContentTemplate string
	Posts           []Post
	Params          map[string]any
}

// PagerData describes pagination state. Archive pages are never split, so
// they always report a single page holding every post.
type PagerData struct {
	Page         int
	PerPage      int
	TotalPages   int
	TotalPosts   int
	PreviousPath string
	NextPath     string
}

// Payload is everything a layout can see while rendering one page.
type Payload struct {
	Site      SiteData
	Page      PageData
	Paginator PagerData
}

// NewSitePayload builds the ambient payload shared by every page of a build.
func NewSitePayload(cfg SiteConfig, params map[string]any) Payload {
	return Payload{Site: SiteData{
		Name:        cfg.Name,
		URL:         cfg.URL,
		Description: cfg.Description,
		Author:      cfg.Author,
		Params:      params,
	}}
}

// Merge overlays local onto p and returns the result. Non-zero fields of
// local win; Params maps are merged key by key, recursing into nested maps.
// Neither input is modified.
func (p Payload) Merge(local Payload) Payload {
	return Payload{
		Site:      p.Site.merge(local.Site),
		Page:      p.Page.merge(local.Page),
		Paginator: p.Paginator.merge(local.Paginator),
	}
}

func (s SiteData) merge(o SiteData) SiteData {
	s.Name = pick(s.Name, o.Name)
	s.URL = pick(s.URL, o.URL)
	s.Description = pick(s.Description, o.Description)
	s.Author = pick(s.Author, o.Author)
	s.Params = mergeParams(s.Params, o.Params)
	return s
}

func (d PageData) merge(o PageData) PageData {
	d.Layout = pick(d.Layout, o.Layout)
	d.Type = pick(d.Type, o.Type)
	d.Title = pick(d.Title, o.Title)
	d.Category = pick(d.Category, o.Category)
	d.URL = pick(d.URL, o.URL)
	d.ContentTemplate = pick(d.ContentTemplate, o.ContentTemplate)
	if o.Posts != nil {
		d.Posts = o.Posts
	}
	d.Params = mergeParams(d.Params, o.Params)
	return d
}

func (g PagerData) merge(o PagerData) PagerData {
	if o != (PagerData{}) {
		return o
	}
	return g
}

func pick[T comparable](base, over T) T {
	var zero T
	if over != zero {
		return over
	}
	return base
}

// mergeParams returns a new map holding base overlaid with over.
func mergeParams(base, over map[string]any) map[string]any {
	if base == nil && over == nil {
		return nil
	}
	out := make(map[string]any, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		bm, bok := out[k].(map[string]any)
		om, ook := v.(map[string]any)
		if bok && ook {
			out[k] = mergeParams(bm, om)
			continue
		}
		out[k] = v
	}
	return out
}
