package views

import (
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/archivegen"
)

// htmlWriter writes markup and remembers the first error.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(parts ...string) {
	for _, s := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, s)
	}
}

// text writes s HTML-escaped.
func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// siteLink joins the site URL with a site-relative path, escaping the path.
func siteLink(siteURL, p string) string {
	return strings.TrimRight(siteURL, "/") + archivegen.EscapePath(p)
}

// imageURL is where the build copies a post's feature image.
func imageURL(siteURL, feature string) string {
	return siteLink(siteURL, "/images/"+strings.TrimLeft(feature, "/"))
}
