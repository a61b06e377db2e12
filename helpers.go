package archivegen

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"
)

// Slugify converts a title to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

var dirNameEscaper = strings.NewReplacer(
	"%", "%25",
	"/", "%2F",
	`\`, "%5C",
	"\x00", "%00",
)

// CategoryDirName turns a raw category name into a single safe path
// segment. Names free of separators, '%' and NUL pass through byte for
// byte; "", "." and ".." are escaped so they never resolve to the parent
// or current directory. Distinct names always map to distinct segments.
func CategoryDirName(category string) string {
	s := dirNameEscaper.Replace(category)
	switch s {
	case "":
		return "%"
	case ".":
		return "%2E"
	case "..":
		return "%2E%2E"
	}
	return s
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// EscapePath percent-encodes an unescaped slash-separated URL path,
// leaving the slashes intact.
func EscapePath(p string) string {
	return (&url.URL{Path: p}).EscapedPath()
}

// JoinCategories joins categories with ", ".
func JoinCategories(categories []string) string {
	return strings.Join(categories, ", ")
}

// CollectionPageJsonLD returns a JSON-LD string for an archive page as a
// schema.org CollectionPage listing its posts.
func CollectionPageJsonLD(page PageData, site SiteData) string {
	items := make([]map[string]interface{}, 0, len(page.Posts))
	for i, p := range page.Posts {
		items = append(items, map[string]interface{}{
			"@type":    "ListItem",
			"position": i + 1,
			"url":      BuildURL(site.URL, p.URL),
			"name":     p.Title,
		})
	}
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "CollectionPage",
		"name":     page.Title,
		"url":      BuildURL(site.URL, page.URL),
		"mainEntity": map[string]interface{}{
			"@type":           "ItemList",
			"itemListElement": items,
		},
	}
	if site.Name != "" {
		data["isPartOf"] = map[string]string{
			"@type": "WebSite",
			"name":  site.Name,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
