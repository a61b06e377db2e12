package archivegen

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// ExcerptLength is the maximum length of a generated excerpt, ellipsis included.
const ExcerptLength = 120

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Excerpt returns the post's description, or else its content rendered to
// plain text with newlines removed and truncated to ExcerptLength.
func Excerpt(p Post) string {
	if p.Description != "" {
		return p.Description
	}
	return Truncate(stripNewlines(PlainText(p.Content)), ExcerptLength)
}

// PlainText renders markdown to HTML and returns the text content.
func PlainText(markdown string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return markdown
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		return markdown
	}
	return strings.TrimSpace(doc.Text())
}

func stripNewlines(s string) string {
	return strings.NewReplacer("\r\n", "", "\n", "", "\r", "").Replace(s)
}

// Truncate shortens s to at most n runes, ending in "..." when cut.
func Truncate(s string, n int) string {
	const ellipsis = "..."
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	keep := n - len(ellipsis)
	if keep < 0 {
		keep = 0
	}
	return string(r[:keep]) + ellipsis
}
