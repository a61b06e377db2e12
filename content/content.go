// Package content reads markdown posts with YAML front matter from a
// directory tree and exposes them as an archivegen.PostSource.
package content

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/eringen/archivegen"
)

var reDatedName = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-(.+)$`)

type frontMatter struct {
	Title       string `yaml:"title"`
	Date        string `yaml:"date"`
	Slug        string `yaml:"slug"`
	Permalink   string `yaml:"permalink"`
	Category    string `yaml:"category"`
	Categories  any    `yaml:"categories"` // list, or a space separated string
	Description string `yaml:"description"`
	Published   *bool  `yaml:"published"`
	Image       struct {
		Feature    string `yaml:"feature"`
		Credit     string `yaml:"credit"`
		CreditLink string `yaml:"creditlink"`
	} `yaml:"image"`
}

// Dir is a directory of markdown posts.
type Dir struct {
	Root string
}

// NewDir returns a post source reading from root.
func NewDir(root string) *Dir {
	return &Dir{Root: root}
}

// ListPosts reads every *.md file under the root, skipping unpublished
// posts. Posts are ordered by date descending, then slug.
func (d *Dir) ListPosts(ctx context.Context) ([]archivegen.Post, error) {
	var posts []archivegen.Post
	err := filepath.WalkDir(d.Root, func(path string, e fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		p, ok, err := ParsePost(filepath.Base(path), data)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		if ok {
			posts = append(posts, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Date != posts[j].Date {
			return posts[i].Date > posts[j].Date
		}
		return posts[i].Slug < posts[j].Slug
	})
	return posts, nil
}

// ParsePost parses one post file. The boolean is false for drafts
// (published: false). A YYYY-MM-DD- filename prefix supplies the date and
// the rest of the name the slug, unless front matter sets them.
func ParsePost(filename string, data []byte) (archivegen.Post, bool, error) {
	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &fm)
	if err != nil {
		return archivegen.Post{}, false, err
	}
	if fm.Published != nil && !*fm.Published {
		return archivegen.Post{}, false, nil
	}

	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	date, slug := "", name
	if m := reDatedName.FindStringSubmatch(name); m != nil {
		date, slug = m[1], m[2]
	}
	if fm.Date != "" {
		date = fm.Date
		if len(date) > 10 {
			date = date[:10]
		}
	}
	if fm.Slug != "" {
		slug = fm.Slug
	}
	slug = archivegen.Slugify(slug)
	if fm.Title == "" {
		fm.Title = name
	}

	p := archivegen.Post{
		Slug:        slug,
		Title:       fm.Title,
		URL:         fm.Permalink,
		Date:        date,
		Categories:  categories(fm),
		Description: fm.Description,
		Content:     string(body),
	}
	if p.URL == "" {
		p.URL = archivegen.PostURL(slug)
	}
	if fm.Image.Feature != "" {
		p.Image = &archivegen.FeatureImage{
			Feature:    fm.Image.Feature,
			Credit:     fm.Image.Credit,
			CreditLink: fm.Image.CreditLink,
		}
	}
	return p, true, nil
}

func categories(fm frontMatter) []string {
	var out []string
	switch v := fm.Categories.(type) {
	case string:
		out = strings.Fields(v)
	case []any:
		for _, c := range v {
			if s := strings.TrimSpace(fmt.Sprint(c)); s != "" {
				out = append(out, s)
			}
		}
	}
	if len(out) == 0 && strings.TrimSpace(fm.Category) != "" {
		out = []string{strings.TrimSpace(fm.Category)}
	}
	return out
}
