package archivegen

import (
	"bytes"
	"testing"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorOnePagePerCategory(t *testing.T) {
	posts := []Post{
		{Title: "A", Categories: []string{"tech", "life"}},
		{Title: "B", Categories: []string{"tech"}},
		{Title: "C"},
	}
	pages := NewGenerator(ArchiveConfig{Path: "categories"}, quietLogger()).Generate(posts)
	require.Len(t, pages, 2)

	assert.Equal(t, "tech", pages[0].Category)
	assert.Equal(t, []string{"A", "B"}, titles(pages[0].Posts))
	assert.Equal(t, "/_site/categories/tech/index.html", pages[0].OutputPath("_site"))
	assert.Equal(t, DefaultArchiveLayout, pages[0].Layout)

	assert.Equal(t, "life", pages[1].Category)
	assert.Equal(t, []string{"A"}, titles(pages[1].Posts))
}

func TestGeneratorNoPosts(t *testing.T) {
	assert.Empty(t, NewGenerator(ArchiveConfig{}, quietLogger()).Generate(nil))
}

func TestGeneratorWarnsOnEscapedDirectory(t *testing.T) {
	var out bytes.Buffer
	l := log.New("test")
	l.SetOutput(&out)

	pages := NewGenerator(ArchiveConfig{}, l).Generate([]Post{{Title: "x", Categories: []string{"../etc"}}})
	require.Len(t, pages, 1)
	assert.Equal(t, "..%2Fetc", pages[0].DirName())
	assert.Equal(t, "/out/..%2Fetc/index.html", pages[0].OutputPath("out"))
	assert.Contains(t, out.String(), "written as directory")
}

func TestNewGeneratorNilLogger(t *testing.T) {
	g := NewGenerator(ArchiveConfig{}, nil)
	assert.NotNil(t, g.Logger)
	assert.Equal(t, DefaultArchiveLayout, g.Config.Layout)
}
