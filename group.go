package archivegen

// CategoryGroups maps category names to the posts filed under them.
// Names iterate in the order they were first seen.
type CategoryGroups struct {
	names []string
	posts map[string][]Post
}

// GroupByCategory partitions posts by category. A post is appended once per
// category it lists, in input order; posts without categories are dropped.
func GroupByCategory(posts []Post) *CategoryGroups {
	g := &CategoryGroups{posts: make(map[string][]Post)}
	for _, p := range posts {
		for _, c := range p.Categories {
			if _, ok := g.posts[c]; !ok {
				g.names = append(g.names, c)
			}
			g.posts[c] = append(g.posts[c], p)
		}
	}
	return g
}

// Names returns category names in first-seen order.
func (g *CategoryGroups) Names() []string {
	out := make([]string, len(g.names))
	copy(out, g.names)
	return out
}

// Posts returns the posts filed under category, or nil.
func (g *CategoryGroups) Posts(category string) []Post {
	return g.posts[category]
}

// Len returns the number of distinct categories.
func (g *CategoryGroups) Len() int {
	return len(g.names)
}

// Each calls fn for every category in first-seen order.
func (g *CategoryGroups) Each(fn func(category string, posts []Post)) {
	for _, c := range g.names {
		fn(c, g.posts[c])
	}
}
