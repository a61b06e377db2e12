package archivegen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/a-h/templ"
)

var (
	// ErrLayoutNotFound is returned when a page names a layout that was never registered.
	ErrLayoutNotFound = errors.New("layout not found")
	// ErrContentNotFound is returned when a page names an unknown content template.
	ErrContentNotFound = errors.New("content template not found")
)

// Layout wraps rendered page content in a full document.
type Layout func(p Payload, content templ.Component) templ.Component

// ContentFunc renders the body of a page.
type ContentFunc func(p Payload) templ.Component

// RenderError reports a failure rendering one page.
type RenderError struct {
	Page   string
	Layout string
	Cause  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s (layout %q): %v", e.Page, e.Layout, e.Cause)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Templates is the registry of layouts and content templates available to
// a build. Users own every template; archivegen only resolves them by name.
type Templates struct {
	mu       sync.RWMutex
	layouts  map[string]Layout
	contents map[string]ContentFunc
}

// NewTemplates returns an empty registry.
func NewTemplates() *Templates {
	return &Templates{
		layouts:  make(map[string]Layout),
		contents: make(map[string]ContentFunc),
	}
}

// AddLayout registers (or replaces) a layout.
func (t *Templates) AddLayout(name string, l Layout) {
	t.mu.Lock()
	t.layouts[name] = l
	t.mu.Unlock()
}

// AddContent registers (or replaces) a content template.
func (t *Templates) AddContent(name string, c ContentFunc) {
	t.mu.Lock()
	t.contents[name] = c
	t.mu.Unlock()
}

// Layout looks up a layout by name.
func (t *Templates) Layout(name string) (Layout, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	l, ok := t.layouts[name]
	return l, ok
}

// Content looks up a content template by name.
func (t *Templates) Content(name string) (ContentFunc, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c, ok := t.contents[name]
	return c, ok
}

// DoLayout renders the page's content template inside the named layout and
// writes the result to w.
func (t *Templates) DoLayout(ctx context.Context, w io.Writer, p Payload, layout string) error {
	l, ok := t.Layout(layout)
	if !ok {
		return fmt.Errorf("%w: %q", ErrLayoutNotFound, layout)
	}
	var body templ.Component = templ.NopComponent
	if name := p.Page.ContentTemplate; name != "" {
		c, ok := t.Content(name)
		if !ok {
			return fmt.Errorf("%w: %q", ErrContentNotFound, name)
		}
		body = c(p)
	}
	return l(p, body).Render(ctx, w)
}
