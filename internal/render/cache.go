package render

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// maxRenderers bounds the cache. Each terminal resize brings a new width.
const maxRenderers = 8

// renderer serializes use of one glamour renderer
type renderer struct {
	mu   sync.Mutex
	term *glamour.TermRenderer
}

func (r *renderer) render(content string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.term.Render(content)
}

// rendererCache holds one renderer per Options value
type rendererCache struct {
	mu      sync.Mutex
	entries map[Options]*renderer
}

var renderers = &rendererCache{entries: make(map[Options]*renderer)}

// lookup returns the renderer for opts, building it on first use.
// Failed builds are not cached.
func (c *rendererCache) lookup(opts Options) (*renderer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if r, ok := c.entries[opts]; ok {
		return r, nil
	}

	term, err := newTermRenderer(opts)
	if err != nil {
		return nil, err
	}

	if len(c.entries) >= maxRenderers {
		clear(c.entries)
	}
	r := &renderer{term: term}
	c.entries[opts] = r
	return r, nil
}

func newTermRenderer(opts Options) (*glamour.TermRenderer, error) {
	termOpts := []glamour.TermRendererOption{
		glamour.WithStylePath(opts.Style),
		glamour.WithWordWrap(opts.Width),
		glamour.WithTableWrap(opts.TableWrap),
		glamour.WithInlineTableLinks(opts.InlineTableLinks),
	}
	if opts.EnableEmoji {
		termOpts = append(termOpts, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		termOpts = append(termOpts, glamour.WithPreservedNewLines())
	}
	return glamour.NewTermRenderer(termOpts...)
}

// ClearCache drops every cached renderer
func ClearCache() {
	renderers.mu.Lock()
	clear(renderers.entries)
	renderers.mu.Unlock()
}

// CacheSize returns the number of cached renderers
func CacheSize() int {
	renderers.mu.Lock()
	defer renderers.mu.Unlock()
	return len(renderers.entries)
}
