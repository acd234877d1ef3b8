// Package webui serves the single-page application bundle.
package webui

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/mandalnilabja/authdash/web"
)

// Handlers holds the dependencies for web UI HTTP handlers.
type Handlers struct {
	FS fs.FS

	// exists caches file lookups; the bundle does not change while serving.
	exists *ristretto.Cache[string, bool]
}

// New serves the bundle in staticDir, or the embedded one when empty.
func New(staticDir string) (*Handlers, error) {
	var bundle fs.FS = web.FS
	if staticDir != "" {
		info, err := os.Stat(staticDir)
		if err != nil {
			return nil, fmt.Errorf("static dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("static dir %s is not a directory", staticDir)
		}
		bundle = os.DirFS(staticDir)
	}
	return NewFS(bundle)
}

// NewFS serves an arbitrary filesystem. It must contain index.html.
func NewFS(bundle fs.FS) (*Handlers, error) {
	if _, err := fs.Stat(bundle, "index.html"); err != nil {
		return nil, fmt.Errorf("bundle has no index.html: %w", err)
	}

	cache, err := ristretto.NewCache(&ristretto.Config[string, bool]{
		NumCounters: 1e4,
		MaxCost:     1 << 12,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create lookup cache: %w", err)
	}

	return &Handlers{FS: bundle, exists: cache}, nil
}

// Close releases the lookup cache.
func (h *Handlers) Close() {
	h.exists.Close()
}
