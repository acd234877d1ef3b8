package webui

import (
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/mandalnilabja/authdash/internal/transport/http/handler/shared"
)

// ServeWebUI serves files from the bundle and falls back to index.html for
// every other path, so client-side routing (History API) works.
func (h *Handlers) ServeWebUI() http.Handler {
	fileServer := http.FileServer(http.FS(h.FS))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			shared.WriteJSONError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		filePath := path.Clean("/" + r.URL.Path)

		if filePath != "/" && !h.fileExists(strings.TrimPrefix(filePath, "/")) {
			// Unknown path: let the client router decide
			filePath = "/"
		}

		r2 := r.Clone(r.Context())
		r2.URL.Path = filePath
		fileServer.ServeHTTP(w, r2)
	})
}

// fileExists reports whether name is a regular file in the bundle.
func (h *Handlers) fileExists(name string) bool {
	if found, ok := h.exists.Get(name); ok {
		return found
	}

	info, err := fs.Stat(h.FS, name)
	found := err == nil && !info.IsDir()
	h.exists.Set(name, found, 1)
	return found
}
