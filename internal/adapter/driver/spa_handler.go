package driver

import (
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// SPAHandler serves the editor's single-page application from a filesystem.
// Existing files are served as-is; any other path gets index.html so the
// client router can take over. Paths under /api/ are never rewritten.
type SPAHandler struct {
	fileSystem fs.FS
	fileServer http.Handler
}

// NewSPAHandler creates a new handler that serves the SPA from the given filesystem.
func NewSPAHandler(fsys fs.FS) *SPAHandler {
	return &SPAHandler{
		fileSystem: fsys,
		fileServer: http.FileServerFS(fsys),
	}
}

// ServeHTTP serves a static file if it exists, otherwise serves index.html.
func (h *SPAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	cleanPath := path.Clean("/" + r.URL.Path)
	if strings.HasPrefix(cleanPath, "/api/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if cleanPath == "/" {
		cleanPath = "/index.html"
	}

	if !h.isFile(strings.TrimPrefix(cleanPath, "/")) {
		r.URL.Path = "/"
		h.setCacheHeaders(w, "/index.html")
		h.fileServer.ServeHTTP(w, r)
		return
	}

	h.setCacheHeaders(w, cleanPath)
	h.fileServer.ServeHTTP(w, r)
}

// isFile reports whether name is a regular file. Directories fall back to
// index.html instead of being listed.
func (h *SPAHandler) isFile(name string) bool {
	info, err := fs.Stat(h.fileSystem, name)
	return err == nil && !info.IsDir()
}

// setCacheHeaders sets cache headers based on the file path.
// Vite hashed assets (under /assets/) get long cache; index.html gets no-cache.
func (h *SPAHandler) setCacheHeaders(w http.ResponseWriter, filePath string) {
	if strings.HasPrefix(filePath, "/assets/") {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	} else if filePath == "/index.html" {
		w.Header().Set("Cache-Control", "no-cache")
	}
}
