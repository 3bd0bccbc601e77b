package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// serveStatic handles every non-POST, non-OPTIONS request. The resolved
// path must stay inside the configured static root; anything escaping it
// is rejected before touching the filesystem.
func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request) {
	root, err := filepath.Abs(s.cfg.StaticDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "static root unavailable")
		return
	}

	reqPath := r.URL.Path
	if reqPath == "/" {
		reqPath = "/index.html"
	}
	target, err := filepath.Abs(filepath.Join(root, filepath.FromSlash(reqPath)))
	if err != nil || (target != root && !strings.HasPrefix(target, root+string(os.PathSeparator))) {
		writeError(w, http.StatusBadRequest, "invalid path")
		return
	}

	info, err := os.Stat(target)
	if err != nil || info.IsDir() {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	http.ServeFile(w, r, target)
}
