// Package static serves the compiled frontend bundle for every path the API
// does not claim.
package static

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	"go.uber.org/zap"

	applog "github.com/ctfkit/teapot-webservice/internal/platform/logging"
	"github.com/ctfkit/teapot-webservice/internal/platform/respond"
)

const indexFile = "index.html"

// Handler serves files from a directory tree. Only regular files, and
// directories holding an index.html, are served; everything else is a 404
// problem.
type Handler struct {
	fsys  fs.FS
	files http.Handler
}

// New returns a Handler rooted at dir. The directory is not required to
// exist: requests against a missing root are 404s.
func New(dir string) *Handler {
	return NewFS(os.DirFS(dir))
}

// NewFS returns a Handler over an arbitrary file system.
func NewFS(fsys fs.FS) *Handler {
	return &Handler{fsys: fsys, files: http.FileServerFS(fsys)}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		respond.MethodNotAllowed(w, r, http.MethodGet, http.MethodHead)
		return
	}

	name := resolve(r.URL.Path)
	info, err := fs.Stat(h.fsys, name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			applog.LogWarn(r.Context(), "static stat failed", zap.String("name", name), zap.Error(err))
		}
		respond.NotFound(w, r)
		return
	}
	if info.IsDir() {
		index, err := fs.Stat(h.fsys, path.Join(name, indexFile))
		if err != nil || !index.Mode().IsRegular() {
			respond.NotFound(w, r)
			return
		}
		h.files.ServeHTTP(w, r)
		return
	}
	if !info.Mode().IsRegular() {
		respond.NotFound(w, r)
		return
	}
	h.serveFile(w, r, name, info)
}

// serveFile writes a regular file as is. http.FileServerFS would redirect
// ".../index.html" to its directory instead.
func (h *Handler) serveFile(w http.ResponseWriter, r *http.Request, name string, info fs.FileInfo) {
	f, err := h.fsys.Open(name)
	if err != nil {
		respond.NotFound(w, r)
		return
	}
	defer f.Close()

	content, ok := f.(io.ReadSeeker)
	if !ok {
		respond.WriteProblem(w, r, http.StatusInternalServerError, "static file is not seekable",
			fmt.Errorf("%s: %T does not implement io.Seeker", name, f))
		return
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), content)
}

// resolve maps a URL path to a cleaned, slash-free-rooted fs.FS name.
// path.Clean on a rooted path drops every ".." that would escape the root.
func resolve(urlPath string) string {
	cleaned := path.Clean("/" + urlPath)
	name := strings.TrimPrefix(cleaned, "/")
	if name == "" {
		return "."
	}
	return name
}
