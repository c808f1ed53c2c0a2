package endpoints

import (
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/primer/internal/api"
	"github.com/jackzampolin/primer/web"
)

// StaticEndpoint serves the built front end. Unknown paths get index.html
// so client-side routes resolve.
type StaticEndpoint struct {
	// FS overrides the embedded assets.
	FS fs.FS
}

var _ api.Endpoint = (*StaticEndpoint)(nil)

func (e *StaticEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/{path...}", e.handler
}

func (e *StaticEndpoint) RequiresInit() bool { return false }

// No CLI form.
func (e *StaticEndpoint) Command(_ func() string) *cobra.Command {
	return nil
}

func (e *StaticEndpoint) assets() (fs.FS, error) {
	if e.FS != nil {
		return e.FS, nil
	}
	return web.DistFS()
}

func (e *StaticEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	distFS, err := e.assets()
	if err != nil {
		http.Error(w, "Frontend not available", http.StatusInternalServerError)
		return
	}

	name := strings.TrimPrefix(path.Clean("/"+r.PathValue("path")), "/")
	if name == "" {
		name = "index.html"
	}

	if info, err := fs.Stat(distFS, name); err == nil && !info.IsDir() {
		http.ServeFileFS(w, r, distFS, name)
		return
	}

	index, err := fs.ReadFile(distFS, "index.html")
	if err != nil {
		http.Error(w, "Frontend not available", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(index)
}
