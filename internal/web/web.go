// Package web serves the embedded single-page client.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/SparrowtheDon/email-checker/internal/pkg/pkgrouter"
)

//go:embed static
var staticFiles embed.FS

const indexPage = "index.html"

// Register mounts the page at "/" and its assets under /static/. GET and
// HEAD requests for unknown paths also get the page.
func Register(r *pkgrouter.Router) error {
	assets, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return err
	}

	index := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		http.ServeFileFS(w, req, assets, indexPage)
	})

	static := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		name := pkgrouter.GetParam(req.Context(), "filepath")
		if name == "" || name == "/" {
			http.NotFound(w, req)
			return
		}
		http.ServeFileFS(w, req, assets, name[1:])
	})

	r.Handle(http.MethodGet, "/", index)
	r.Handle(http.MethodGet, "/static/*filepath", static)
	r.Fallback(index)

	return nil
}
