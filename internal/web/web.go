// Package web holds the console's embedded templates and static assets.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/benbjohnson/hashfs"
)

//go:embed templates
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

// Static serves fingerprinted assets; names are resolved with Static.HashName.
var Static = hashfs.NewFS(mustSub(staticFiles, "static"))

// StaticHandler serves /static/ with far-future caching for fingerprinted names.
func StaticHandler() http.Handler {
	return http.StripPrefix("/static/", hashfs.FileServer(Static))
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
