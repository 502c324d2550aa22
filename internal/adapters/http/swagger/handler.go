// Package swagger serves the API reference.
package swagger

import (
	"context"
	"io/fs"
	"net/http"
)

// Script sources for the docs page.
const (
	redocLocalPath = "/api-docs/redoc.standalone.js"
	redocURL       = "https://cdn.redoc.ly/redoc/v2.1.5/bundles/redoc.standalone.js"
)

// Register attaches the API docs routes to mux using the embedded assets.
// Routes:
//
//	GET /api-docs                      -> ReDoc HTML
//	GET /openapi.yaml                  -> Embedded OpenAPI spec
//	GET /api-docs/redoc.standalone.js  -> Embedded ReDoc JavaScript
func Register(ctx context.Context, mux *http.ServeMux) {
	RegisterWithAssets(ctx, mux, Assets)
}

// RegisterWithAssets is Register with an explicit asset tree. The docs page
// uses the local bundle when assets contain one and the CDN otherwise.
func RegisterWithAssets(_ context.Context, mux *http.ServeMux, assets fs.FS) {
	if mux == nil {
		panic("mux is nil")
	}

	bundle, err := fs.ReadFile(assets, redocBundle)
	src := redocLocalPath
	if err != nil || len(bundle) == 0 {
		bundle, src = nil, redocURL
	}
	page := []byte(indexHTML(src))

	mux.HandleFunc("/api-docs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	})

	mux.HandleFunc("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		_, _ = w.Write(OpenAPI)
	})

	mux.HandleFunc(redocLocalPath, func(w http.ResponseWriter, r *http.Request) {
		if bundle == nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		_, _ = w.Write(bundle)
	})
}

func indexHTML(src string) string {
	return `<!doctype html>
<html>
  <head>
    <meta charset="utf-8">
    <title>Mood2Emoji API Docs</title>
    <style>body{margin:0;padding:0}</style>
  </head>
  <body>
    <redoc id="redoc-container"></redoc>
    <script src="` + src + `"></script>
    <script>Redoc.init('/openapi.yaml', { suppressWarnings: true }, document.getElementById('redoc-container'));</script>
  </body>
</html>`
}
