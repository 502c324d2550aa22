package site

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed templates/page.html
var pageTemplate string

//go:embed templates/teacher.md
var defaultTeacherNotes []byte

//go:embed static/*
var staticFS embed.FS

// FS returns an http.FileSystem for the embedded static assets.
func FS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return http.FS(staticFS)
	}
	return http.FS(sub)
}
