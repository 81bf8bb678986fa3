// Package ui embeds the static model-explorer page served under /ui/.
package ui

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static/*
var content embed.FS

// GetHandler returns an http.Handler serving the embedded UI files, rooted
// at the static directory so index.html resolves at /.
func GetHandler() http.Handler {
	fsys, err := fs.Sub(content, "static")
	if err != nil {
		panic(err) // embed guarantees the directory exists
	}
	return http.FileServer(http.FS(fsys))
}
