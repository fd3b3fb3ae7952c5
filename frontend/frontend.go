// Package frontend holds the server-rendered payment pages.
package frontend

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses every page with funcs available to them.
func Templates(funcs template.FuncMap) (*template.Template, error) {
	return template.New("pages").Funcs(funcs).ParseFS(files, "templates/*.html")
}
