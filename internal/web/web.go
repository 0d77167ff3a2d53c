// Package web holds the HTML views served by the outreach front-end.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed views/*.html
var views embed.FS

// Engine returns the template engine over the embedded views.
func Engine() *html.Engine {
	sub, err := fs.Sub(views, "views")
	if err != nil {
		// views/ is embedded at build time.
		panic(err)
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}
