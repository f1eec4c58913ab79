// Package web embeds the single-page document. The element ids in it are a
// contract with the handlers and the inline script: listings-container,
// loading-message, message-toast, the listing-form fields, the two tab
// controls and the user-id display.
package web

import (
	"embed"
	"html/template"
)

//go:embed index.html
var files embed.FS

// PageData is what the index template needs from the app.
type PageData struct {
	UserID     string
	Status     string
	Categories []string
	Phase      string
	ReadOnly   bool
}

var page = template.Must(template.ParseFS(files, "index.html"))

func Page() *template.Template {
	return page
}
