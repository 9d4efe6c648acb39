// Package web holds the HTML page shells and the browser script that drives them.
// The pages carry no data; the script fetches everything from the JSON API.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
)

// Page names accepted by Render.
const (
	PageIndex    = "index"
	PageUpload   = "upload"
	PageDocument = "document"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pages = map[string]*template.Template{}

func init() {
	for _, name := range []string{PageIndex, PageUpload, PageDocument} {
		pages[name] = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"))
	}
}

// PageData is the data every page shell is rendered with.
type PageData struct {
	Title      string
	Page       string
	DocumentID string
}

// Render writes the named page shell to w.
func Render(w io.Writer, page string, data PageData) error {
	t, ok := pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	data.Page = page
	return t.ExecuteTemplate(w, "layout", data)
}

// Static returns the embedded static assets rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
