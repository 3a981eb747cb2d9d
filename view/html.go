package view

import (
	"embed"
	"html/template"
	"io"
	"time"
)

//go:embed templates/page.html
var templates embed.FS

var pageTemplate = template.Must(
	template.New("page.html").
		Funcs(template.FuncMap{"number": number}).
		ParseFS(templates, "templates/page.html"),
)

// Toast is a transient message pinned to a corner of the page
type Toast struct {
	Message    string
	Level      string
	Position   string
	DurationMS int64
}

// NewToast builds a toast that disappears after d
func NewToast(message, level, position string, d time.Duration) *Toast {
	return &Toast{Message: message, Level: level, Position: position, DurationMS: d.Milliseconds()}
}

// Page is the data behind the single page
type Page struct {
	Query       string
	Remember    bool
	Card        *Card // nil renders no card
	Toast       *Toast
	PlayAlert   bool
	ShowConsent bool
}

// RenderPage writes the full HTML page
func RenderPage(w io.Writer, page Page) error {
	return pageTemplate.Execute(w, page)
}
