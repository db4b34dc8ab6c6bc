package web

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

//go:embed templates/board.html
var templatesFS embed.FS

var boardTmpl = template.Must(
	template.New("board.html").ParseFS(templatesFS, "templates/board.html"),
)

type BoardData struct {
	Title string
	// APIBase prefixes every client request; empty means same-origin.
	APIBase string
}

// BoardPage renders the single-page board shell; the board itself is
// driven by static/js/board.js against the JSON API.
func BoardPage(data BoardData) templ.Component {
	if data.Title == "" {
		data.Title = "Task Board"
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return boardTmpl.Execute(w, data)
	})
}
