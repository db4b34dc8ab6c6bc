package server

import (
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/admin.html
var adminTemplatesFS embed.FS

var adminTmpl = template.Must(
	template.New("admin.html").ParseFS(adminTemplatesFS, "templates/admin.html"),
)

type adminPageData struct {
	Storage string
	Routes  []RouteDoc
}

// RegisterAdminUI mounts a small route console under /_/admin: a JSON
// listing for tooling and an HTML page for humans.
func RegisterAdminUI(mux *http.ServeMux, rr *RouteRegistry, storage string) {
	mux.HandleFunc("GET /_/admin/routes.json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, rr.List())
	})

	mux.HandleFunc("GET /_/admin", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		data := adminPageData{
			Storage: storage,
			Routes:  rr.List(),
		}

		if err := adminTmpl.Execute(w, data); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
	})
}
