package serverapp

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"

	"taskboard/internal/config"
	"taskboard/internal/httpmw"
	"taskboard/internal/server"
	"taskboard/internal/task"
	"taskboard/internal/web"
	staticfiles "taskboard/static"
)

type Options struct {
	Config    *config.Config
	StaticDir string
	Logger    *log.Logger

	// Repo overrides store selection; tests use it to inject a memory
	// repo regardless of configuration.
	Repo task.Repo
}

// NewHandler builds the full application handler: store selection,
// API routes, board page, static files, probes, middleware.
func NewHandler(ctx context.Context, opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if strings.TrimSpace(opts.StaticDir) == "" {
		opts.StaticDir = "static"
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	repo := opts.Repo
	storage := "memory"
	if repo == nil {
		if opts.Config.MongoURI != "" {
			mongoRepo, err := task.DialMongo(ctx, opts.Config.MongoURI, opts.Config.Database)
			if err != nil {
				return nil, err
			}
			repo = mongoRepo
			storage = "mongodb"
		} else {
			repo = task.NewMemoryRepo()
			opts.Logger.Printf("MONGODB_URI not set; tasks are not persisted across restarts")
		}
	}
	opts.Logger.Printf("task storage: %s", storage)

	mux := http.NewServeMux()
	rr := &server.RouteRegistry{}
	server.RegisterAdminUI(mux, rr, storage)

	staticHandler := http.FileServer(http.FS(staticfiles.EmbeddedFS()))
	if opts.Config.DevStatic {
		staticHandler = http.FileServer(http.Dir(opts.StaticDir))
	}
	mux.Handle("/static/", http.StripPrefix("/static/", staticHandler))

	taskHandler := task.NewHandler(repo)
	taskHandler.SetLogger(opts.Logger)

	// Method dispatch lives in the handlers; the mux only routes paths.
	// The registry documents the verbs for the admin console.
	for _, doc := range []server.RouteDoc{
		{Method: http.MethodGet, Pattern: "/api/tasks",
			Summary: "List tasks, newest first; optional ?status= and ?priority= filters"},
		{Method: http.MethodPost, Pattern: "/api/tasks",
			Summary:     "Create a task; title is required, the rest defaults",
			ExampleBody: `{"title":"Ship the release","priority":"high","dueDate":"2026-09-15"}`},
		{Method: http.MethodPatch, Pattern: "/api/tasks/{id}",
			Summary:     "Partially update a task; invalid fields are ignored",
			ExampleBody: `{"status":"done"}`},
		{Method: http.MethodDelete, Pattern: "/api/tasks/{id}",
			Summary: "Delete a task permanently"},
		{Method: http.MethodGet, Pattern: "/api/board/summary",
			Summary: "Tasks grouped by status plus counts and completion rate"},
	} {
		rr.Add(doc)
	}
	mux.HandleFunc("/api/tasks", taskHandler.TasksRoot)
	mux.HandleFunc("/api/tasks/", taskHandler.TasksSub)
	mux.HandleFunc("/api/board/summary", taskHandler.BoardSummary)

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "taskboard",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if _, err := repo.List(r.Context(), task.ListFilter{}); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": "task storage unavailable",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "taskboard",
			"storage": storage,
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.Handle("/", templ.Handler(web.BoardPage(web.BoardData{
		APIBase: opts.Config.APIBase,
	})))

	return httpmw.Chain(
		mux,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
	), nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
