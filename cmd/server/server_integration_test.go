package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taskboard/internal/config"
	"taskboard/internal/model"
	"taskboard/internal/serverapp"
	"taskboard/internal/task"
)

type testApp struct {
	t       *testing.T
	handler http.Handler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	handler, err := serverapp.NewHandler(context.Background(), serverapp.Options{
		Config: config.Default(),
		Logger: log.New(io.Discard, "", 0),
		Repo:   task.NewMemoryRepo(),
	})
	if err != nil {
		t.Fatalf("build handler: %v", err)
	}
	return &testApp{t: t, handler: handler}
}

func (a *testApp) request(method, path string, body []byte) *httptest.ResponseRecorder {
	a.t.Helper()
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) json(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		a.t.Fatalf("marshal body: %v", err)
	}
	return a.request(method, path, b)
}

func TestServer_TaskCRUDFlow(t *testing.T) {
	app := newTestApp(t)

	// create
	res := app.json(http.MethodPost, "/api/tasks", map[string]any{
		"title":    "Write the report",
		"priority": "high",
	})
	if res.Code != http.StatusCreated {
		t.Fatalf("create expected 201, got %d body=%s", res.Code, res.Body.String())
	}
	var created model.Task
	if err := json.Unmarshal(res.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("created task missing id/createdAt: %+v", created)
	}

	// list round-trips the created record
	res = app.request(http.MethodGet, "/api/tasks", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("list expected 200, got %d", res.Code)
	}
	var list []model.Task
	if err := json.Unmarshal(res.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID || list[0].Title != created.Title {
		t.Fatalf("list mismatch: %+v", list)
	}

	// update
	res = app.json(http.MethodPatch, "/api/tasks/"+string(created.ID), map[string]any{
		"status": "done",
	})
	if res.Code != http.StatusOK {
		t.Fatalf("patch expected 200, got %d body=%s", res.Code, res.Body.String())
	}

	// summary reflects the update
	res = app.request(http.MethodGet, "/api/board/summary", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("summary expected 200, got %d", res.Code)
	}
	var sum task.BoardSummary
	if err := json.Unmarshal(res.Body.Bytes(), &sum); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if sum.Total != 1 || sum.CompletionRate != 100 {
		t.Fatalf("summary mismatch: %+v", sum)
	}

	// delete
	res = app.request(http.MethodDelete, "/api/tasks/"+string(created.ID), nil)
	if res.Code != http.StatusNoContent {
		t.Fatalf("delete expected 204, got %d", res.Code)
	}
	res = app.request(http.MethodDelete, "/api/tasks/"+string(created.ID), nil)
	if res.Code != http.StatusNotFound {
		t.Fatalf("second delete expected 404, got %d", res.Code)
	}
}

func TestServer_ValidationAndFilters(t *testing.T) {
	app := newTestApp(t)

	res := app.json(http.MethodPost, "/api/tasks", map[string]any{"title": "   "})
	if res.Code != http.StatusBadRequest {
		t.Fatalf("blank title expected 400, got %d", res.Code)
	}

	seed := []map[string]any{
		{"title": "a", "status": "done", "priority": "high"},
		{"title": "b", "status": "todo", "priority": "high"},
		{"title": "c", "status": "done", "priority": "low"},
	}
	for _, s := range seed {
		if res := app.json(http.MethodPost, "/api/tasks", s); res.Code != http.StatusCreated {
			t.Fatalf("seed %v expected 201, got %d", s, res.Code)
		}
	}

	res = app.request(http.MethodGet, "/api/tasks?status=done&priority=high", nil)
	var list []model.Task
	if err := json.Unmarshal(res.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].Title != "a" {
		t.Fatalf("filter intersection mismatch: %+v", list)
	}
}

func TestServer_PagesAndProbes(t *testing.T) {
	app := newTestApp(t)

	res := app.request(http.MethodGet, "/healthz", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("healthz expected 200, got %d", res.Code)
	}
	res = app.request(http.MethodGet, "/readyz", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("readyz expected 200, got %d", res.Code)
	}

	res = app.request(http.MethodGet, "/", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("board page expected 200, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "task-form") {
		t.Fatalf("board page missing form markup")
	}

	res = app.request(http.MethodGet, "/static/js/board.js", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("embedded static expected 200, got %d", res.Code)
	}

	res = app.request(http.MethodGet, "/_/admin/routes.json", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("admin routes expected 200, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "/api/tasks") {
		t.Fatalf("admin routes missing /api/tasks: %s", res.Body.String())
	}

	res = app.request(http.MethodGet, "/_/admin", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("admin page expected 200, got %d", res.Code)
	}
}

func TestServer_MethodNotAllowed(t *testing.T) {
	app := newTestApp(t)

	res := app.request(http.MethodDelete, "/api/tasks", nil)
	if res.Code != http.StatusMethodNotAllowed {
		t.Fatalf("DELETE collection expected 405, got %d", res.Code)
	}
	res = app.json(http.MethodPost, "/api/board/summary", map[string]any{})
	if res.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST summary expected 405, got %d", res.Code)
	}
	res = app.json(http.MethodPut, "/api/tasks/task_x", map[string]any{})
	if res.Code != http.StatusMethodNotAllowed {
		t.Fatalf("PUT item expected 405, got %d", res.Code)
	}
	res = app.json(http.MethodPost, "/healthz", map[string]any{})
	if res.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST healthz expected 405, got %d", res.Code)
	}
}

func TestServer_RequestIDHeader(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("X-Request-Id", "it-test-1")
	rec := httptest.NewRecorder()
	app.handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-Id"); got != "it-test-1" {
		t.Fatalf("expected request id echoed, got %q", got)
	}
}
