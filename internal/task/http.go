package task

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"taskboard/internal/model"
)

type Handler struct {
	repo   Repo
	logger *log.Logger
}

func NewHandler(repo Repo) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) SetLogger(logger *log.Logger) {
	h.logger = logger
}

func (h *Handler) logf(format string, args ...any) {
	if h.logger == nil {
		return
	}
	h.logger.Printf(format, args...)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

// writeInternal hides storage detail from clients; the real error goes
// to the log only.
func (h *Handler) writeInternal(w http.ResponseWriter, op string, err error) {
	h.logf("task %s: %v", op, err)
	writeErr(w, http.StatusInternalServerError, "internal error")
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

// parseDueDate accepts a plain calendar date or an RFC 3339 timestamp
// (truncated to its date). Anything else is "no date".
func parseDueDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// sanitizePatch drops invalid fields before the patch reaches the store:
// out-of-set enums and unparsable dates are treated as absent, never
// rejected. Only a true empty DueDate string survives; it means "clear".
// A whitespace-only value is unparsable like any other junk and is
// dropped, never stored.
func sanitizePatch(p *Patch) {
	if p.Priority != nil && !p.Priority.Valid() {
		p.Priority = nil
	}
	if p.Status != nil && !p.Status.Valid() {
		p.Status = nil
	}
	if p.DueDate != nil && *p.DueDate != "" {
		if d, ok := parseDueDate(*p.DueDate); ok {
			p.DueDate = &d
		} else {
			p.DueDate = nil
		}
	}
}

// /api/tasks  (collection)
func (h *Handler) TasksRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		filter := ListFilter{
			Status:   q.Get("status"),
			Priority: q.Get("priority"),
		}
		ts, err := h.repo.List(r.Context(), filter)
		if err != nil {
			h.writeInternal(w, "list", err)
			return
		}
		writeJSON(w, http.StatusOK, ts)
		return

	case http.MethodPost:
		var in struct {
			Title       string         `json:"title"`
			Description string         `json:"description"`
			Priority    model.Priority `json:"priority"`
			Status      model.Status   `json:"status"`
			DueDate     *string        `json:"dueDate"`
		}
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, http.StatusBadRequest, "bad json")
			return
		}

		title := strings.TrimSpace(in.Title)
		if title == "" {
			writeErr(w, http.StatusBadRequest, "title is required")
			return
		}

		var due *string
		if in.DueDate != nil {
			if d, ok := parseDueDate(*in.DueDate); ok {
				due = &d
			}
		}

		// Invalid priority/status pass through as-is; the store
		// replaces them with the defaults.
		t, err := h.repo.Create(r.Context(), model.Task{
			Title:       title,
			Description: in.Description,
			Priority:    in.Priority,
			Status:      in.Status,
			DueDate:     due,
		})
		if err != nil {
			h.writeInternal(w, "create", err)
			return
		}

		writeJSON(w, http.StatusCreated, t)
		return

	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
}

// /api/tasks/{id}
func (h *Handler) TasksSub(w http.ResponseWriter, r *http.Request) {
	tail := strings.TrimPrefix(r.URL.Path, "/api/tasks/")
	tail = strings.Trim(tail, "/")
	if tail == "" || strings.Contains(tail, "/") {
		writeErr(w, http.StatusNotFound, "not found")
		return
	}
	id := model.TaskID(tail)

	switch r.Method {
	case http.MethodPatch:
		var p Patch
		if err := decodeJSON(r, &p); err != nil {
			writeErr(w, http.StatusBadRequest, "bad json")
			return
		}
		sanitizePatch(&p)

		t, err := h.repo.Update(r.Context(), id, p)
		if err == ErrNotFound {
			writeErr(w, http.StatusNotFound, "not found")
			return
		}
		if err != nil {
			h.writeInternal(w, "update", err)
			return
		}
		writeJSON(w, http.StatusOK, t)
		return

	case http.MethodDelete:
		err := h.repo.Delete(r.Context(), id)
		if err == ErrNotFound {
			writeErr(w, http.StatusNotFound, "not found")
			return
		}
		if err != nil {
			h.writeInternal(w, "delete", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return

	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
}
