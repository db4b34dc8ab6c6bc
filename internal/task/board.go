package task

import (
	"math"
	"net/http"

	"taskboard/internal/model"
)

// Derived board views. These are pure functions over a task snapshot and
// are recomputed on demand, never stored, so they cannot drift from the
// collection.

// GroupByStatus partitions tasks into the three status columns,
// preserving the input order within each column. Every column is present
// even when empty.
func GroupByStatus(tasks []model.Task) map[model.Status][]model.Task {
	cols := make(map[model.Status][]model.Task, 3)
	for _, s := range model.Statuses() {
		cols[s] = []model.Task{}
	}
	for _, t := range tasks {
		cols[t.Status] = append(cols[t.Status], t)
	}
	return cols
}

// CompletionRate is round(100 * done / total), 0 for an empty collection.
func CompletionRate(tasks []model.Task) int {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Status == model.StatusDone {
			done++
		}
	}
	return int(math.Round(100 * float64(done) / float64(len(tasks))))
}

type BoardSummary struct {
	Columns        map[model.Status][]model.Task `json:"columns"`
	Counts         map[model.Status]int          `json:"counts"`
	Total          int                           `json:"total"`
	CompletionRate int                           `json:"completionRate"`
}

func Summarize(tasks []model.Task) BoardSummary {
	cols := GroupByStatus(tasks)
	counts := make(map[model.Status]int, len(cols))
	for s, ts := range cols {
		counts[s] = len(ts)
	}
	return BoardSummary{
		Columns:        cols,
		Counts:         counts,
		Total:          len(tasks),
		CompletionRate: CompletionRate(tasks),
	}
}

// /api/board/summary
func (h *Handler) BoardSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	filter := ListFilter{
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
	}
	ts, err := h.repo.List(r.Context(), filter)
	if err != nil {
		h.writeInternal(w, "summary", err)
		return
	}
	writeJSON(w, http.StatusOK, Summarize(ts))
}
