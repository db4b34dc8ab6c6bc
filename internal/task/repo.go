package task

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"taskboard/internal/model"
)

var ErrNotFound = errors.New("task not found")

// Patch represents a partial update.
// nil pointer => "no change"
// empty string for DueDate => clear (set to nil)
//
// Validity is enforced when the patch is applied: an invalid Priority or
// Status is dropped rather than rejected, and a Title that trims to empty
// leaves the existing title alone. Handlers additionally sanitize the
// DueDate before the patch reaches a repo.
type Patch struct {
	Title       *string         `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	Priority    *model.Priority `json:"priority,omitempty"`
	Status      *model.Status   `json:"status,omitempty"`
	DueDate     *string         `json:"dueDate,omitempty"`
}

type ListFilter struct {
	// Status:
	//   "" | "all" | "todo" | "in-progress" | "done"
	Status string

	// Priority:
	//   "" | "all" | "low" | "medium" | "high"
	Priority string
}

// wantStatus reports the concrete status to filter on. Empty, "all" and
// unrecognized values all mean "no status filter".
func (f ListFilter) wantStatus() (model.Status, bool) {
	s := model.Status(strings.ToLower(strings.TrimSpace(f.Status)))
	if !s.Valid() {
		return "", false
	}
	return s, true
}

func (f ListFilter) wantPriority() (model.Priority, bool) {
	p := model.Priority(strings.ToLower(strings.TrimSpace(f.Priority)))
	if !p.Valid() {
		return "", false
	}
	return p, true
}

func (f ListFilter) matches(t model.Task) bool {
	if s, ok := f.wantStatus(); ok && t.Status != s {
		return false
	}
	if p, ok := f.wantPriority(); ok && t.Priority != p {
		return false
	}
	return true
}

type Repo interface {
	List(ctx context.Context, filter ListFilter) ([]model.Task, error)
	Create(ctx context.Context, t model.Task) (model.Task, error)
	Update(ctx context.Context, id model.TaskID, patch Patch) (model.Task, error)
	Delete(ctx context.Context, id model.TaskID) error
}

func newID() model.TaskID {
	return model.TaskID("task_" + uuid.NewString())
}

// normalizeNew applies creation defaults: trimmed text fields, medium
// priority and todo status when the caller left them unset or invalid.
func normalizeNew(t *model.Task) {
	t.Title = strings.TrimSpace(t.Title)
	t.Description = strings.TrimSpace(t.Description)
	if !t.Priority.Valid() {
		t.Priority = model.PriorityMedium
	}
	if !t.Status.Valid() {
		t.Status = model.StatusTodo
	}
	if t.DueDate != nil && strings.TrimSpace(*t.DueDate) == "" {
		t.DueDate = nil
	}
}

func applyPatch(t *model.Task, p Patch) {
	if p.Title != nil {
		if v := strings.TrimSpace(*p.Title); v != "" {
			t.Title = v
		}
	}
	if p.Description != nil {
		t.Description = strings.TrimSpace(*p.Description)
	}
	if p.Priority != nil && p.Priority.Valid() {
		t.Priority = *p.Priority
	}
	if p.Status != nil && p.Status.Valid() {
		t.Status = *p.Status
	}

	// pointer string field with "empty clears" semantics
	if p.DueDate != nil {
		if *p.DueDate == "" {
			t.DueDate = nil
		} else {
			t.DueDate = p.DueDate
		}
	}
}
