package task

import (
	"context"
	"sort"
	"sync"
	"time"

	"taskboard/internal/model"
)

// MemoryRepo is the transient fallback store: a mutex-guarded map that
// lives for the life of the process. Used when no database is configured.
type MemoryRepo struct {
	mu    sync.RWMutex
	tasks map[model.TaskID]model.Task
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{tasks: map[model.TaskID]model.Task{}}
}

func (r *MemoryRepo) Create(_ context.Context, t model.Task) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = newID()
	t.CreatedAt = time.Now().UTC()
	normalizeNew(&t)

	r.tasks[t.ID] = t
	return t, nil
}

func (r *MemoryRepo) List(_ context.Context, filter ListFilter) ([]model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if filter.matches(t) {
			out = append(out, t)
		}
	}

	// Most recently created first; id breaks ties so the order is stable.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})

	return out, nil
}

func (r *MemoryRepo) Update(_ context.Context, id model.TaskID, p Patch) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return model.Task{}, ErrNotFound
	}

	applyPatch(&t, p)
	r.tasks[id] = t
	return t, nil
}

func (r *MemoryRepo) Delete(_ context.Context, id model.TaskID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

// Restore replaces or inserts the given tasks keeping their ids, so a
// snapshot import round-trips. Not part of Repo; only the ops tooling
// needs it.
func (r *MemoryRepo) Restore(_ context.Context, tasks []model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range tasks {
		if t.ID == "" {
			t.ID = newID()
		}
		normalizeNew(&t)
		r.tasks[t.ID] = t
	}
	return nil
}
