package ops

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/task"
)

// Store is the slice of repository behavior snapshots need. Both
// task.MemoryRepo and task.MongoRepo satisfy it.
type Store interface {
	List(ctx context.Context, filter task.ListFilter) ([]model.Task, error)
	Restore(ctx context.Context, tasks []model.Task) error
}

type snapshot struct {
	ExportedAt time.Time    `json:"exportedAt"`
	Tasks      []model.Task `json:"tasks"`
}

// Export writes every task to a JSON snapshot file and returns the
// number of tasks written.
func Export(ctx context.Context, store Store, path string) (int, error) {
	path = filepath.Clean(strings.TrimSpace(path))
	if path == "" || path == "." {
		return 0, fmt.Errorf("snapshot path is required")
	}

	tasks, err := store.List(ctx, task.ListFilter{})
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, err
	}

	b, err := json.MarshalIndent(snapshot{
		ExportedAt: time.Now().UTC(),
		Tasks:      tasks,
	}, "", "  ")
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return 0, err
	}
	return len(tasks), nil
}

// Import loads a snapshot into the store. Ids are preserved so
// export/import round-trips; a task whose id already exists is
// overwritten.
func Import(ctx context.Context, store Store, path string) (int, error) {
	path = filepath.Clean(strings.TrimSpace(path))
	if path == "" || path == "." {
		return 0, fmt.Errorf("snapshot path is required")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var snap snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return 0, fmt.Errorf("parse snapshot: %w", err)
	}

	if err := store.Restore(ctx, snap.Tasks); err != nil {
		return 0, err
	}
	return len(snap.Tasks), nil
}

// DefaultSnapshotPath names a timestamped snapshot under dir.
func DefaultSnapshotPath(dir string) string {
	ts := time.Now().UTC().Format("20060102T150405Z")
	return filepath.Join(dir, "taskboard-"+ts+".json")
}
