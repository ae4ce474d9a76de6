package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/northgate-labs/agenthq/pkg/models"
)

// TaskFilter narrows task listings. Zero-valued fields match everything.
type TaskFilter struct {
	Status     models.TaskStatus
	AssigneeID string
}

// TaskStore manages task records, one JSON file per task under tasks/.
type TaskStore interface {
	Save(task *models.Task) error
	Get(id string) (*models.Task, error)
	List(filter TaskFilter) ([]*models.Task, error)
	Delete(id string) error
}

type fileTaskStore struct {
	basePath string
}

// NewTaskStore creates a TaskStore rooted at basePath/tasks.
func NewTaskStore(basePath string) TaskStore {
	return &fileTaskStore{basePath: basePath}
}

func (s *fileTaskStore) tasksDir() string {
	return filepath.Join(s.basePath, "tasks")
}

func (s *fileTaskStore) taskPath(id string) string {
	return filepath.Join(s.tasksDir(), id+".json")
}

func (s *fileTaskStore) Save(task *models.Task) error {
	if task.ID == "" {
		return fmt.Errorf("saving task: ID must not be empty")
	}
	if err := os.MkdirAll(s.tasksDir(), 0o750); err != nil {
		return fmt.Errorf("saving task %s: creating directory: %w", task.ID, err)
	}
	data, err := json.MarshalIndent(task, "", "  ")
	if err != nil {
		return fmt.Errorf("saving task %s: marshaling: %w", task.ID, err)
	}
	if err := WriteFileAtomic(s.taskPath(task.ID), data, 0o600); err != nil {
		return fmt.Errorf("saving task %s: %w", task.ID, err)
	}
	return nil
}

// Get returns the task with the given id, or (nil, nil) if absent.
func (s *fileTaskStore) Get(id string) (*models.Task, error) {
	data, err := os.ReadFile(s.taskPath(id)) //nolint:gosec // G304: reading managed task record
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading task %s: %w", id, err)
	}
	var task models.Task
	if err := json.Unmarshal(data, &task); err != nil {
		return nil, fmt.Errorf("reading task %s: parsing JSON: %w", id, err)
	}
	return &task, nil
}

// List returns tasks matching the filter, newest first by creation time.
func (s *fileTaskStore) List(filter TaskFilter) ([]*models.Task, error) {
	entries, err := os.ReadDir(s.tasksDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing tasks: %w", err)
	}

	var tasks []*models.Task
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		task, err := s.Get(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			return nil, err
		}
		if task == nil {
			continue
		}
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		if filter.AssigneeID != "" && task.AssigneeID != filter.AssigneeID {
			continue
		}
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

// Delete removes the task record. Deleting an absent task is a no-op.
func (s *fileTaskStore) Delete(id string) error {
	if err := os.Remove(s.taskPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}
	return nil
}
