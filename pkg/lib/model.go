package lib

import (
	"time"

	"github.com/slok/task-cli/internal/model"
)

// StorageType selects the task store backend.
type StorageType string

const (
	// StorageJSON stores tasks in a JSON file.
	StorageJSON StorageType = "json"
	// StorageSQLite stores tasks in a SQLite database file.
	StorageSQLite StorageType = "sqlite"
)

// TaskStatus is the progress state of a task.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusDone       TaskStatus = "done"
)

// Task is a tracked unit of work.
type Task struct {
	ID          int
	Description string
	Status      TaskStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ListTasksOpts are the options for listing tasks.
type ListTasksOpts struct {
	// Status only returns tasks with this status when set.
	Status *TaskStatus
}

func fromInternalTask(t model.Task) Task {
	return Task{
		ID:          t.ID,
		Description: t.Description,
		Status:      TaskStatus(t.Status),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func fromInternalTaskList(ts []model.Task) []Task {
	result := make([]Task, len(ts))
	for i, t := range ts {
		result[i] = fromInternalTask(t)
	}
	return result
}

func toInternalStatusFilter(opts *ListTasksOpts) *model.TaskStatus {
	if opts == nil || opts.Status == nil {
		return nil
	}
	s := model.TaskStatus(*opts.Status)
	return &s
}
