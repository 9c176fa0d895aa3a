package model

import (
	"fmt"
	"strings"
	"time"
)

// TaskStatus represents the state of a task.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusDone       TaskStatus = "done"
)

// TaskStatuses are all the valid task statuses, in their natural lifecycle order.
var TaskStatuses = []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusDone}

// Validate checks the status is one of the known statuses.
func (s TaskStatus) Validate() error {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return nil
	}

	return fmt.Errorf("invalid status %q (must be: %s): %w", string(s), statusList(), ErrNotValid)
}

// ParseTaskStatus parses a user provided status (case insensitive).
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(strings.ToLower(strings.TrimSpace(s)))
	if err := status.Validate(); err != nil {
		return "", err
	}

	return status, nil
}

func statusList() string {
	ss := make([]string, 0, len(TaskStatuses))
	for _, s := range TaskStatuses {
		ss = append(ss, string(s))
	}
	return strings.Join(ss, ", ")
}

// Task is a single tracked unit of work.
type Task struct {
	ID          int
	Description string
	Status      TaskStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate validates the task model.
func (t Task) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("task id must be positive, got: %d: %w", t.ID, ErrNotValid)
	}

	if err := ValidateDescription(t.Description); err != nil {
		return err
	}

	if err := t.Status.Validate(); err != nil {
		return fmt.Errorf("task %d: %w", t.ID, err)
	}

	if t.CreatedAt.IsZero() {
		return fmt.Errorf("task %d created at is required: %w", t.ID, ErrNotValid)
	}

	if t.UpdatedAt.Before(t.CreatedAt) {
		return fmt.Errorf("task %d updated at is before created at: %w", t.ID, ErrNotValid)
	}

	return nil
}

// ValidateDescription validates a task description.
func ValidateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("task description cannot be empty: %w", ErrNotValid)
	}

	return nil
}
