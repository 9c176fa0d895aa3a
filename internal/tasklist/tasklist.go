// Package tasklist holds the in-memory task collection and every operation that mutates
// or queries it. Nothing in here does I/O, the storage layer loads and saves the
// collection around these operations.
package tasklist

import (
	"fmt"
	"time"

	"github.com/slok/task-cli/internal/model"
)

// List is an ordered task collection. Insertion order is kept and only matters for display.
type List struct {
	tasks []model.Task
	now   func() time.Time
}

// New returns a list that owns a copy of tasks. If now is nil the wall clock is used.
func New(tasks []model.Task, now func() time.Time) *List {
	if now == nil {
		now = time.Now
	}

	cp := make([]model.Task, len(tasks))
	copy(cp, tasks)

	return &List{tasks: cp, now: now}
}

// Tasks returns a copy of the whole collection.
func (l *List) Tasks() []model.Task {
	cp := make([]model.Task, len(l.tasks))
	copy(cp, l.tasks)
	return cp
}

// Len returns the number of tasks.
func (l *List) Len() int { return len(l.tasks) }

// NextID is one more than the id of the last task, or 1 when empty. Ids freed by
// deletions are never handed out again as long as the last task keeps the highest id.
func (l *List) NextID() int {
	if len(l.tasks) == 0 {
		return 1
	}
	return l.tasks[len(l.tasks)-1].ID + 1
}

// Add appends a new todo task.
func (l *List) Add(description string) model.Task {
	now := l.timestamp()
	t := model.Task{
		ID:          l.NextID(),
		Description: description,
		Status:      model.TaskStatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	l.tasks = append(l.tasks, t)

	return t
}

// FindByID returns the task with id.
func (l *List) FindByID(id int) (*model.Task, error) {
	i := l.index(id)
	if i < 0 {
		return nil, fmt.Errorf("task with id %d: %w", id, model.ErrNotFound)
	}

	t := l.tasks[i]
	return &t, nil
}

// Update replaces the description of a task.
func (l *List) Update(id int, description string) (*model.Task, error) {
	if err := model.ValidateDescription(description); err != nil {
		return nil, err
	}

	return l.mutate(id, func(t *model.Task) { t.Description = description })
}

// MarkStatus moves a task to status.
func (l *List) MarkStatus(id int, status model.TaskStatus) (*model.Task, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return l.mutate(id, func(t *model.Task) { t.Status = status })
}

// Delete removes a task keeping the order of the rest.
func (l *List) Delete(id int) error {
	i := l.index(id)
	if i < 0 {
		return fmt.Errorf("task with id %d: %w", id, model.ErrNotFound)
	}

	l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	return nil
}

// FilterByStatus returns the tasks with status in their original order, or all of them when
// status is nil. An empty outcome is reported with model.ErrNoTasks so callers can tell
// "nothing stored" and "nothing with this status" apart from an invalid filter (model.ErrNotValid).
func (l *List) FilterByStatus(status *model.TaskStatus) ([]model.Task, error) {
	if status == nil {
		if len(l.tasks) == 0 {
			return nil, model.ErrNoTasks
		}
		return l.Tasks(), nil
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}

	filtered := make([]model.Task, 0, len(l.tasks))
	for _, t := range l.tasks {
		if t.Status == *status {
			filtered = append(filtered, t)
		}
	}

	if len(filtered) == 0 {
		if len(l.tasks) == 0 {
			return nil, model.ErrNoTasks
		}
		return nil, fmt.Errorf("no tasks with status %q found: %w", *status, model.ErrNoTasks)
	}

	return filtered, nil
}

func (l *List) mutate(id int, fn func(t *model.Task)) (*model.Task, error) {
	i := l.index(id)
	if i < 0 {
		return nil, fmt.Errorf("task with id %d: %w", id, model.ErrNotFound)
	}

	t := &l.tasks[i]
	fn(t)

	// Clock skew must not leave updatedAt behind the previous value.
	now := l.timestamp()
	if now.Before(t.UpdatedAt) {
		now = t.UpdatedAt
	}
	t.UpdatedAt = now

	res := *t
	return &res, nil
}

func (l *List) index(id int) int {
	for i, t := range l.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// timestamp is the current time in UTC without monotonic reading, so it survives encoding unchanged.
func (l *List) timestamp() time.Time {
	return l.now().UTC()
}
