package lib

import (
	"context"
	"fmt"

	"github.com/slok/task-cli/internal/app/add"
	"github.com/slok/task-cli/internal/app/list"
	"github.com/slok/task-cli/internal/app/mark"
	"github.com/slok/task-cli/internal/app/remove"
	"github.com/slok/task-cli/internal/app/update"
	"github.com/slok/task-cli/internal/model"
)

// AddTask creates a new task with [TaskStatusTodo] status.
func (c *Client) AddTask(ctx context.Context, description string) (*Task, error) {
	svc, err := add.NewService(add.ServiceConfig{
		Store:  c.store,
		Logger: c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	t, err := svc.Run(ctx, add.Request{Description: description})
	if err != nil {
		return nil, mapError(err)
	}

	out := fromInternalTask(*t)
	return &out, nil
}

// UpdateTask replaces the description of a task.
func (c *Client) UpdateTask(ctx context.Context, id int, description string) (*Task, error) {
	svc, err := update.NewService(update.ServiceConfig{
		Store:  c.store,
		Logger: c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	t, err := svc.Run(ctx, update.Request{ID: id, Description: description})
	if err != nil {
		return nil, mapError(err)
	}

	out := fromInternalTask(*t)
	return &out, nil
}

// MarkTask sets the status of a task.
func (c *Client) MarkTask(ctx context.Context, id int, status TaskStatus) (*Task, error) {
	svc, err := mark.NewService(mark.ServiceConfig{
		Store:  c.store,
		Logger: c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	t, err := svc.Run(ctx, mark.Request{ID: id, Status: model.TaskStatus(status)})
	if err != nil {
		return nil, mapError(err)
	}

	out := fromInternalTask(*t)
	return &out, nil
}

// DeleteTask removes a task and returns it.
func (c *Client) DeleteTask(ctx context.Context, id int) (*Task, error) {
	svc, err := remove.NewService(remove.ServiceConfig{
		Store:  c.store,
		Logger: c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	t, err := svc.Run(ctx, remove.Request{ID: id})
	if err != nil {
		return nil, mapError(err)
	}

	out := fromInternalTask(*t)
	return &out, nil
}

// ListTasks lists tasks in insertion order. Pass nil opts for all tasks.
// An empty result returns [ErrNoTasks].
func (c *Client) ListTasks(ctx context.Context, opts *ListTasksOpts) ([]Task, error) {
	svc, err := list.NewService(list.ServiceConfig{
		Store:  c.store,
		Logger: c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	result, err := svc.Run(ctx, list.Request{
		StatusFilter: toInternalStatusFilter(opts),
	})
	if err != nil {
		return nil, mapError(err)
	}

	return fromInternalTaskList(result), nil
}
