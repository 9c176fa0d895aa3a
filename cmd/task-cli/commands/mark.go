package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/task-cli/internal/app/mark"
	"github.com/slok/task-cli/internal/model"
	"github.com/slok/task-cli/internal/storage"
)

// MarkCommand sets the status of a task, one command is registered per target status.
type MarkCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	status model.TaskStatus
	id     string
}

// NewMarkDoneCommand returns the mark-done command.
func NewMarkDoneCommand(rootCmd *RootCommand, app *kingpin.Application) *MarkCommand {
	return newMarkCommand(rootCmd, app, "mark-done", "Mark a task as done.", model.TaskStatusDone)
}

// NewMarkInProgressCommand returns the mark-in-progress command.
func NewMarkInProgressCommand(rootCmd *RootCommand, app *kingpin.Application) *MarkCommand {
	return newMarkCommand(rootCmd, app, "mark-in-progress", "Mark a task as in progress.", model.TaskStatusInProgress)
}

func newMarkCommand(rootCmd *RootCommand, app *kingpin.Application, name, help string, status model.TaskStatus) *MarkCommand {
	c := &MarkCommand{rootCmd: rootCmd, status: status}

	c.Cmd = app.Command(name, help)
	c.Cmd.Arg("id", "Task ID.").Required().StringVar(&c.id)

	return c
}

func (c MarkCommand) Name() string { return c.Cmd.FullCommand() }

func (c MarkCommand) Run(ctx context.Context) error {
	id, err := parseTaskID(c.id)
	if err != nil {
		return err
	}

	return c.rootCmd.withStore(ctx, func(store storage.Store) error {
		svc, err := mark.NewService(mark.ServiceConfig{
			Store:  store,
			Logger: c.rootCmd.Logger,
		})
		if err != nil {
			return fmt.Errorf("could not create service: %w", err)
		}

		task, err := svc.Run(ctx, mark.Request{
			ID:     id,
			Status: c.status,
		})
		if err != nil {
			return err
		}

		return c.rootCmd.printMessage(fmt.Sprintf("Task with id %d marked as %s", task.ID, task.Status))
	})
}
