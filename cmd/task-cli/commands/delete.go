package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/task-cli/internal/app/remove"
	"github.com/slok/task-cli/internal/storage"
)

type DeleteCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id string
}

// NewDeleteCommand returns the delete command.
func NewDeleteCommand(rootCmd *RootCommand, app *kingpin.Application) *DeleteCommand {
	c := &DeleteCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("delete", "Delete a task.")
	c.Cmd.Arg("id", "Task ID.").Required().StringVar(&c.id)

	return c
}

func (c DeleteCommand) Name() string { return c.Cmd.FullCommand() }

func (c DeleteCommand) Run(ctx context.Context) error {
	id, err := parseTaskID(c.id)
	if err != nil {
		return err
	}

	return c.rootCmd.withStore(ctx, func(store storage.Store) error {
		svc, err := remove.NewService(remove.ServiceConfig{
			Store:  store,
			Logger: c.rootCmd.Logger,
		})
		if err != nil {
			return fmt.Errorf("could not create service: %w", err)
		}

		task, err := svc.Run(ctx, remove.Request{ID: id})
		if err != nil {
			return err
		}

		return c.rootCmd.printMessage(fmt.Sprintf("Task with id %d deleted successfully", task.ID))
	})
}
