package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/task-cli/internal/app/update"
	"github.com/slok/task-cli/internal/storage"
)

type UpdateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id          string
	description string
}

// NewUpdateCommand returns the update command.
func NewUpdateCommand(rootCmd *RootCommand, app *kingpin.Application) *UpdateCommand {
	c := &UpdateCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("update", "Update the description of a task.")
	c.Cmd.Arg("id", "Task ID.").Required().StringVar(&c.id)
	c.Cmd.Arg("description", "New task description (use \"--\" before a description starting with \"-\").").Required().StringVar(&c.description)

	return c
}

func (c UpdateCommand) Name() string { return c.Cmd.FullCommand() }

func (c UpdateCommand) Run(ctx context.Context) error {
	id, err := parseTaskID(c.id)
	if err != nil {
		return err
	}

	return c.rootCmd.withStore(ctx, func(store storage.Store) error {
		svc, err := update.NewService(update.ServiceConfig{
			Store:  store,
			Logger: c.rootCmd.Logger,
		})
		if err != nil {
			return fmt.Errorf("could not create service: %w", err)
		}

		task, err := svc.Run(ctx, update.Request{
			ID:          id,
			Description: c.description,
		})
		if err != nil {
			return err
		}

		return c.rootCmd.printMessage(fmt.Sprintf("Task with id %d updated successfully", task.ID))
	})
}
