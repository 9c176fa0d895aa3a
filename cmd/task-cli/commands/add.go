package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/task-cli/internal/app/add"
	"github.com/slok/task-cli/internal/storage"
)

type AddCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	description string
}

// NewAddCommand returns the add command.
func NewAddCommand(rootCmd *RootCommand, app *kingpin.Application) *AddCommand {
	c := &AddCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("add", "Add a new task.")
	c.Cmd.Arg("description", "Task description (use \"--\" before a description starting with \"-\").").Required().StringVar(&c.description)

	return c
}

func (c AddCommand) Name() string { return c.Cmd.FullCommand() }

func (c AddCommand) Run(ctx context.Context) error {
	return c.rootCmd.withStore(ctx, func(store storage.Store) error {
		svc, err := add.NewService(add.ServiceConfig{
			Store:  store,
			Logger: c.rootCmd.Logger,
		})
		if err != nil {
			return fmt.Errorf("could not create service: %w", err)
		}

		task, err := svc.Run(ctx, add.Request{Description: c.description})
		if err != nil {
			return err
		}

		return c.rootCmd.printMessage(fmt.Sprintf("Task added successfully (ID: %d)", task.ID))
	})
}
