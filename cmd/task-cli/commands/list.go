package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/task-cli/internal/app/list"
	"github.com/slok/task-cli/internal/model"
	"github.com/slok/task-cli/internal/printer"
	"github.com/slok/task-cli/internal/storage"
)

type ListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	statusFilter string
	format       string
}

// NewListCommand returns the list command.
func NewListCommand(rootCmd *RootCommand, app *kingpin.Application) *ListCommand {
	c := &ListCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("list", "List tasks.")
	c.Cmd.Arg("status", "Only show tasks with this status (todo, in-progress, done).").StringVar(&c.statusFilter)
	c.Cmd.Flag("format", "Output format (table, json, yaml).").EnumVar(&c.format, printer.Formats...)

	return c
}

func (c ListCommand) Name() string { return c.Cmd.FullCommand() }

func (c ListCommand) Run(ctx context.Context) error {
	var statusFilter *model.TaskStatus
	if c.statusFilter != "" {
		status, err := model.ParseTaskStatus(c.statusFilter)
		if err != nil {
			return err
		}
		statusFilter = &status
	}

	format := c.format
	if format == "" {
		format = c.rootCmd.ListFormat
	}
	p, err := printer.New(printer.Format(format), c.rootCmd.Stdout)
	if err != nil {
		return err
	}

	return c.rootCmd.withStore(ctx, func(store storage.Store) error {
		svc, err := list.NewService(list.ServiceConfig{
			Store:  store,
			Logger: c.rootCmd.Logger,
		})
		if err != nil {
			return fmt.Errorf("could not create service: %w", err)
		}

		tasks, err := svc.Run(ctx, list.Request{StatusFilter: statusFilter})
		if err != nil {
			return err
		}

		if err := p.PrintList(tasks); err != nil {
			return fmt.Errorf("could not print list: %w", err)
		}
		return nil
	})
}
