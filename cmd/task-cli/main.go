package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/oklog/run"
	"github.com/sirupsen/logrus"

	"github.com/slok/task-cli/cmd/task-cli/commands"
	"github.com/slok/task-cli/internal/log"
	loglogrus "github.com/slok/task-cli/internal/log/logrus"
)

const (
	// Version is the application version (set via ldflags).
	Version = "dev"
)

// Run runs the main application.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	// kingpin exits the process after printing help by default, we return instead.
	helped := false
	app := kingpin.New("task-cli", "Track your tasks from the command line.")
	app.DefaultEnvars()
	app.UsageWriter(stdout)
	app.ErrorWriter(stderr)
	app.Terminate(func(int) { helped = true })
	rootCmd := commands.NewRootCommand(app)

	// Setup commands (registers flags).
	addCmd := commands.NewAddCommand(rootCmd, app)
	updateCmd := commands.NewUpdateCommand(rootCmd, app)
	deleteCmd := commands.NewDeleteCommand(rootCmd, app)
	markDoneCmd := commands.NewMarkDoneCommand(rootCmd, app)
	markInProgressCmd := commands.NewMarkInProgressCommand(rootCmd, app)
	listCmd := commands.NewListCommand(rootCmd, app)

	cmds := map[string]commands.Command{
		addCmd.Name():            addCmd,
		updateCmd.Name():         updateCmd,
		deleteCmd.Name():         deleteCmd,
		markDoneCmd.Name():       markDoneCmd,
		markInProgressCmd.Name(): markInProgressCmd,
		listCmd.Name():           listCmd,
	}

	// Parse command.
	cmdName, err := app.Parse(args[1:])
	if helped {
		return nil
	}
	if err != nil {
		// Unknown or absent verbs show the usage like help does.
		if pctx, _ := app.ParseContext(args[1:]); pctx == nil || pctx.SelectedCommand == nil {
			app.Usage(nil)
			return nil
		}
		return fmt.Errorf("invalid command configuration: %w", err)
	}

	cmd, ok := cmds[cmdName]
	if !ok {
		app.Usage(nil)
		return nil
	}

	// Set standard input/output.
	rootCmd.Stdin = stdin
	rootCmd.Stdout = stdout
	rootCmd.Stderr = stderr

	// Commands that produce structured output (table/JSON/YAML) only log warnings and errors,
	// so informational noise doesn't mix with printer output in the terminal while problems
	// like an unreadable store are still reported on stderr.
	// Users can still enable full logging with --debug.
	printerCommands := map[string]bool{
		listCmd.Name(): true,
	}
	logLevel := logrus.InfoLevel
	if printerCommands[cmdName] {
		logLevel = logrus.WarnLevel
	}

	// Set logger.
	rootCmd.Logger = getLogger(ctx, *rootCmd, logLevel)

	if err := rootCmd.LoadConfig(ctx); err != nil {
		return err
	}

	var g run.Group

	// OS signals.
	{
		signalCtx, signalCancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer signalCancel()

		g.Add(
			func() error {
				<-signalCtx.Done()
				rootCmd.Logger.Debugf("Termination signal received")
				return nil
			},
			func(_ error) {
				signalCancel()
			},
		)
	}

	// Execute command.
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		g.Add(
			func() error {
				err := cmd.Run(ctx)
				if err != nil {
					return fmt.Errorf("%q command failed: %w", cmdName, err)
				}
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	}

	return g.Run()
}

// getLogger returns the application logger.
func getLogger(ctx context.Context, config commands.RootCommand, level logrus.Level) log.Logger {
	if config.NoLog {
		return log.Noop
	}

	// If logger not disabled use logrus logger.
	logrusLog := logrus.New()
	logrusLog.Out = config.Stderr // By default logger goes to stderr (so it can split stdout prints).
	logrusLogEntry := logrus.NewEntry(logrusLog)

	logrusLogEntry.Logger.SetLevel(level)
	if config.Debug {
		logrusLogEntry.Logger.SetLevel(logrus.DebugLevel)
	}

	// Log format.
	switch config.LoggerType {
	case commands.LoggerTypeDefault:
		logrusLogEntry.Logger.SetFormatter(&logrus.TextFormatter{
			ForceColors:   !config.NoColor,
			DisableColors: config.NoColor,
		})
	case commands.LoggerTypeJSON:
		logrusLogEntry.Logger.SetFormatter(&logrus.JSONFormatter{})
	}

	logger := loglogrus.NewLogrus(logrusLogEntry).WithValues(log.Kv{
		"version": Version,
	})

	logger.Debugf("Debug level is enabled") // Will log only when debug enabled.

	return logger
}

func main() {
	ctx := context.Background()
	err := Run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
