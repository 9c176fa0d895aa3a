package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/slok/task-cli/internal/conventions"
	"github.com/slok/task-cli/internal/log"
	"github.com/slok/task-cli/internal/model"
	"github.com/slok/task-cli/internal/printer"
	"github.com/slok/task-cli/internal/storage"
	storageio "github.com/slok/task-cli/internal/storage/io"
	"github.com/slok/task-cli/internal/storage/jsonfile"
	"github.com/slok/task-cli/internal/storage/sqlite"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"
)

const defaultLockTimeout = 5 * time.Second

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug       bool
	NoLog       bool
	NoColor     bool
	LoggerType  string
	StorePath   string
	Storage     string
	ConfigPath  string
	LockTimeout time.Duration

	// ListFormat is the default list output format, only set from the config file.
	ListFormat string

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)

	// Store flags have no kingpin defaults so the config file can fill the gaps.
	app.Flag("store-path", "Path to the task store file (default: ./tasks.json, ./tasks.db for sqlite).").StringVar(&c.StorePath)
	app.Flag("storage", "Task store backend (json, sqlite).").EnumVar(&c.Storage, string(model.StorageTypeJSON), string(model.StorageTypeSQLite))
	app.Flag("lock-timeout", "Max time to wait for the store lock (default: 5s).").DurationVar(&c.LockTimeout)

	defaultConfigPath := conventions.ConfigPath(homedir.HomeDir())
	app.Flag("config", "Path to the YAML configuration file.").Default(defaultConfigPath).StringVar(&c.ConfigPath)

	return c
}

// LoadConfig fills every setting not given as a flag from the configuration file and
// then from the built-in defaults. A missing configuration file is ignored.
func (r *RootCommand) LoadConfig(ctx context.Context) error {
	cfg, err := readConfigFile(ctx, r.ConfigPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("could not load configuration %q: %w", r.ConfigPath, err)
		}
		r.Logger.Debugf("No configuration file at %s", r.ConfigPath)
	}

	if r.Storage == "" {
		r.Storage = string(cfg.Storage)
	}
	if r.Storage == "" {
		r.Storage = string(model.StorageTypeJSON)
	}

	if r.StorePath == "" {
		r.StorePath = cfg.StorePath
	}
	if r.StorePath == "" {
		r.StorePath = defaultStorePath(model.StorageType(r.Storage))
	}

	if r.LockTimeout <= 0 {
		r.LockTimeout = cfg.LockTimeout
	}
	if r.LockTimeout <= 0 {
		r.LockTimeout = defaultLockTimeout
	}

	if r.ListFormat == "" {
		r.ListFormat = cfg.ListFormat
	}
	if r.ListFormat == "" {
		r.ListFormat = string(printer.FormatTable)
	}

	r.Logger.Debugf("Using %s store at %s", r.Storage, r.StorePath)

	return nil
}

func readConfigFile(ctx context.Context, path string) (model.Config, error) {
	if path == "" {
		return model.Config{}, fs.ErrNotExist
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return model.Config{}, fmt.Errorf("could not resolve path: %w", err)
	}

	repo := storageio.NewConfigYAMLRepository(os.DirFS(filepath.Dir(absPath)))
	return repo.GetConfig(ctx, filepath.Base(absPath))
}

func defaultStorePath(st model.StorageType) string {
	if st == model.StorageTypeSQLite {
		return sqlite.DefaultPath
	}
	return jsonfile.DefaultPath
}

// newStore opens the configured task store, the returned func releases it.
func (r *RootCommand) newStore(ctx context.Context) (storage.Store, func() error, error) {
	switch model.StorageType(r.Storage) {
	case model.StorageTypeSQLite:
		s, err := sqlite.NewStore(ctx, sqlite.StoreConfig{
			Path:        r.StorePath,
			LockTimeout: r.LockTimeout,
			Logger:      r.Logger,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case model.StorageTypeJSON, "":
		s, err := jsonfile.NewStore(jsonfile.StoreConfig{
			Path:        r.StorePath,
			LockTimeout: r.LockTimeout,
			Logger:      r.Logger,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, func() error { return nil }, nil
	}

	return nil, nil, model.StorageType(r.Storage).Validate()
}

// withStore runs fn with an open store and closes it afterwards.
func (r *RootCommand) withStore(ctx context.Context, fn func(storage.Store) error) (err error) {
	store, closeStore, err := r.newStore(ctx)
	if err != nil {
		return fmt.Errorf("could not create store: %w", err)
	}
	defer func() {
		if cerr := closeStore(); cerr != nil && err == nil {
			err = fmt.Errorf("could not close store: %w", cerr)
		}
	}()

	return fn(store)
}

func (r *RootCommand) printMessage(msg string) error {
	p := printer.NewTablePrinter(r.Stdout)
	if err := p.PrintMessage(msg); err != nil {
		return fmt.Errorf("could not print message: %w", err)
	}
	return nil
}

// parseTaskID parses a task id argument, only positive integers are valid ids.
func parseTaskID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q (must be an integer): %w", s, model.ErrNotValid)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid task id %d (must be greater than 0): %w", id, model.ErrNotValid)
	}
	return id, nil
}
