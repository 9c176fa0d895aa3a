package lib

import (
	"context"
	"fmt"
	"time"

	"github.com/slok/task-cli/internal/log"
	"github.com/slok/task-cli/internal/model"
	"github.com/slok/task-cli/internal/storage"
	"github.com/slok/task-cli/internal/storage/jsonfile"
	"github.com/slok/task-cli/internal/storage/sqlite"
)

// Config configures the SDK client.
//
// All fields are optional. An empty Config{} uses ./tasks.json, the same
// store the CLI uses when run from the same directory.
type Config struct {
	// StorePath is the task store file path.
	// Default: tasks.json (tasks.db for [StorageSQLite]).
	StorePath string

	// Storage selects the store backend.
	// Default: [StorageJSON].
	Storage StorageType

	// LockTimeout is how long operations wait for other processes using the store.
	// Default: 5s.
	LockTimeout time.Duration

	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.Storage == "" {
		c.Storage = StorageJSON
	}
	if err := model.StorageType(c.Storage).Validate(); err != nil {
		return err
	}

	if c.StorePath == "" {
		c.StorePath = jsonfile.DefaultPath
		if c.Storage == StorageSQLite {
			c.StorePath = sqlite.DefaultPath
		}
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Client is the main SDK entry point for managing tasks programmatically.
//
// Create a Client with [New] and release its resources with [Client.Close].
type Client struct {
	store   storage.Store
	logger  log.Logger
	closeFn func() error
}

// New creates a new SDK client over the configured task store.
//
// The caller must call [Client.Close] when done:
//
//	client, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, mapError(fmt.Errorf("invalid config: %w", err))
	}

	c := &Client{logger: cfg.Logger}
	switch cfg.Storage {
	case StorageSQLite:
		s, err := sqlite.NewStore(ctx, sqlite.StoreConfig{
			Path:        cfg.StorePath,
			LockTimeout: cfg.LockTimeout,
			Logger:      cfg.Logger,
		})
		if err != nil {
			return nil, mapError(fmt.Errorf("could not create store: %w", err))
		}
		c.store = s
		c.closeFn = s.Close
	default:
		s, err := jsonfile.NewStore(jsonfile.StoreConfig{
			Path:        cfg.StorePath,
			LockTimeout: cfg.LockTimeout,
			Logger:      cfg.Logger,
		})
		if err != nil {
			return nil, mapError(fmt.Errorf("could not create store: %w", err))
		}
		c.store = s
	}

	return c, nil
}

// Close releases resources held by the client.
// After Close returns, the client must not be used.
func (c *Client) Close() error {
	if c.closeFn != nil {
		return c.closeFn()
	}
	return nil
}
