package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/slok/task-cli/internal/log"
	"github.com/slok/task-cli/internal/tasklist"
)

// TransactionConfig is the configuration for a load → operation → save cycle.
type TransactionConfig struct {
	Store  Store
	Logger log.Logger
	// Clock is passed to the task list, the wall clock when nil.
	Clock func() time.Time
}

func (c *TransactionConfig) defaults() error {
	if c.Store == nil {
		return fmt.Errorf("store is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// MutateFunc applies one operation to the list. It returns true when the list changed and must be saved.
type MutateFunc func(l *tasklist.List) (mutated bool, err error)

// Mutate loads the collection, applies op and saves the collection only when op succeeded and
// changed it. A load failure aborts the cycle, saving over a store we couldn't read would lose it.
func Mutate(ctx context.Context, cfg TransactionConfig, op MutateFunc) error {
	if err := cfg.defaults(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if locker, ok := cfg.Store.(Locker); ok {
		unlock, err := locker.Lock(ctx)
		if err != nil {
			return fmt.Errorf("could not lock store: %w", err)
		}
		defer func() {
			if err := unlock(); err != nil {
				cfg.Logger.Warningf("could not unlock store: %s", err)
			}
		}()
	}

	tasks, err := cfg.Store.Load(ctx)
	if err != nil {
		return fmt.Errorf("could not load tasks: %w", err)
	}

	l := tasklist.New(tasks, cfg.Clock)
	mutated, err := op(l)
	if err != nil {
		return err
	}

	if !mutated {
		cfg.Logger.Debugf("operation did not change the tasks, skipping save")
		return nil
	}

	if err := cfg.Store.Save(ctx, l.Tasks()); err != nil {
		return fmt.Errorf("could not save tasks: %w", err)
	}
	cfg.Logger.Debugf("saved %d tasks", l.Len())

	return nil
}

// ViewFunc reads from the list, it can't persist anything.
type ViewFunc func(l *tasklist.List) error

// View loads the collection and applies op, it never saves. A load failure is logged and op
// runs over an empty collection.
func View(ctx context.Context, cfg TransactionConfig, op ViewFunc) error {
	if err := cfg.defaults(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	tasks, err := cfg.Store.Load(ctx)
	if err != nil {
		cfg.Logger.Warningf("could not load tasks, using an empty collection: %s", err)
		tasks = nil
	}

	return op(tasklist.New(tasks, cfg.Clock))
}
