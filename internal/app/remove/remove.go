package remove

import (
	"context"
	"fmt"

	"github.com/slok/task-cli/internal/log"
	"github.com/slok/task-cli/internal/model"
	"github.com/slok/task-cli/internal/storage"
	"github.com/slok/task-cli/internal/tasklist"
)

// ServiceConfig is the configuration for the remove service.
type ServiceConfig struct {
	Store  storage.Store
	Logger log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Store == nil {
		return fmt.Errorf("store is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Remove"})

	return nil
}

// Service removes tasks.
type Service struct {
	store  storage.Store
	logger log.Logger
}

// NewService creates a new remove service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		store:  cfg.Store,
		logger: cfg.Logger,
	}, nil
}

// Request represents the remove request parameters.
type Request struct {
	// ID is the id of the task to remove.
	ID int
}

// Run removes a task by ID and returns the removed task. The remaining tasks keep their order.
func (s *Service) Run(ctx context.Context, req Request) (*model.Task, error) {
	s.logger.Debugf("removing task: %d", req.ID)

	if req.ID <= 0 {
		return nil, fmt.Errorf("task id must be positive, got: %d: %w", req.ID, model.ErrNotValid)
	}

	var removed *model.Task
	err := storage.Mutate(ctx, storage.TransactionConfig{
		Store:  s.store,
		Logger: s.logger,
	}, func(l *tasklist.List) (bool, error) {
		t, err := l.FindByID(req.ID)
		if err != nil {
			return false, err
		}
		if err := l.Delete(req.ID); err != nil {
			return false, err
		}
		removed = t
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not remove task: %w", err)
	}

	s.logger.Infof("removed task %d", removed.ID)
	return removed, nil
}
