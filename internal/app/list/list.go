package list

import (
	"context"
	"fmt"

	"github.com/slok/task-cli/internal/log"
	"github.com/slok/task-cli/internal/model"
	"github.com/slok/task-cli/internal/storage"
	"github.com/slok/task-cli/internal/tasklist"
)

// ServiceConfig is the configuration for the list service.
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

	return nil
}

// Service lists tasks with optional filtering.
type Service struct {
	store  storage.Store
	logger log.Logger
}

// NewService creates a new list service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		store:  cfg.Store,
		logger: cfg.Logger,
	}, nil
}

// Request represents the list request parameters.
type Request struct {
	// StatusFilter is an optional filter to only show tasks with this status.
	StatusFilter *model.TaskStatus
}

// Run lists all tasks, optionally filtered by status. An invalid filter is rejected
// without reading the store, an empty result is reported with model.ErrNoTasks.
func (s *Service) Run(ctx context.Context, req Request) ([]model.Task, error) {
	if req.StatusFilter != nil {
		if err := req.StatusFilter.Validate(); err != nil {
			return nil, err
		}
		s.logger.Debugf("listing tasks with status: %s", *req.StatusFilter)
	}

	var tasks []model.Task
	err := storage.View(ctx, storage.TransactionConfig{
		Store:  s.store,
		Logger: s.logger,
	}, func(l *tasklist.List) error {
		var err error
		tasks, err = l.FilterByStatus(req.StatusFilter)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("could not list tasks: %w", err)
	}

	s.logger.Debugf("found %d tasks", len(tasks))
	return tasks, nil
}
