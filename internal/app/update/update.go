package update

import (
	"context"
	"fmt"
	"time"

	"github.com/slok/task-cli/internal/log"
	"github.com/slok/task-cli/internal/model"
	"github.com/slok/task-cli/internal/storage"
	"github.com/slok/task-cli/internal/tasklist"
)

// ServiceConfig is the configuration for the update service.
type ServiceConfig struct {
	Store  storage.Store
	Logger log.Logger
	Clock  func() time.Time
}

func (c *ServiceConfig) defaults() error {
	if c.Store == nil {
		return fmt.Errorf("store is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Update"})

	return nil
}

// Service changes task descriptions.
type Service struct {
	store  storage.Store
	logger log.Logger
	clock  func() time.Time
}

// NewService creates a new update service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		store:  cfg.Store,
		logger: cfg.Logger,
		clock:  cfg.Clock,
	}, nil
}

// Request represents the update request parameters.
type Request struct {
	ID          int
	Description string
}

// Run replaces the description of a task. An empty description is rejected before
// the store is read, so the store is left untouched.
func (s *Service) Run(ctx context.Context, req Request) (*model.Task, error) {
	if req.ID <= 0 {
		return nil, fmt.Errorf("task id must be positive, got: %d: %w", req.ID, model.ErrNotValid)
	}
	if err := model.ValidateDescription(req.Description); err != nil {
		return nil, err
	}

	var updated *model.Task
	err := storage.Mutate(ctx, storage.TransactionConfig{
		Store:  s.store,
		Logger: s.logger,
		Clock:  s.clock,
	}, func(l *tasklist.List) (bool, error) {
		t, err := l.Update(req.ID, req.Description)
		if err != nil {
			return false, err
		}
		updated = t
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not update task: %w", err)
	}

	s.logger.Infof("updated task %d", updated.ID)
	return updated, nil
}
