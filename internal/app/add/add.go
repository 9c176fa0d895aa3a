package add

import (
	"context"
	"fmt"
	"time"

	"github.com/slok/task-cli/internal/log"
	"github.com/slok/task-cli/internal/model"
	"github.com/slok/task-cli/internal/storage"
	"github.com/slok/task-cli/internal/tasklist"
)

// ServiceConfig is the configuration for the add service.
type ServiceConfig struct {
	Store  storage.Store
	Logger log.Logger
	// Clock is the time source for timestamps, time.Now when nil.
	Clock func() time.Time
}

func (c *ServiceConfig) defaults() error {
	if c.Store == nil {
		return fmt.Errorf("store is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Add"})

	return nil
}

// Service creates tasks.
type Service struct {
	store  storage.Store
	logger log.Logger
	clock  func() time.Time
}

// NewService creates a new add service.
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

// Request represents the add request parameters.
type Request struct {
	Description string
}

// Run appends a new todo task and returns it.
func (s *Service) Run(ctx context.Context, req Request) (*model.Task, error) {
	if err := model.ValidateDescription(req.Description); err != nil {
		return nil, err
	}

	var created model.Task
	err := storage.Mutate(ctx, storage.TransactionConfig{
		Store:  s.store,
		Logger: s.logger,
		Clock:  s.clock,
	}, func(l *tasklist.List) (bool, error) {
		created = l.Add(req.Description)
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not add task: %w", err)
	}

	s.logger.Infof("added task %d", created.ID)
	return &created, nil
}
