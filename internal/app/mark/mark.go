package mark

import (
	"context"
	"fmt"
	"time"

	"github.com/slok/task-cli/internal/log"
	"github.com/slok/task-cli/internal/model"
	"github.com/slok/task-cli/internal/storage"
	"github.com/slok/task-cli/internal/tasklist"
)

// ServiceConfig is the configuration for the mark service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Mark"})

	return nil
}

// Service moves tasks between statuses.
type Service struct {
	store  storage.Store
	logger log.Logger
	clock  func() time.Time
}

// NewService creates a new mark service.
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

// Request represents the mark request parameters.
type Request struct {
	ID     int
	Status model.TaskStatus
}

// Run sets the status of a task. Any status can be set from any other one, marking
// a task with its current status still refreshes its update time.
func (s *Service) Run(ctx context.Context, req Request) (*model.Task, error) {
	if req.ID <= 0 {
		return nil, fmt.Errorf("task id must be positive, got: %d: %w", req.ID, model.ErrNotValid)
	}
	if err := req.Status.Validate(); err != nil {
		return nil, err
	}

	var marked *model.Task
	err := storage.Mutate(ctx, storage.TransactionConfig{
		Store:  s.store,
		Logger: s.logger,
		Clock:  s.clock,
	}, func(l *tasklist.List) (bool, error) {
		t, err := l.MarkStatus(req.ID, req.Status)
		if err != nil {
			return false, err
		}
		marked = t
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not mark task: %w", err)
	}

	s.logger.Infof("marked task %d as %s", marked.ID, marked.Status)
	return marked, nil
}
