package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/slok/task-cli/internal/log"
	"github.com/slok/task-cli/internal/model"
)

// StoreConfig is the configuration for the memory store.
type StoreConfig struct {
	// Tasks is the initial collection.
	Tasks []model.Task
	// LoadErr and SaveErr, when set, are returned by every Load and Save call.
	LoadErr error
	SaveErr error
	Logger  log.Logger
}

func (c *StoreConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Store is an in-memory implementation of storage.Store, used to exercise the
// load/save cycle without touching the filesystem.
type Store struct {
	tasks   []model.Task
	loadErr error
	saveErr error
	loads   int
	saves   int
	mu      sync.Mutex
	logger  log.Logger
}

// NewStore creates a new memory store.
func NewStore(cfg StoreConfig) (*Store, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Store{
		tasks:   copyTasks(cfg.Tasks),
		loadErr: cfg.LoadErr,
		saveErr: cfg.SaveErr,
		logger:  cfg.Logger,
	}, nil
}

// Load returns a copy of the stored tasks.
func (s *Store) Load(ctx context.Context) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loads++
	if s.loadErr != nil {
		return nil, fmt.Errorf("could not load tasks: %w: %w", model.ErrPersistence, s.loadErr)
	}

	return copyTasks(s.tasks), nil
}

// Save replaces the stored tasks with a copy of tasks.
func (s *Store) Save(ctx context.Context, tasks []model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saves++
	if s.saveErr != nil {
		return fmt.Errorf("could not save tasks: %w: %w", model.ErrPersistence, s.saveErr)
	}

	s.tasks = copyTasks(tasks)
	s.logger.Debugf("Saved %d tasks in memory", len(tasks))

	return nil
}

// Tasks returns a copy of the stored tasks without counting as a load.
func (s *Store) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyTasks(s.tasks)
}

// Loads returns how many times Load has been called.
func (s *Store) Loads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads
}

// Saves returns how many times Save has been called.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func copyTasks(tasks []model.Task) []model.Task {
	cp := make([]model.Task, len(tasks))
	copy(cp, tasks)
	return cp
}
