// Package jsonfile stores the task collection as a single pretty printed JSON array.
//
// The file is created lazily with an empty array, validated against an embedded JSON
// schema on every load and replaced atomically on every save.
package jsonfile

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/moby/sys/atomicwriter"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/slok/task-cli/internal/conventions"
	"github.com/slok/task-cli/internal/log"
	"github.com/slok/task-cli/internal/model"
)

const (
	// DefaultPath is the store used when none is configured.
	DefaultPath = conventions.JSONStoreFile

	schemaURL      = "tasks.schema.json"
	filePerm       = 0o644
	dirPerm        = 0o755
	lockRetryDelay = 50 * time.Millisecond
)

//go:embed schema.json
var schemaJSON string

// StoreConfig is the configuration for the JSON file store.
type StoreConfig struct {
	Path string
	// LockTimeout is how long Lock waits for another process to release the store.
	LockTimeout time.Duration
	Logger      log.Logger
}

func (c *StoreConfig) defaults() error {
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}

	if c.LockTimeout <= 0 {
		c.LockTimeout = 5 * time.Second
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.JSONFile"})
	return nil
}

// Store is a JSON file implementation of storage.Store.
type Store struct {
	path        string
	schema      *jsonschema.Schema
	flock       *flock.Flock
	lockTimeout time.Duration
	logger      log.Logger
}

// NewStore creates a new JSON file store. It doesn't touch the filesystem.
func NewStore(cfg StoreConfig) (*Store, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, fmt.Errorf("could not compile tasks schema: %w", err)
	}

	return &Store{
		path:        cfg.Path,
		schema:      schema,
		flock:       flock.New(conventions.LockPath(cfg.Path)),
		lockTimeout: cfg.LockTimeout,
		logger:      cfg.Logger,
	}, nil
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("could not add schema resource: %w", err)
	}

	return compiler.Compile(schemaURL)
}

// Initialize creates the backing file with an empty collection if it doesn't exist.
func (s *Store) Initialize(ctx context.Context) error {
	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("could not stat %s: %w: %w", s.path, model.ErrPersistence, err)
	}

	if err := s.write([]model.Task{}); err != nil {
		return fmt.Errorf("could not create %s: %w", s.path, err)
	}

	s.logger.Infof("Created task store at %s", s.path)
	return nil
}

// Load initializes the store if needed and returns the decoded collection.
func (s *Store) Load(ctx context.Context) ([]model.Task, error) {
	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w: %w", s.path, model.ErrPersistence, err)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	tasks, err := s.decode(data)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w: %w", s.path, model.ErrPersistence, err)
	}

	s.logger.Debugf("Loaded %d tasks from %s", len(tasks), s.path)
	return tasks, nil
}

// Save replaces the backing file with the complete collection.
func (s *Store) Save(ctx context.Context, tasks []model.Task) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := s.write(tasks); err != nil {
		return fmt.Errorf("could not save %s: %w", s.path, err)
	}

	s.logger.Debugf("Saved %d tasks to %s", len(tasks), s.path)
	return nil
}

// Lock takes an exclusive advisory lock on a sibling lock file.
func (s *Store) Lock(ctx context.Context) (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return nil, fmt.Errorf("could not create store directory: %w: %w", model.ErrPersistence, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	locked, err := s.flock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("could not lock %s: %w", s.flock.Path(), err)
	}
	if !locked {
		return nil, fmt.Errorf("could not lock %s: held by another process", s.flock.Path())
	}
	s.logger.Debugf("Locked %s", s.flock.Path())

	return s.flock.Unlock, nil
}

func (s *Store) write(tasks []model.Task) error {
	data, err := encode(tasks)
	if err != nil {
		return fmt.Errorf("could not encode tasks: %w: %w", model.ErrPersistence, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return fmt.Errorf("could not create store directory: %w: %w", model.ErrPersistence, err)
	}

	if err := atomicwriter.WriteFile(s.path, data, filePerm); err != nil {
		return fmt.Errorf("could not write file: %w: %w", model.ErrPersistence, err)
	}

	return nil
}

func (s *Store) decode(data []byte) ([]model.Task, error) {
	// A blank file is an empty collection.
	if len(bytes.TrimSpace(data)) == 0 {
		return []model.Task{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if err := s.schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid tasks document: %w", err)
	}

	var items []taskJSON
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("invalid tasks document: %w", err)
	}

	tasks := make([]model.Task, 0, len(items))
	seen := make(map[int]bool, len(items))
	for _, item := range items {
		t := item.toModel()
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("duplicated task id %d: %w", t.ID, model.ErrNotValid)
		}
		seen[t.ID] = true
		tasks = append(tasks, t)
	}

	return tasks, nil
}

func encode(tasks []model.Task) ([]byte, error) {
	items := make([]taskJSON, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, fromModel(t))
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(data, '\n'), nil
}

// taskJSON is the persisted representation of a task.
type taskJSON struct {
	ID          int       `json:"id"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (t taskJSON) toModel() model.Task {
	return model.Task{
		ID:          t.ID,
		Description: t.Description,
		Status:      model.TaskStatus(t.Status),
		CreatedAt:   t.CreatedAt.UTC(),
		UpdatedAt:   t.UpdatedAt.UTC(),
	}
}

func fromModel(t model.Task) taskJSON {
	return taskJSON{
		ID:          t.ID,
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt.UTC(),
		UpdatedAt:   t.UpdatedAt.UTC(),
	}
}
