package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"github.com/slok/task-cli/internal/conventions"
	"github.com/slok/task-cli/internal/log"
	"github.com/slok/task-cli/internal/model"
	"github.com/slok/task-cli/internal/storage/sqlite/migrations"
)

const (
	// DefaultPath is the database used when none is configured.
	DefaultPath = conventions.SQLiteStoreFile

	lockRetryDelay = 50 * time.Millisecond
)

// StoreConfig is the configuration for the SQLite store.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// Store is a SQLite implementation of storage.Store. Rows keep the collection order
// through their position.
type Store struct {
	db          *sql.DB
	flock       *flock.Flock
	lockTimeout time.Duration
	logger      log.Logger
}

// NewStore opens (creating if needed) the database and ensures the schema.
func NewStore(ctx context.Context, cfg StoreConfig) (*Store, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w: %w", model.ErrPersistence, err)
	}

	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w: %w", model.ErrPersistence, err)
	}

	schema, err := migrations.NewSchema(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create schema manager: %w", err)
	}
	if err := schema.Ensure(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not initialize database: %w: %w", model.ErrPersistence, err)
	}

	cfg.Logger.Debugf("SQLite task store initialized at %s", cfg.Path)

	return &Store{
		db:          db,
		flock:       flock.New(conventions.LockPath(cfg.Path)),
		lockTimeout: cfg.LockTimeout,
		logger:      cfg.Logger,
	}, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

// Lock takes an exclusive advisory lock on a sibling lock file, so a load/save cycle
// of another process can't interleave with ours.
func (s *Store) Lock(ctx context.Context) (func() error, error) {
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

// Load returns all tasks in collection order.
func (s *Store) Load(ctx context.Context) ([]model.Task, error) {
	query := `
		SELECT id, description, status, created_at, updated_at
		FROM tasks
		ORDER BY position ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not query tasks: %w: %w", model.ErrPersistence, err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan task: %w: %w", model.ErrPersistence, err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w: %w", model.ErrPersistence, err)
	}

	s.logger.Debugf("Loaded %d tasks", len(tasks))
	return tasks, nil
}

// Save replaces every stored task with tasks in a single transaction.
func (s *Store) Save(ctx context.Context, tasks []model.Task) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w: %w", model.ErrPersistence, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("could not clear tasks: %w: %w", model.ErrPersistence, err)
	}

	query := `
		INSERT INTO tasks (id, position, description, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	for i, t := range tasks {
		_, err = tx.ExecContext(ctx, query,
			t.ID,
			i,
			t.Description,
			string(t.Status),
			formatTime(t.CreatedAt),
			formatTime(t.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("could not insert task %d: %w: %w", t.ID, model.ErrPersistence, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit tasks: %w: %w", model.ErrPersistence, err)
	}

	s.logger.Debugf("Saved %d tasks", len(tasks))
	return nil
}

func scanTask(rows *sql.Rows) (model.Task, error) {
	var (
		t                    model.Task
		status               string
		createdAt, updatedAt string
	)

	if err := rows.Scan(&t.ID, &t.Description, &status, &createdAt, &updatedAt); err != nil {
		return model.Task{}, err
	}
	t.Status = model.TaskStatus(status)

	var err error
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.Task{}, fmt.Errorf("task %d created at: %w", t.ID, err)
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return model.Task{}, fmt.Errorf("task %d updated at: %w", t.ID, err)
	}

	if err := t.Validate(); err != nil {
		return model.Task{}, err
	}

	return t, nil
}

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
