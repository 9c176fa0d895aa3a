package storage

import (
	"context"

	"github.com/slok/task-cli/internal/model"
)

// Store is the interface for task collection persistence. The whole collection is
// loaded and saved at once, there are no partial writes.
type Store interface {
	Load(ctx context.Context) ([]model.Task, error)
	Save(ctx context.Context, tasks []model.Task) error
}

// Locker is implemented by stores that can serialize load/save cycles across processes.
type Locker interface {
	// Lock blocks until the store is exclusively held or ctx is done. The returned func releases it.
	Lock(ctx context.Context) (unlock func() error, err error)
}
