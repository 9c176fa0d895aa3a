// Package storagemock has testify mocks for the storage interfaces.
package storagemock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/slok/task-cli/internal/model"
	"github.com/slok/task-cli/internal/storage"
)

var _ storage.Store = &MockStore{}

// MockStore is a mock of storage.Store.
type MockStore struct {
	mock.Mock
}

// Load provides a mock function with given fields: ctx.
func (m *MockStore) Load(ctx context.Context) ([]model.Task, error) {
	ret := m.Called(ctx)

	var tasks []model.Task
	if rf, ok := ret.Get(0).(func(context.Context) []model.Task); ok {
		tasks = rf(ctx)
	} else if ret.Get(0) != nil {
		tasks = ret.Get(0).([]model.Task)
	}

	return tasks, ret.Error(1)
}

// Save provides a mock function with given fields: ctx, tasks.
func (m *MockStore) Save(ctx context.Context, tasks []model.Task) error {
	ret := m.Called(ctx, tasks)
	return ret.Error(0)
}
