package add_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/task-cli/internal/app/add"
	"github.com/slok/task-cli/internal/log"
	"github.com/slok/task-cli/internal/model"
	"github.com/slok/task-cli/internal/storage/storagemock"
)

func TestNewService(t *testing.T) {
	tests := map[string]struct {
		config add.ServiceConfig
		expErr bool
	}{
		"valid config should create service": {
			config: add.ServiceConfig{
				Store:  &storagemock.MockStore{},
				Logger: log.Noop,
			},
		},
		"missing store should fail": {
			config: add.ServiceConfig{Logger: log.Noop},
			expErr: true,
		},
		"nil logger should default to noop": {
			config: add.ServiceConfig{Store: &storagemock.MockStore{}},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			svc, err := add.NewService(test.config)

			if test.expErr {
				require.Error(err)
				require.Nil(svc)
			} else {
				require.NoError(err)
				require.NotNil(svc)
			}
		})
	}
}

func TestService_Run(t *testing.T) {
	now := time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC)
	before := now.Add(-time.Hour)

	existing := []model.Task{
		{ID: 1, Description: "one", Status: model.TaskStatusDone, CreatedAt: before, UpdatedAt: before},
		{ID: 4, Description: "four", Status: model.TaskStatusTodo, CreatedAt: before, UpdatedAt: before},
	}

	tests := map[string]struct {
		mock    func(m *storagemock.MockStore)
		req     add.Request
		expTask *model.Task
		expErr  error
	}{
		"adding to an empty store should assign id 1": {
			mock: func(m *storagemock.MockStore) {
				m.On("Load", mock.Anything).Once().Return([]model.Task{}, nil)
				m.On("Save", mock.Anything, []model.Task{
					{ID: 1, Description: "write docs", Status: model.TaskStatusTodo, CreatedAt: now, UpdatedAt: now},
				}).Once().Return(nil)
			},
			req:     add.Request{Description: "write docs"},
			expTask: &model.Task{ID: 1, Description: "write docs", Status: model.TaskStatusTodo, CreatedAt: now, UpdatedAt: now},
		},
		"adding should assign the last id plus one and keep existing tasks": {
			mock: func(m *storagemock.MockStore) {
				m.On("Load", mock.Anything).Once().Return(existing, nil)
				m.On("Save", mock.Anything, append(append([]model.Task{}, existing...),
					model.Task{ID: 5, Description: "five", Status: model.TaskStatusTodo, CreatedAt: now, UpdatedAt: now},
				)).Once().Return(nil)
			},
			req:     add.Request{Description: "five"},
			expTask: &model.Task{ID: 5, Description: "five", Status: model.TaskStatusTodo, CreatedAt: now, UpdatedAt: now},
		},
		"an empty description should fail without touching the store": {
			mock:   func(m *storagemock.MockStore) {},
			req:    add.Request{Description: ""},
			expErr: model.ErrNotValid,
		},
		"a load error should fail without saving": {
			mock: func(m *storagemock.MockStore) {
				m.On("Load", mock.Anything).Once().Return(nil, fmt.Errorf("corrupt: %w", model.ErrPersistence))
			},
			req:    add.Request{Description: "a"},
			expErr: model.ErrPersistence,
		},
		"a save error should be reported": {
			mock: func(m *storagemock.MockStore) {
				m.On("Load", mock.Anything).Once().Return([]model.Task{}, nil)
				m.On("Save", mock.Anything, mock.Anything).Once().Return(fmt.Errorf("read only: %w", model.ErrPersistence))
			},
			req:    add.Request{Description: "a"},
			expErr: model.ErrPersistence,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			m := &storagemock.MockStore{}
			test.mock(m)

			svc, err := add.NewService(add.ServiceConfig{
				Store:  m,
				Logger: log.Noop,
				Clock:  func() time.Time { return now },
			})
			require.NoError(err)

			task, err := svc.Run(context.Background(), test.req)

			if test.expErr != nil {
				assert.ErrorIs(err, test.expErr)
				assert.Nil(task)
			} else {
				assert.NoError(err)
				assert.Equal(test.expTask, task)
			}

			m.AssertExpectations(t)
		})
	}
}
