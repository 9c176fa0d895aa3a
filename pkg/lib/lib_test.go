package lib_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/task-cli/pkg/lib"
)

// newTestClient creates a client over a temp store for test isolation.
func newTestClient(t *testing.T, storage lib.StorageType) *lib.Client {
	t.Helper()

	client, err := lib.New(context.Background(), lib.Config{
		StorePath: filepath.Join(t.TempDir(), "tasks"),
		Storage:   storage,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}

func TestTaskLifecycle(t *testing.T) {
	for _, storage := range []lib.StorageType{lib.StorageJSON, lib.StorageSQLite} {
		t.Run(string(storage), func(t *testing.T) {
			require := require.New(t)
			assert := assert.New(t)
			ctx := context.Background()
			client := newTestClient(t, storage)

			task, err := client.AddTask(ctx, "write docs")
			require.NoError(err)
			assert.Equal(1, task.ID)
			assert.Equal(lib.TaskStatusTodo, task.Status)

			task, err = client.MarkTask(ctx, 1, lib.TaskStatusInProgress)
			require.NoError(err)
			assert.Equal(lib.TaskStatusInProgress, task.Status)

			task, err = client.UpdateTask(ctx, 1, "write docs v2")
			require.NoError(err)
			assert.Equal("write docs v2", task.Description)

			task, err = client.MarkTask(ctx, 1, lib.TaskStatusDone)
			require.NoError(err)
			assert.Equal(lib.TaskStatusDone, task.Status)

			tasks, err := client.ListTasks(ctx, nil)
			require.NoError(err)
			require.Len(tasks, 1)
			assert.Equal("write docs v2", tasks[0].Description)

			task, err = client.DeleteTask(ctx, 1)
			require.NoError(err)
			assert.Equal(1, task.ID)

			_, err = client.ListTasks(ctx, nil)
			assert.ErrorIs(err, lib.ErrNoTasks)
		})
	}
}

func TestListTasksFilter(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t, lib.StorageJSON)

	for _, desc := range []string{"a", "b", "c"} {
		_, err := client.AddTask(ctx, desc)
		require.NoError(t, err)
	}
	_, err := client.MarkTask(ctx, 3, lib.TaskStatusDone)
	require.NoError(t, err)
	_, err = client.MarkTask(ctx, 1, lib.TaskStatusDone)
	require.NoError(t, err)

	done := lib.TaskStatusDone
	tasks, err := client.ListTasks(ctx, &lib.ListTasksOpts{Status: &done})
	require.NoError(t, err)

	var ids []int
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []int{1, 3}, ids)
}

func TestClientErrors(t *testing.T) {
	bogus := lib.TaskStatus("bogus")
	inProgress := lib.TaskStatusInProgress

	tests := map[string]struct {
		run   func(ctx context.Context, c *lib.Client) error
		expIs error
	}{
		"Adding an empty task should fail.": {
			run: func(ctx context.Context, c *lib.Client) error {
				_, err := c.AddTask(ctx, "")
				return err
			},
			expIs: lib.ErrNotValid,
		},
		"Updating a missing task should fail.": {
			run: func(ctx context.Context, c *lib.Client) error {
				_, err := c.UpdateTask(ctx, 5, "x")
				return err
			},
			expIs: lib.ErrNotFound,
		},
		"Deleting a missing task should fail.": {
			run: func(ctx context.Context, c *lib.Client) error {
				_, err := c.DeleteTask(ctx, 5)
				return err
			},
			expIs: lib.ErrNotFound,
		},
		"Marking with an unknown status should fail.": {
			run: func(ctx context.Context, c *lib.Client) error {
				_, err := c.MarkTask(ctx, 1, bogus)
				return err
			},
			expIs: lib.ErrNotValid,
		},
		"Listing an unknown status should fail.": {
			run: func(ctx context.Context, c *lib.Client) error {
				_, err := c.ListTasks(ctx, &lib.ListTasksOpts{Status: &bogus})
				return err
			},
			expIs: lib.ErrNotValid,
		},
		"Listing a status without tasks should fail.": {
			run: func(ctx context.Context, c *lib.Client) error {
				_, err := c.ListTasks(ctx, &lib.ListTasksOpts{Status: &inProgress})
				return err
			},
			expIs: lib.ErrNoTasks,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			client := newTestClient(t, lib.StorageJSON)
			_, err := client.AddTask(ctx, "existing")
			require.NoError(t, err)

			err = test.run(ctx, client)

			assert.ErrorIs(t, err, test.expIs)
		})
	}
}

func TestCorruptStoreIsPersistenceError(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	client, err := lib.New(ctx, lib.Config{StorePath: path})
	require.NoError(t, err)
	defer client.Close()

	_, err = client.AddTask(ctx, "x")

	assert.ErrorIs(t, err, lib.ErrPersistence)
}

func TestNewInvalidStorage(t *testing.T) {
	_, err := lib.New(context.Background(), lib.Config{Storage: "postgres"})

	assert.ErrorIs(t, err, lib.ErrNotValid)
}
