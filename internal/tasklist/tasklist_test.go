package tasklist_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/task-cli/internal/model"
	"github.com/slok/task-cli/internal/tasklist"
)

var t0 = time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC)

// stepClock returns a clock that advances one minute on every call.
func stepClock(start time.Time) func() time.Time {
	now := start
	return func() time.Time {
		current := now
		now = now.Add(time.Minute)
		return current
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func taskFixture(id int, status model.TaskStatus) model.Task {
	return model.Task{
		ID:          id,
		Description: "task",
		Status:      status,
		CreatedAt:   t0,
		UpdatedAt:   t0,
	}
}

func TestListAdd(t *testing.T) {
	tests := map[string]struct {
		tasks []model.Task
		expID int
	}{
		"Adding on an empty list should assign id 1": {
			tasks: nil,
			expID: 1,
		},
		"Adding should use the last id plus one": {
			tasks: []model.Task{taskFixture(1, model.TaskStatusTodo), taskFixture(2, model.TaskStatusDone)},
			expID: 3,
		},
		"Adding should not refill gaps left by deletions": {
			tasks: []model.Task{taskFixture(1, model.TaskStatusTodo), taskFixture(7, model.TaskStatusDone)},
			expID: 8,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			l := tasklist.New(test.tasks, fixedClock(t0))
			got := l.Add("write docs")

			assert.Equal(test.expID, got.ID)
			assert.Equal("write docs", got.Description)
			assert.Equal(model.TaskStatusTodo, got.Status)
			assert.Equal(t0, got.CreatedAt)
			assert.Equal(got.CreatedAt, got.UpdatedAt)
			assert.Equal(len(test.tasks)+1, l.Len())
			assert.Equal(got, l.Tasks()[l.Len()-1])
		})
	}
}

func TestListAddAfterDeleteKeepsIDsUnique(t *testing.T) {
	l := tasklist.New(nil, fixedClock(t0))
	l.Add("a")
	l.Add("b")
	l.Add("c")
	require.NoError(t, l.Delete(2))

	got := l.Add("d")
	assert.Equal(t, 4, got.ID)
}

func TestListUpdate(t *testing.T) {
	tests := map[string]struct {
		id          int
		description string
		expErr      error
	}{
		"Updating an existing task should change its description": {
			id:          2,
			description: "new description",
		},
		"Updating a missing task should fail with not found": {
			id:          42,
			description: "new description",
			expErr:      model.ErrNotFound,
		},
		"Updating with an empty description should fail with not valid": {
			id:          2,
			description: "",
			expErr:      model.ErrNotValid,
		},
		"Updating with a blank description should fail with not valid": {
			id:          2,
			description: "  ",
			expErr:      model.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			original := []model.Task{taskFixture(1, model.TaskStatusTodo), taskFixture(2, model.TaskStatusTodo)}
			l := tasklist.New(original, fixedClock(t0.Add(time.Hour)))

			got, err := l.Update(test.id, test.description)

			if test.expErr != nil {
				require.ErrorIs(err, test.expErr)
				assert.Equal(original, l.Tasks(), "a failed update should not touch the list")
				return
			}

			require.NoError(err)
			assert.Equal(test.description, got.Description)
			assert.Equal(t0, got.CreatedAt)
			assert.Equal(t0.Add(time.Hour), got.UpdatedAt)

			stored, err := l.FindByID(test.id)
			require.NoError(err)
			assert.Equal(got, stored)
		})
	}
}

func TestListMarkStatus(t *testing.T) {
	tests := map[string]struct {
		id        int
		status    model.TaskStatus
		now       time.Time
		expErr    error
		expUpdate time.Time
	}{
		"Marking in progress should set the status and refresh updated at": {
			id:        1,
			status:    model.TaskStatusInProgress,
			now:       t0.Add(time.Minute),
			expUpdate: t0.Add(time.Minute),
		},
		"Marking done should set the status": {
			id:        1,
			status:    model.TaskStatusDone,
			now:       t0.Add(time.Minute),
			expUpdate: t0.Add(time.Minute),
		},
		"A clock going backwards should not move updated at back": {
			id:        1,
			status:    model.TaskStatusDone,
			now:       t0.Add(-time.Hour),
			expUpdate: t0,
		},
		"Marking a missing task should fail with not found": {
			id:     9,
			status: model.TaskStatusDone,
			now:    t0,
			expErr: model.ErrNotFound,
		},
		"Marking with an unknown status should fail with not valid": {
			id:     1,
			status: "blocked",
			now:    t0,
			expErr: model.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			l := tasklist.New([]model.Task{taskFixture(1, model.TaskStatusTodo)}, fixedClock(test.now))

			got, err := l.MarkStatus(test.id, test.status)

			if test.expErr != nil {
				require.ErrorIs(err, test.expErr)
				return
			}

			require.NoError(err)
			assert.Equal(test.status, got.Status)
			assert.Equal(t0, got.CreatedAt)
			assert.Equal(test.expUpdate, got.UpdatedAt)
			assert.False(got.UpdatedAt.Before(got.CreatedAt))
		})
	}
}

func TestListDelete(t *testing.T) {
	tests := map[string]struct {
		id       int
		expIDs   []int
		expError error
	}{
		"Deleting the first task should keep the rest in order": {
			id:     1,
			expIDs: []int{2, 3},
		},
		"Deleting a middle task should keep the rest in order": {
			id:     2,
			expIDs: []int{1, 3},
		},
		"Deleting the last task should keep the rest in order": {
			id:     3,
			expIDs: []int{1, 2},
		},
		"Deleting a missing task should fail and keep everything": {
			id:       4,
			expIDs:   []int{1, 2, 3},
			expError: model.ErrNotFound,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			l := tasklist.New([]model.Task{
				taskFixture(1, model.TaskStatusTodo),
				taskFixture(2, model.TaskStatusInProgress),
				taskFixture(3, model.TaskStatusDone),
			}, nil)

			err := l.Delete(test.id)
			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
			} else {
				assert.NoError(t, err)
			}

			gotIDs := []int{}
			for _, task := range l.Tasks() {
				gotIDs = append(gotIDs, task.ID)
			}
			assert.Equal(t, test.expIDs, gotIDs)
		})
	}
}

func TestListFilterByStatus(t *testing.T) {
	status := func(s model.TaskStatus) *model.TaskStatus { return &s }

	stored := []model.Task{
		taskFixture(1, model.TaskStatusDone),
		taskFixture(2, model.TaskStatusTodo),
		taskFixture(3, model.TaskStatusDone),
	}

	tests := map[string]struct {
		tasks  []model.Task
		status *model.TaskStatus
		expIDs []int
		expErr error
	}{
		"No filter should return everything": {
			tasks:  stored,
			expIDs: []int{1, 2, 3},
		},
		"Filtering by done should keep the original relative order": {
			tasks:  stored,
			status: status(model.TaskStatusDone),
			expIDs: []int{1, 3},
		},
		"Filtering with no matches should report an empty result": {
			tasks:  stored,
			status: status(model.TaskStatusInProgress),
			expErr: model.ErrNoTasks,
		},
		"Listing an empty list should report an empty result": {
			tasks:  nil,
			expErr: model.ErrNoTasks,
		},
		"Filtering an empty list should report an empty result": {
			tasks:  nil,
			status: status(model.TaskStatusTodo),
			expErr: model.ErrNoTasks,
		},
		"Filtering by an unknown status should fail with not valid": {
			tasks:  stored,
			status: status("bogus"),
			expErr: model.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			l := tasklist.New(test.tasks, nil)

			got, err := l.FilterByStatus(test.status)

			if test.expErr != nil {
				require.ErrorIs(t, err, test.expErr)
				return
			}

			require.NoError(t, err)
			gotIDs := []int{}
			for _, task := range got {
				gotIDs = append(gotIDs, task.ID)
			}
			assert.Equal(t, test.expIDs, gotIDs)
		})
	}
}

func TestListLifecycle(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	l := tasklist.New(nil, stepClock(t0))

	added := l.Add("write docs")
	assert.Equal(1, added.ID)
	assert.Equal(model.TaskStatusTodo, added.Status)

	inProgress, err := l.MarkStatus(1, model.TaskStatusInProgress)
	require.NoError(err)
	assert.Equal(model.TaskStatusInProgress, inProgress.Status)
	assert.True(inProgress.UpdatedAt.After(added.UpdatedAt))

	updated, err := l.Update(1, "write docs v2")
	require.NoError(err)
	assert.Equal("write docs v2", updated.Description)

	done, err := l.MarkStatus(1, model.TaskStatusDone)
	require.NoError(err)
	assert.Equal(model.TaskStatusDone, done.Status)
	assert.Equal(added.CreatedAt, done.CreatedAt)

	require.NoError(l.Delete(1))
	assert.Equal(0, l.Len())
}

func TestListOwnsItsTasks(t *testing.T) {
	tasks := []model.Task{taskFixture(1, model.TaskStatusTodo)}
	l := tasklist.New(tasks, nil)

	tasks[0].Description = "changed outside"
	got := l.Tasks()
	got[0].Description = "changed by caller"

	stored, err := l.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, "task", stored.Description)
}
