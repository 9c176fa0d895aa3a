package lib

import (
	"errors"

	"github.com/slok/task-cli/internal/model"
)

var (
	// ErrNotFound is returned when the requested task does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotValid is returned when the input is not valid (empty description, unknown status...).
	ErrNotValid = errors.New("not valid")
	// ErrPersistence is returned when the task store can't be read or written.
	ErrPersistence = errors.New("persistence failure")
	// ErrNoTasks is returned when a listing has no results.
	ErrNoTasks = errors.New("no tasks found")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		return joinErrors(err, ErrNotFound)
	case errors.Is(err, model.ErrNotValid):
		return joinErrors(err, ErrNotValid)
	case errors.Is(err, model.ErrNoTasks):
		return joinErrors(err, ErrNoTasks)
	case errors.Is(err, model.ErrPersistence):
		return joinErrors(err, ErrPersistence)
	default:
		return err
	}
}

func joinErrors(original, sentinel error) error {
	return &mappedError{original: original, sentinel: sentinel}
}

// mappedError keeps the internal error chain while matching the public sentinel.
type mappedError struct {
	original error
	sentinel error
}

func (e *mappedError) Error() string { return e.original.Error() }

func (e *mappedError) Is(target error) bool {
	return target == e.sentinel
}

func (e *mappedError) Unwrap() error { return e.original }
