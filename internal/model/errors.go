package model

import "errors"

var (
	// ErrNotFound is returned when a task is not found.
	ErrNotFound = errors.New("not found")
	// ErrNotValid is returned when an input or a task is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrPersistence is returned when the task store can't be created, read, decoded or written.
	ErrPersistence = errors.New("persistence failure")
	// ErrNoTasks is returned when a listing has nothing to show.
	ErrNoTasks = errors.New("no tasks found")
)
