// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"
	"errors"
)

// ErrNotFound is returned (possibly wrapped) when the backend has no task
// with the requested identifier.
var ErrNotFound = errors.New("not found")

// Service defines the interface for task backend operations.
// All REST calls go through this interface.
// Commands and the UI never import the HTTP client directly.
type Service interface {
	// ListTasks returns the full collection in server order.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a task and returns the server's canonical copy.
	CreateTask(ctx context.Context, title string) (Task, error)

	// UpdateTask applies a partial update and returns the server's canonical copy.
	UpdateTask(ctx context.Context, id string, updates Updates) (Task, error)

	// DeleteTask removes a task. The result may be ignored.
	DeleteTask(ctx context.Context, id string) (DeleteResult, error)
}

// IsNotFound reports whether err indicates a missing task.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
