// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"todo/internal/service"
)

// ErrNotFound is returned when a task is not found.
var ErrNotFound = fmt.Errorf("fake: %w", service.ErrNotFound)

// Call records one invocation of the fake.
type Call struct {
	Op      string // "list", "create", "update" or "delete"
	ID      string
	Title   string
	Updates service.Updates
}

// FakeService is an in-memory implementation of service.Service for testing.
// New tasks are prepended, like the real API.
type FakeService struct {
	mu     sync.Mutex
	tasks  []service.Task
	calls  []Call
	nextID int

	// Error injection for testing
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{}
}

// AddTask seeds a task at the end of the collection.
func (f *FakeService) AddTask(id, title string, completed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{ID: id, Title: title, Completed: completed})
}

// Stored returns a copy of the server-side collection.
func (f *FakeService) Stored() []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.tasks)
}

// Calls returns the recorded calls in order.
func (f *FakeService) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

// CallCount returns how many calls of the given op were made.
func (f *FakeService) CallCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "list"})
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return slices.Clone(f.tasks), nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, title string) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "create", Title: title})
	if f.CreateErr != nil {
		return service.Task{}, f.CreateErr
	}

	f.nextID++
	task := service.Task{ID: fmt.Sprintf("new%d", f.nextID), Title: title}
	f.tasks = slices.Insert(f.tasks, 0, task)
	return task, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id string, updates service.Updates) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "update", ID: id, Updates: updates})
	if f.UpdateErr != nil {
		return service.Task{}, f.UpdateErr
	}

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i] = updates.Apply(t)
			return f.tasks[i], nil
		}
	}
	return service.Task{}, ErrNotFound
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) (service.DeleteResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "delete", ID: id})
	if f.DeleteErr != nil {
		return service.DeleteResult{}, f.DeleteErr
	}

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = slices.Delete(f.tasks, i, i+1)
			return service.DeleteResult{Message: "Todo deleted"}, nil
		}
	}
	return service.DeleteResult{}, ErrNotFound
}
