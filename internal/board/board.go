// Package board holds the in-memory task collection shown to the user.
//
// Mutations are confirmation-driven: each operation waits for the service to
// answer and only then changes local state, so there is never an optimistic
// write to roll back. A Board is not safe for concurrent use; the UI applies
// results from its single update goroutine.
package board

import (
	"context"
	"slices"

	"todo/internal/service"
)

// Banner messages for failed operations.
const (
	MsgLoadFailed   = "Failed to load todos. Make sure the backend is running."
	MsgAddFailed    = "Failed to add todo"
	MsgUpdateFailed = "Failed to update todo"
	MsgDeleteFailed = "Failed to delete todo"
)

// Board owns the task collection, the loading flag, the last error and the
// set of tasks with a request in flight.
type Board struct {
	svc     service.Service
	tasks   []service.Task
	loading bool
	errMsg  string
	busy    map[string]bool
}

// New creates an empty Board backed by svc.
func New(svc service.Service) *Board {
	return &Board{
		svc:  svc,
		busy: make(map[string]bool),
	}
}

// Tasks returns a copy of the collection in display order.
func (b *Board) Tasks() []service.Task { return slices.Clone(b.tasks) }

// Len returns the number of tasks.
func (b *Board) Len() int { return len(b.tasks) }

// At returns the task at position i.
func (b *Board) At(i int) service.Task { return b.tasks[i] }

// Loading reports whether the initial load is outstanding.
func (b *Board) Loading() bool { return b.loading }

// Err returns the banner message of the most recent failure, or "".
func (b *Board) Err() string { return b.errMsg }

// Index returns the position of the task with the given id, or -1.
func (b *Board) Index(id string) int {
	return slices.IndexFunc(b.tasks, func(t service.Task) bool { return t.ID == id })
}

// Task returns the task with the given id.
func (b *Board) Task(id string) (service.Task, bool) {
	i := b.Index(id)
	if i < 0 {
		return service.Task{}, false
	}
	return b.tasks[i], true
}

// Remaining counts tasks that are not completed.
func (b *Board) Remaining() int {
	n := 0
	for _, t := range b.tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// Busy reports whether a request for the task is in flight.
func (b *Board) Busy(id string) bool { return b.busy[id] }

// Acquire marks the task busy. It returns false if it already was, in which
// case the caller must not issue another request for it.
func (b *Board) Acquire(id string) bool {
	if b.busy[id] {
		return false
	}
	b.busy[id] = true
	return true
}

// Release clears the busy mark of the task.
func (b *Board) Release(id string) { delete(b.busy, id) }

// BeginLoad sets the loading flag and clears the error.
func (b *Board) BeginLoad() {
	b.loading = true
	b.errMsg = ""
}

// ApplyLoad records the result of a list call. On failure the collection is
// left as it was, which is empty before the first successful load.
func (b *Board) ApplyLoad(tasks []service.Task, err error) error {
	b.loading = false
	if err != nil {
		b.errMsg = MsgLoadFailed
		return err
	}
	b.tasks = slices.Clone(tasks)
	b.errMsg = ""
	b.pruneBusy()
	return nil
}

// ApplyCreate records the result of a create call. The new task is prepended.
func (b *Board) ApplyCreate(task service.Task, err error) error {
	if err != nil {
		b.errMsg = MsgAddFailed
		return err
	}
	b.tasks = slices.Insert(b.tasks, 0, task)
	b.errMsg = ""
	return nil
}

// ApplyUpdate records the result of an update call. The entry with the given
// id is replaced in place by the server's copy. A task that disappeared in the
// meantime is not re-added.
func (b *Board) ApplyUpdate(id string, task service.Task, err error) error {
	if err != nil {
		b.errMsg = MsgUpdateFailed
		return err
	}
	if i := b.Index(id); i >= 0 {
		b.tasks[i] = task
	}
	b.errMsg = ""
	return nil
}

// ApplyDelete records the result of a delete call.
func (b *Board) ApplyDelete(id string, err error) error {
	if err != nil {
		b.errMsg = MsgDeleteFailed
		return err
	}
	b.tasks = slices.DeleteFunc(b.tasks, func(t service.Task) bool { return t.ID == id })
	b.errMsg = ""
	delete(b.busy, id)
	return nil
}

// Load fetches the collection and replaces local state with it.
func (b *Board) Load(ctx context.Context) error {
	b.BeginLoad()
	tasks, err := b.svc.ListTasks(ctx)
	return b.ApplyLoad(tasks, err)
}

// AddTask creates a task and prepends it. The error is returned so the
// caller can keep its draft.
func (b *Board) AddTask(ctx context.Context, title string) (service.Task, error) {
	task, err := b.svc.CreateTask(ctx, title)
	if err := b.ApplyCreate(task, err); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// ChangeTask updates a task and replaces the local copy.
func (b *Board) ChangeTask(ctx context.Context, id string, updates service.Updates) (service.Task, error) {
	task, err := b.svc.UpdateTask(ctx, id, updates)
	if err := b.ApplyUpdate(id, task, err); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// RemoveTask deletes a task and drops it from the collection.
func (b *Board) RemoveTask(ctx context.Context, id string) error {
	_, err := b.svc.DeleteTask(ctx, id)
	return b.ApplyDelete(id, err)
}

// pruneBusy forgets busy marks for tasks no longer in the collection.
func (b *Board) pruneBusy() {
	for id := range b.busy {
		if b.Index(id) < 0 {
			delete(b.busy, id)
		}
	}
}
