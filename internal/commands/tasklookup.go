package commands

import (
	"context"
	"errors"
	"fmt"

	"todo/internal/board"
	"todo/internal/service"
)

var (
	errOutOfRange   = errors.New("task number out of range")
	errTaskNotFound = errors.New("task not found")
)

// lookupTask loads the board and resolves ref against it. Position
// references count from 1 in the order the server returns.
func lookupTask(ctx context.Context, b *board.Board, ref TaskRef) (service.Task, error) {
	if err := b.Load(ctx); err != nil {
		return service.Task{}, err
	}

	if ref.ID != "" {
		task, ok := b.Task(ref.ID)
		if !ok {
			return service.Task{}, fmt.Errorf("%w: %s", errTaskNotFound, ref.ID)
		}
		return task, nil
	}

	if ref.Num < 1 || ref.Num > b.Len() {
		return service.Task{}, fmt.Errorf("%w: %d", errOutOfRange, ref.Num)
	}
	return b.At(ref.Num - 1), nil
}
