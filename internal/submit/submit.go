package submit

import (
	"context"
	"errors"
	"fmt"

	"github.com/abevier/outcome/futures"
)

var (
	ErrQueueFull = errors.New("task queue is full")
)

type FullQueueStrategy int

const (
	BlockWhenFull FullQueueStrategy = iota
	ErrorWhenFull
)

// TaskFuture pairs a queued task with the context it was submitted under and the Future its outcome settles.
type TaskFuture[T any, R any] struct {
	Ctx    context.Context
	Task   T
	Future *futures.Future[R]
}

func NewTaskFuture[T any, R any](ctx context.Context, task T) TaskFuture[T, R] {
	return TaskFuture[T, R]{
		Ctx:    ctx,
		Task:   task,
		Future: futures.New[R](),
	}
}

type Function[T any, R any] func(taskChan chan<- TaskFuture[T, R], tf TaskFuture[T, R]) error

func GetFunction[T any, R any](s FullQueueStrategy) Function[T, R] {
	switch s {
	case BlockWhenFull:
		return blockWhenFull[T, R]
	case ErrorWhenFull:
		return errorWhenFull[T, R]
	default:
		panic(fmt.Sprintf("invalid submit strategy value %d", s))
	}
}

func blockWhenFull[T any, R any](taskChan chan<- TaskFuture[T, R], tf TaskFuture[T, R]) error {
	select {
	case taskChan <- tf:
		return nil
	case <-tf.Ctx.Done():
		return tf.Ctx.Err()
	}
}

func errorWhenFull[T any, R any](taskChan chan<- TaskFuture[T, R], tf TaskFuture[T, R]) error {
	select {
	case taskChan <- tf:
		return nil
	default:
		return ErrQueueFull
	}
}
