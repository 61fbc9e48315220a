// Package futures provides a Future which represents the eventual outcome of a single dispatched task.
// A Future starts pending and settles exactly once, either with a value or with an error.  The first
// settlement wins and every later one is silently ignored.  Unlike a channel, a settled Future can be
// read any number of times by any number of goroutines.
package futures

import (
	"context"
	"sync/atomic"
)

// Future is a structure that represents an asynchronous computation.
// A Future should be created by calling New and settled by calling Complete or Fail.
//
// Get is used to extract the value and an error from the Future.  If the Future has not
// settled, Get blocks until it does or until the context is done.  Giving up on a Future
// does not abort the computation behind it; its late outcome is simply never read.
type Future[T any] struct {
	settled atomic.Bool
	done    chan struct{}

	value T
	err   error
}

// New creates a new pending Future that will eventually hold a value of type T.
func New[T any]() *Future[T] {
	return &Future[T]{
		done: make(chan struct{}),
	}
}

// Complete settles this Future with the provided value.  If the Future has already settled this call is ignored.
func (f *Future[T]) Complete(value T) {
	f.settle(value, nil)
}

// Fail settles this Future with the provided error.  If the Future has already settled this call is ignored.
func (f *Future[T]) Fail(err error) {
	f.settle(*new(T), err)
}

func (f *Future[T]) settle(val T, err error) {
	if f.settled.CompareAndSwap(false, true) {
		f.value = val
		f.err = err
		close(f.done)
	}
}

// Done returns a channel that is closed once the Future has settled.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Get retrieves the outcome of this Future.  If the Future is still pending this call blocks until it
// settles or until ctx is done, in which case the context's error is returned.
func (f *Future[T]) Get(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		return *new(T), ctx.Err()
	}
}
