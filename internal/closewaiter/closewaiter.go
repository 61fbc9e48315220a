// Package closewaiter guards a resource that many goroutines use concurrently and that must be
// closed exactly once, after every use that started before the close has returned.
package closewaiter

import (
	"errors"
	"runtime"
	"sync/atomic"
)

var (
	ErrClosed = errors.New("closed")
)

type CloseWaiter struct {
	closing atomic.Bool
	active  atomic.Int32

	closed chan struct{}
}

func New() *CloseWaiter {
	return &CloseWaiter{
		closed: make(chan struct{}),
	}
}

// Do runs f unless Close has been called, in which case it returns ErrClosed.
func (c *CloseWaiter) Do(f func() error) error {
	c.active.Add(1)
	defer c.active.Add(-1)

	if c.closing.Load() {
		return ErrClosed
	}

	return f()
}

// Close marks c closed, waits for running calls to Do to return and then runs release once.
// Concurrent and repeated calls all block until release has returned.
func (c *CloseWaiter) Close(release func()) {
	if c.closing.CompareAndSwap(false, true) {
		go func() {
			for c.active.Load() != 0 {
				// yield until every in-flight Do has exited
				runtime.Gosched()
			}

			release()

			close(c.closed)
		}()
	}

	<-c.closed
}

// Closed reports whether Close has been called.
func (c *CloseWaiter) Closed() bool {
	return c.closing.Load()
}
