package workerpool

import (
	"errors"
	"fmt"

	"github.com/abevier/outcome/internal/submit"
)

var (
	ErrQueueFull    = submit.ErrQueueFull
	ErrStopped      = errors.New("worker pool has been stopped")
	ErrWorkerExited = errors.New("worker exited before the task returned")
)

// PanicError carries a value recovered from a panicking work function together with the
// stack of the worker goroutine at the time of the panic.
type PanicError struct {
	Value any
	Stack string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Fault returns the recovered panic value.
func (e *PanicError) Fault() any {
	return e.Value
}

// Trace returns the worker stack captured when the panic was recovered.
func (e *PanicError) Trace() string {
	return e.Stack
}

func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}
