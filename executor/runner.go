package executor

import (
	"context"

	"github.com/abevier/outcome/workerpool"
)

// WorkerFunc is a payload driven function that a WorkerRunner runs on another execution context.
type WorkerFunc = func(ctx context.Context, payload []byte) ([]byte, error)

// WorkerRunner is the capability the host provides for running work outside the caller's execution
// context.  Run calls fn with payload on a worker and returns its output, or an error when fn failed
// or could not be started.  Errors implementing TracedFault are unpacked into their fault and trace.
type WorkerRunner interface {
	Run(ctx context.Context, taskID string, payload []byte, fn WorkerFunc) ([]byte, error)
}

// TracedFault is an error carrying a fault that occurred elsewhere, typically on a worker, together
// with the trace captured where it occurred.
type TracedFault interface {
	error
	Fault() any
	Trace() string
}

var (
	_ WorkerRunner = (*workerpool.Pool)(nil)
	_ TracedFault  = (*workerpool.PanicError)(nil)
	_ TracedFault  = (*fault)(nil)
)
