package executor

import "github.com/abevier/outcome/results"

// LocalTask is a unit of work run on the caller's goroutine.
type LocalTask[R any] func() (R, error)

// ExecuteLocal runs task on the calling goroutine and returns its outcome as a Result.
//
// A value returned with a nil error becomes a success.  A returned error or a panic is passed to
// onError when it is not nil, otherwise it is converted into a failed Result.  A nil e uses Default.
func ExecuteLocal[R any](e *Executor, task LocalTask[R], onError ErrorHandler[R]) results.Result[R] {
	e = orDefault(e)

	v, f := call[R](task)
	if f != nil {
		return resolve(e.log, f, onError)
	}

	return results.Success(v)
}
