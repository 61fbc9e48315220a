package executor

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/abevier/outcome/results"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// fault is a caught fault and the trace entry captured where it was caught.
type fault struct {
	value any
	trace string
}

func (f *fault) Error() string {
	return fmt.Sprintf("%v", f.value)
}

func (f *fault) Fault() any {
	return f.value
}

func (f *fault) Trace() string {
	return f.trace
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// caught turns an error returned by a task or a runner into a fault.  Errors that already carry a
// fault keep their original trace; errors carrying a stack use it; anything else gets the stack of
// the catch site.
func caught(err error) *fault {
	switch e := err.(type) {
	case TracedFault:
		return &fault{value: e.Fault(), trace: e.Trace()}
	case stackTracer:
		return &fault{value: err, trace: strings.TrimPrefix(fmt.Sprintf("%+v", e.StackTrace()), "\n")}
	default:
		return &fault{value: err, trace: string(debug.Stack())}
	}
}

// call runs task and returns its value, or the fault it returned or panicked with.
func call[R any](task func() (R, error)) (val R, f *fault) {
	returned := false
	defer func() {
		if returned {
			return
		}
		// nil means runtime.Goexit, which cannot be stopped
		if v := recover(); v != nil {
			f = &fault{value: v, trace: string(debug.Stack())}
		}
	}()

	val, err := task()
	returned = true

	if err != nil {
		return val, caught(err)
	}
	return val, nil
}

func resolve[R any](log logrus.FieldLogger, f *fault, onError ErrorHandler[R]) results.Result[R] {
	if onError != nil {
		log.WithField("fault_type", results.TypeName(f.value)).Debug("task failed, delegating to error handler")
		return onError(f.value, f.trace)
	}

	err := results.FromFault(f.value, f.trace)
	log.WithFields(err.LogFields()).Debug("task failed")
	return results.Failure[R](err)
}
