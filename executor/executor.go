package executor

import (
	"sync"

	"github.com/abevier/outcome/results"
	"github.com/abevier/outcome/workerpool"
	"github.com/sirupsen/logrus"
)

// ErrorHandler replaces the default conversion of a fault into a failed Result.  It receives the
// fault, which is either the error the task returned or the value it panicked with, and the trace
// entry captured for it.  Its return value is handed back to the caller as-is.
type ErrorHandler[R any] func(fault any, trace string) results.Result[R]

// Opts is used to configure an Executor via the New function.
type Opts struct {
	// Runner runs remote tasks.  When nil the Executor starts its own workerpool.Pool with
	// workerpool.DefaultOpts and stops it on Close.
	Runner WorkerRunner
	// Codec marshals remote payloads and results.  Defaults to JSON.
	Codec Codec
	// Logger receives task events.  Defaults to the logrus standard logger.
	Logger logrus.FieldLogger
}

// Executor holds the collaborators shared by every task it runs.  Tasks themselves share nothing:
// each call produces its own Result.
type Executor struct {
	runner WorkerRunner
	owned  *workerpool.Pool
	codec  Codec
	log    logrus.FieldLogger
}

// New creates an Executor from opts.
func New(opts Opts) *Executor {
	e := &Executor{
		runner: opts.Runner,
		codec:  opts.Codec,
		log:    opts.Logger,
	}

	if e.log == nil {
		e.log = logrus.StandardLogger()
	}

	if e.codec == nil {
		e.codec = JSON
	}

	if e.runner == nil {
		po := workerpool.DefaultOpts()
		po.Logger = e.log
		e.owned = workerpool.New(po)
		e.runner = e.owned
	}

	return e
}

// Close stops the worker pool the Executor started, if any.  A Runner passed in Opts is left alone.
func (e *Executor) Close() {
	if e.owned != nil {
		e.owned.Close()
	}
}

var defaultExecutor = sync.OnceValue(func() *Executor {
	return New(Opts{})
})

// Default returns the process wide Executor used when a nil *Executor is passed to the package functions.
func Default() *Executor {
	return defaultExecutor()
}

func orDefault(e *Executor) *Executor {
	if e == nil {
		return Default()
	}
	return e
}
