package executor

import (
	"context"

	"github.com/abevier/outcome/futures"
	"github.com/abevier/outcome/results"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RemoteTask is a unit of work driven by a single payload and run on a worker.  The context carries
// values the runner attaches, such as the worker id from a workerpool.Pool.
type RemoteTask[Q any, R any] func(ctx context.Context, payload Q) (R, error)

// Pending is a remote task that has been dispatched and whose outcome has not been read yet.
type Pending[R any] struct {
	id      string
	log     logrus.FieldLogger
	future  *futures.Future[R]
	onError ErrorHandler[R]
}

// TaskID returns the id the task was dispatched under.
func (p *Pending[R]) TaskID() string {
	return p.id
}

// Await blocks until the task settles and returns its outcome as a Result.  Faults are converted or
// handed to the ErrorHandler on the calling goroutine, so a panic in the handler surfaces here.
//
// If ctx is done first, Await returns the context's error and a zero Result.  The task keeps running
// and its outcome can still be read by a later call to Await.
func (p *Pending[R]) Await(ctx context.Context) (results.Result[R], error) {
	select {
	case <-p.future.Done():
	case <-ctx.Done():
		p.log.Debug("stopped waiting for task")
		return results.Result[R]{}, ctx.Err()
	}

	v, err := p.future.Get(context.Background())
	if err != nil {
		return resolve(p.log, caught(err), p.onError), nil
	}
	return results.Success(v), nil
}

// Dispatch marshals payload and hands task to the Executor's WorkerRunner without waiting for it.
// A nil e uses Default.
func Dispatch[Q any, R any](e *Executor, task RemoteTask[Q, R], payload Q, onError ErrorHandler[R]) *Pending[R] {
	e = orDefault(e)

	p := &Pending[R]{
		id:      uuid.NewString(),
		future:  futures.New[R](),
		onError: onError,
	}
	p.log = e.log.WithField("task_id", p.id)

	in, err := e.codec.Marshal(payload)
	if err != nil {
		p.future.Fail(caught(&MarshalError{Op: OpEncodePayload, Err: err}))
		return p
	}

	p.log.Debug("dispatching task")
	go func() {
		r, f := call(func() (R, error) {
			out, err := e.runner.Run(context.Background(), p.id, in, work(e.codec, task))
			if err != nil {
				return *new(R), err
			}

			var r R
			if err := e.codec.Unmarshal(out, &r); err != nil {
				return r, &MarshalError{Op: OpDecodeResult, Err: err}
			}
			return r, nil
		})
		if f != nil {
			p.future.Fail(f)
			return
		}
		p.future.Complete(r)
	}()

	return p
}

// ExecuteRemote runs task with payload on a worker and waits for its outcome.  It follows the same
// conversion rules as ExecuteLocal; marshalling failures and runner failures are faults as well.
// A nil e uses Default.
func ExecuteRemote[Q any, R any](e *Executor, task RemoteTask[Q, R], payload Q, onError ErrorHandler[R]) results.Result[R] {
	res, _ := Dispatch(e, task, payload, onError).Await(context.Background())
	return res
}

// work adapts task into a WorkerFunc that decodes its payload, runs it and encodes its result.
// Faults are caught on the worker so their trace describes the worker's stack.
func work[Q any, R any](codec Codec, task RemoteTask[Q, R]) WorkerFunc {
	return func(ctx context.Context, in []byte) ([]byte, error) {
		r, f := call(func() (R, error) {
			var q Q
			if err := codec.Unmarshal(in, &q); err != nil {
				return *new(R), &MarshalError{Op: OpDecodePayload, Err: err}
			}
			return task(ctx, q)
		})
		if f != nil {
			return nil, f
		}

		out, err := codec.Marshal(r)
		if err != nil {
			return nil, caught(&MarshalError{Op: OpEncodeResult, Err: err})
		}
		return out, nil
	}
}
