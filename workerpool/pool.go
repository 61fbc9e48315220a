// Package workerpool runs work functions on a fixed set of worker goroutines.  Each worker is a separate
// execution context: work functions receive their input as bytes and hand their output back as bytes, so
// nothing but the marshalled payload is shared between the submitter and the worker.
//
// A Pool satisfies the executor's WorkerRunner capability.
package workerpool

import (
	"context"
	"runtime/debug"
	"sync"

	"github.com/abevier/outcome/internal/closewaiter"
	"github.com/abevier/outcome/internal/submit"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// WorkFunc is a payload driven function run on a worker.
type WorkFunc = func(ctx context.Context, payload []byte) ([]byte, error)

type job struct {
	id      string
	payload []byte
	fn      WorkFunc
}

// Pool is a bounded set of workers fed from a queue.
// A Pool must be created with New and released with Close.
type Pool struct {
	log     logrus.FieldLogger
	limiter *rate.Limiter

	taskChan chan submit.TaskFuture[job, []byte]
	submit   submit.Function[job, []byte]

	cw       *closewaiter.CloseWaiter
	waitStop sync.WaitGroup
}

// New starts a Pool with opts.MaxWorkers workers.  New panics if opts are invalid.
func New(opts Opts) *Pool {
	opts.validate()

	p := &Pool{
		log:      opts.logger(),
		limiter:  opts.limiter(),
		taskChan: make(chan submit.TaskFuture[job, []byte], opts.MaxQueueDepth),
		submit:   submit.GetFunction[job, []byte](submit.FullQueueStrategy(opts.FullQueueStrategy)),
		cw:       closewaiter.New(),
	}

	for i := 0; i < opts.MaxWorkers; i++ {
		p.spawn(i)
	}

	return p
}

func (p *Pool) spawn(id int) {
	p.waitStop.Add(1)
	go p.worker(id)
}

func (p *Pool) worker(id int) {
	exited := true
	defer func() {
		// a work function called runtime.Goexit, keep the pool at full size
		if exited {
			p.log.WithField("worker_id", workerID(id)).Warn("worker exited while running a task, restarting it")
			p.spawn(id)
		}
		p.waitStop.Done()
	}()

	for tf := range p.taskChan {
		p.runTask(id, tf)
	}
	exited = false
}

func (p *Pool) runTask(id int, tf submit.TaskFuture[job, []byte]) {
	ctx := withWorkerID(tf.Ctx, id)
	log := p.log.WithFields(logrus.Fields{
		"task_id":   tf.Task.id,
		"worker_id": workerID(id),
	})

	if err := p.limiter.Wait(ctx); err != nil {
		tf.Future.Fail(errors.Wrap(err, "waiting for dispatch slot"))
		return
	}

	returned := false
	defer func() {
		if returned {
			return
		}
		if v := recover(); v != nil {
			log.WithField("panic", v).Debug("work function panicked")
			tf.Future.Fail(&PanicError{Value: v, Stack: string(debug.Stack())})
			return
		}
		tf.Future.Fail(errors.WithStack(ErrWorkerExited))
	}()

	log.Debug("running task")
	out, err := tf.Task.fn(ctx, tf.Task.payload)
	returned = true

	if err != nil {
		tf.Future.Fail(err)
		return
	}
	tf.Future.Complete(out)
}

// Run queues fn to be called with payload on one of the pool's workers and blocks until it returns.
// Run returns ErrStopped once Close has been called, and ErrQueueFull when the queue is full and the
// pool was configured with ErrorWhenFull.  A panic in fn is returned as a *PanicError.
//
// If ctx is done before fn returns, Run returns the context's error without interrupting fn.
func (p *Pool) Run(ctx context.Context, taskID string, payload []byte, fn WorkFunc) ([]byte, error) {
	tf := submit.NewTaskFuture[job, []byte](ctx, job{id: taskID, payload: payload, fn: fn})

	err := p.cw.Do(func() error {
		return p.submit(p.taskChan, tf)
	})
	switch {
	case errors.Is(err, closewaiter.ErrClosed):
		return nil, errors.WithStack(ErrStopped)
	case err != nil:
		return nil, errors.WithStack(err)
	}

	return tf.Future.Get(ctx)
}

// Close stops accepting tasks, lets queued tasks finish and waits for every worker to exit.
// It is safe to call Close more than once.
func (p *Pool) Close() {
	p.cw.Close(func() {
		close(p.taskChan)
	})

	p.waitStop.Wait()
}
