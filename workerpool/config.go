package workerpool

import (
	"runtime"
	"time"

	"github.com/abevier/outcome/internal/submit"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// FullQueueStrategy is the behavior that occurs when more tasks are submitted than the queue can hold.
type FullQueueStrategy submit.FullQueueStrategy

const (
	// BlockWhenFull exerts back pressure by blocking the caller until a queue slot frees up.
	BlockWhenFull FullQueueStrategy = FullQueueStrategy(submit.BlockWhenFull)
	// ErrorWhenFull immediately fails the dispatch with ErrQueueFull.
	ErrorWhenFull FullQueueStrategy = FullQueueStrategy(submit.ErrorWhenFull)
)

// A rate limit expressed as N dispatches per second
type Limit = rate.Limit

// Every converts the provided duration into a number of dispatches per second
// for instance Every(100 * time.Millisecond) will yield 10 dispatches per second
func Every(interval time.Duration) Limit {
	return rate.Every(interval)
}

// Opts is used to configure a Pool via the New function.
type Opts struct {
	// MaxWorkers is the number of worker goroutines.
	MaxWorkers int
	// MaxQueueDepth is the number of tasks that can wait for a free worker.
	MaxQueueDepth int
	// FullQueueStrategy determines the pool's behavior when MaxQueueDepth is exceeded.
	// By default the pool will block the caller.
	FullQueueStrategy FullQueueStrategy
	// Limit throttles how many tasks per second the workers start.  Zero means unlimited.
	Limit Limit
	// Burst is the size of the token bucket used when Limit is set.
	Burst int
	// Logger receives worker events.  Defaults to the logrus standard logger.
	Logger logrus.FieldLogger
}

// DefaultOpts returns options for a pool with one worker per CPU.
func DefaultOpts() Opts {
	return Opts{
		MaxWorkers:    runtime.NumCPU(),
		MaxQueueDepth: 64,
	}
}

func (o Opts) validate() {
	if o.MaxWorkers < 1 {
		panic("worker pool max workers must be 1 or greater")
	}

	if o.MaxQueueDepth < 0 {
		panic("worker pool max queue depth must be 0 or greater")
	}

	if o.FullQueueStrategy != BlockWhenFull && o.FullQueueStrategy != ErrorWhenFull {
		panic("worker pool full queue strategy is invalid")
	}

	if o.Limit < 0 {
		panic("worker pool limit must be 0 or greater")
	}

	if o.Limit > 0 && o.Burst < 1 {
		panic("worker pool burst must be 1 or greater when a limit is set")
	}
}

func (o Opts) limiter() *rate.Limiter {
	if o.Limit == 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(o.Limit, o.Burst)
}

func (o Opts) logger() logrus.FieldLogger {
	if o.Logger == nil {
		return logrus.StandardLogger()
	}
	return o.Logger
}
