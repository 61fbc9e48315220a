package workerpool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestConfig(t *testing.T) {
	failIfNoPanic := func(f func()) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("")
			}
		}()

		f()
	}

	opts := Opts{MaxWorkers: 0, MaxQueueDepth: 10}
	failIfNoPanic(opts.validate)

	opts = Opts{MaxWorkers: 3, MaxQueueDepth: -1}
	failIfNoPanic(opts.validate)

	opts = Opts{MaxWorkers: 3, FullQueueStrategy: -1}
	failIfNoPanic(opts.validate)

	opts = Opts{MaxWorkers: 3, Limit: -1}
	failIfNoPanic(opts.validate)

	opts = Opts{MaxWorkers: 3, Limit: Every(10 * time.Millisecond), Burst: 0}
	failIfNoPanic(opts.validate)
}

func TestDefaultOpts(t *testing.T) {
	req := require.New(t)

	opts := DefaultOpts()
	req.NotPanics(opts.validate)
	req.GreaterOrEqual(opts.MaxWorkers, 1)
	req.NotNil(opts.logger())
	req.Equal(rate.Inf, opts.limiter().Limit())

	opts.Limit = Every(100 * time.Millisecond)
	opts.Burst = 2
	req.Equal(rate.Limit(10), opts.limiter().Limit())
	req.Equal(2, opts.limiter().Burst())
}
