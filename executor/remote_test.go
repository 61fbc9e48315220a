package executor

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/abevier/outcome/results"
	"github.com/abevier/outcome/workerpool"
	"github.com/stretchr/testify/require"
)

type point struct {
	X, Y int
}

type unencodable struct {
	V int
}

func (unencodable) MarshalJSON() ([]byte, error) {
	return nil, errors.New("cannot encode")
}

type undecodable struct {
	V int
}

func (*undecodable) UnmarshalJSON([]byte) error {
	return errors.New("cannot decode")
}

type runnerFunc func(ctx context.Context, taskID string, payload []byte, fn WorkerFunc) ([]byte, error)

func (f runnerFunc) Run(ctx context.Context, taskID string, payload []byte, fn WorkerFunc) ([]byte, error) {
	return f(ctx, taskID, payload, fn)
}

func double(ctx context.Context, n int) (int, error) {
	return n * 2, nil
}

func requireMarshalError[R any](t *testing.T, r results.Result[R], op MarshalOp) {
	require := require.New(t)

	require.True(r.HasError())
	require.Equal("*executor.MarshalError", r.Err().Message())
	require.Len(r.Err().Trace(), 1)

	data, ok := r.Err().Data()
	require.True(ok)

	var me *MarshalError
	require.ErrorAs(data.(error), &me)
	require.Equal(op, me.Op)
}

func TestExecuteRemote(t *testing.T) {
	require := require.New(t)
	ex, _ := newTestExecutor(t)

	r := ExecuteRemote(ex, double, 21, nil)

	require.True(r.HasData())
	require.False(r.HasError())
	require.Equal(42, r.Data())
	require.Nil(r.Err())
}

func TestExecuteRemoteStructs(t *testing.T) {
	require := require.New(t)
	ex, _ := newTestExecutor(t)

	r := ExecuteRemote(ex, func(ctx context.Context, p point) (point, error) {
		return point{X: p.Y, Y: p.X}, nil
	}, point{X: 1, Y: 2}, nil)

	require.Equal(point{X: 2, Y: 1}, r.Data())
}

func TestExecuteRemoteEmpty(t *testing.T) {
	require := require.New(t)
	ex, _ := newTestExecutor(t)

	r := ExecuteRemote(ex, func(ctx context.Context, s string) (results.Empty, error) {
		return results.Empty{}, nil
	}, "x", nil)

	require.True(r.HasData())
}

func TestExecuteRemoteRunsOnWorker(t *testing.T) {
	require := require.New(t)
	ex, _ := newTestExecutor(t)

	r := ExecuteRemote(ex, func(ctx context.Context, _ int) (string, error) {
		id, _ := workerpool.WorkerIDFromContext(ctx)
		return id, nil
	}, 0, nil)

	require.True(strings.HasPrefix(r.Data(), "worker-"))
}

func TestExecuteRemoteException(t *testing.T) {
	require := require.New(t)
	ex, _ := newTestExecutor(t)

	r := ExecuteRemote(ex, func(ctx context.Context, n int) (int, error) {
		return 0, results.NewException("bad input", n, "t0")
	}, 3, nil)

	require.True(r.HasError())
	require.Equal("bad input", r.Err().Message())

	trace := r.Err().Trace()
	require.Len(trace, 2)
	require.Equal("t0", trace[0])

	data, _ := r.Err().Data()
	require.Equal(3, data)
}

func TestExecuteRemoteIncidentalError(t *testing.T) {
	require := require.New(t)
	ex, _ := newTestExecutor(t)

	r := ExecuteRemote(ex, func(ctx context.Context, n int) (int, error) {
		return 0, ErrTest
	}, 1, nil)

	require.Equal("*errors.errorString", r.Err().Message())
	require.Len(r.Err().Trace(), 1)

	data, _ := r.Err().Data()
	require.Equal(ErrTest, data)
}

func TestExecuteRemotePanic(t *testing.T) {
	require := require.New(t)
	ex, _ := newTestExecutor(t)

	r := ExecuteRemote(ex, func(ctx context.Context, n int) (int, error) {
		panic("boom")
	}, 1, nil)

	require.Equal("string", r.Err().Message())
	require.Len(r.Err().Trace(), 1)
	require.Contains(r.Err().Trace()[0], "panic")

	data, _ := r.Err().Data()
	require.Equal("boom", data)
}

func TestExecuteRemoteMarshalFailures(t *testing.T) {
	ex, _ := newTestExecutor(t)

	r := ExecuteRemote(ex, func(ctx context.Context, p unencodable) (int, error) {
		return 1, nil
	}, unencodable{}, nil)
	requireMarshalError(t, r, OpEncodePayload)

	r = ExecuteRemote(ex, func(ctx context.Context, p undecodable) (int, error) {
		return 1, nil
	}, undecodable{}, nil)
	requireMarshalError(t, r, OpDecodePayload)

	encodeResult := ExecuteRemote(ex, func(ctx context.Context, n int) (unencodable, error) {
		return unencodable{V: n}, nil
	}, 1, nil)
	requireMarshalError(t, encodeResult, OpEncodeResult)

	decodeResult := ExecuteRemote(ex, func(ctx context.Context, n int) (undecodable, error) {
		return undecodable{V: n}, nil
	}, 1, nil)
	requireMarshalError(t, decodeResult, OpDecodeResult)
}

func TestExecuteRemoteStoppedRunner(t *testing.T) {
	require := require.New(t)

	pool := workerpool.New(workerpool.Opts{MaxWorkers: 1})
	pool.Close()

	ex := New(Opts{Runner: pool})
	defer ex.Close()

	r := ExecuteRemote(ex, double, 1, nil)
	require.True(r.HasError())
	require.Len(r.Err().Trace(), 1)
	require.Contains(r.Err().Trace()[0], "workerpool")

	_, err := r.Value()
	require.ErrorIs(err, workerpool.ErrStopped)
}

func TestExecuteRemoteFailingRunner(t *testing.T) {
	require := require.New(t)

	ex := New(Opts{Runner: runnerFunc(func(ctx context.Context, taskID string, payload []byte, fn WorkerFunc) ([]byte, error) {
		return nil, ErrTest
	})})

	r := ExecuteRemote(ex, double, 1, nil)
	require.Equal("*errors.errorString", r.Err().Message())
	data, _ := r.Err().Data()
	require.Equal(ErrTest, data)

	ex = New(Opts{Runner: runnerFunc(func(ctx context.Context, taskID string, payload []byte, fn WorkerFunc) ([]byte, error) {
		panic("runner broke")
	})})

	r = ExecuteRemote(ex, double, 1, nil)
	require.Equal("string", r.Err().Message())
	data, _ = r.Err().Data()
	require.Equal("runner broke", data)
}

func TestExecuteRemoteRunnerReceivesPayload(t *testing.T) {
	require := require.New(t)

	var gotID string
	ex := New(Opts{Runner: runnerFunc(func(ctx context.Context, taskID string, payload []byte, fn WorkerFunc) ([]byte, error) {
		gotID = taskID
		require.JSONEq(`{"X":1,"Y":2}`, string(payload))
		return fn(ctx, payload)
	})})

	p := Dispatch(ex, func(ctx context.Context, p point) (int, error) {
		return p.X + p.Y, nil
	}, point{X: 1, Y: 2}, nil)

	r, err := p.Await(context.Background())
	require.NoError(err)
	require.Equal(3, r.Data())
	require.Equal(p.TaskID(), gotID)
}

func TestExecuteRemoteOnError(t *testing.T) {
	require := require.New(t)
	ex, _ := newTestExecutor(t)

	onError := func(fault any, trace string) results.Result[int] {
		return results.Success(-1)
	}

	tasks := []RemoteTask[int, int]{
		func(ctx context.Context, n int) (int, error) { return 0, results.Exception("bad input") },
		func(ctx context.Context, n int) (int, error) { return 0, ErrTest },
		func(ctx context.Context, n int) (int, error) { panic("boom") },
	}

	for _, task := range tasks {
		r := ExecuteRemote(ex, task, 1, onError)
		require.Equal(results.Success(-1), r)
	}

	r := ExecuteRemote(ex, func(ctx context.Context, p unencodable) (int, error) {
		return 1, nil
	}, unencodable{}, onError)
	require.Equal(results.Success(-1), r)
}

func TestExecuteRemoteOnErrorPanicPropagates(t *testing.T) {
	ex, _ := newTestExecutor(t)

	require.PanicsWithValue(t, "handler failed", func() {
		ExecuteRemote(ex, func(ctx context.Context, n int) (int, error) {
			return 0, ErrTest
		}, 1, func(any, string) results.Result[int] {
			panic("handler failed")
		})
	})
}

func TestDispatchAwaitTimeout(t *testing.T) {
	require := require.New(t)
	ex, _ := newTestExecutor(t)

	release := make(chan struct{})
	p := Dispatch(ex, func(ctx context.Context, n int) (int, error) {
		<-release
		return n, nil
	}, 5, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := p.Await(ctx)
	require.ErrorIs(err, context.DeadlineExceeded)

	// the task was not aborted, its late result is still readable
	close(release)
	r, err := p.Await(context.Background())
	require.NoError(err)
	require.Equal(5, r.Data())
}

func TestExecuteRemoteConcurrent(t *testing.T) {
	require := require.New(t)
	ex, _ := newTestExecutor(t)

	wg := sync.WaitGroup{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			r := ExecuteRemote(ex, double, n, nil)
			require.Equal(n*2, r.Data())
		}(i)
	}

	wg.Wait()
}

func TestDispatchTaskIDsAreUnique(t *testing.T) {
	require := require.New(t)
	ex, _ := newTestExecutor(t)

	a := Dispatch(ex, double, 1, nil)
	b := Dispatch(ex, double, 2, nil)
	require.NotEmpty(a.TaskID())
	require.NotEqual(a.TaskID(), b.TaskID())

	_, _ = a.Await(context.Background())
	_, _ = b.Await(context.Background())
}
