package workerpool

import (
	"context"
	"strconv"
)

type workerIDKey struct{}

func workerID(id int) string {
	return "worker-" + strconv.Itoa(id)
}

func withWorkerID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, workerIDKey{}, workerID(id))
}

// WorkerIDFromContext attempts to retrieve a worker id string from the current context.
// The worker id string is added to the current context by the Pool before invoking the work
// function. This id can be useful for logging.
func WorkerIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(workerIDKey{}).(string)
	return v, ok
}
