// Package executor runs a task and turns its outcome into a results.Result instead of letting a
// fault escape.  A task faults by returning a non-nil error or by panicking; both are caught at a
// single seam and converted the same way:
//
//   - a deliberately raised exception (a results.Error tagged KindException) keeps its message,
//     trace and payload and gains one trace entry describing where it was caught;
//   - any other fault becomes a new results.Error named after the fault's type, holding one trace
//     entry and the fault itself as payload.
//
// A caller supplied ErrorHandler replaces that conversion entirely.  A panic raised by the handler
// is not caught.
//
// ExecuteLocal runs the task on the calling goroutine.  ExecuteRemote and Dispatch hand it to a
// WorkerRunner, marshalling the payload in and the result out with a Codec, so the task must be
// driven by its payload alone: it must not rely on state captured from the caller such as open
// handles or shared mutable values.  Failures to marshal, or a runner that cannot start the task,
// come back as ordinary faults.
//
// There is no cancellation.  A caller that needs a deadline can Dispatch the task and Await it with
// a context; giving up discards the late result but does not stop the task.
package executor
