// Package results provides the outcome model returned by the executor: a Result that is
// either a success holding a value or a failure holding an Error, and the Error record itself.
package results

// Empty is the success value of tasks that produce nothing.  A success holding Empty is
// distinct from a failure, so "no value" never has to be expressed as an absent value.
type Empty struct{}

// Result holds exactly one of a success value or an Error.
// The zero Result is a success holding the zero value of R.
type Result[R any] struct {
	data R
	err  *Error[any]
}

// Success creates a Result holding val.
func Success[R any](val R) Result[R] {
	return Result[R]{data: val}
}

// Done creates a successful Result for a task that produces no value.
func Done() Result[Empty] {
	return Success(Empty{})
}

// Failure creates a Result holding err.  The payload type of err is erased to any.
func Failure[R any, E any](err Error[E]) Result[R] {
	erased := err.Erase()
	return Result[R]{err: &erased}
}

// HasData reports whether r is a success.
func (r Result[R]) HasData() bool {
	return r.err == nil
}

// HasError reports whether r is a failure.
func (r Result[R]) HasError() bool {
	return r.err != nil
}

// Data returns the success value.  For a failure it returns the zero value of R.
func (r Result[R]) Data() R {
	return r.data
}

// Err returns the failure, or nil for a success.
func (r Result[R]) Err() *Error[any] {
	return r.err
}

// Value returns the success value and a nil error, or the zero value of R and the Error.
func (r Result[R]) Value() (R, error) {
	if r.err != nil {
		return r.data, *r.err
	}
	return r.data, nil
}
