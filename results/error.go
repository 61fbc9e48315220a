package results

import (
	"fmt"
	"io"
)

// Kind tags an Error as either an incidental error or a deliberately raised exception.
type Kind uint8

const (
	// KindError marks an error synthesized from a fault or constructed without being raised.
	KindError Kind = iota
	// KindException marks an error deliberately raised by application code.
	KindException
)

func (k Kind) String() string {
	switch k {
	case KindError:
		return "error"
	case KindException:
		return "exception"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Error is a diagnostic record carrying a message, an ordered list of trace entries and an
// optional payload of type E.  An Error is immutable: every method that changes a field
// returns a new Error and leaves the receiver untouched.
//
// Error implements the error interface so tasks can return it or panic with it.  An Error
// with KindException is treated by the executor as a deliberate exception and is kept
// as-is apart from an appended trace entry.
type Error[E any] struct {
	message string
	trace   []string
	data    E
	hasData bool
	kind    Kind
}

// NewError creates an Error carrying data.  An empty message defaults to the type name of data.
func NewError[E any](message string, data E, trace ...string) Error[E] {
	return newError(KindError, message, data, true, trace)
}

// Errorf creates an Error without data whose message is formatted according to format.
func Errorf(format string, args ...any) Error[any] {
	return newError[any](KindError, fmt.Sprintf(format, args...), nil, false, nil)
}

// NewException creates an Exception carrying data.  An empty message defaults to the type name of data.
func NewException[E any](message string, data E, trace ...string) Error[E] {
	return newError(KindException, message, data, true, trace)
}

// Exception creates an Exception without data.
func Exception(message string, trace ...string) Error[any] {
	return newError[any](KindException, message, nil, false, trace)
}

func newError[E any](kind Kind, message string, data E, hasData bool, trace []string) Error[E] {
	if message == "" && hasData {
		message = TypeName(data)
	}

	return Error[E]{
		message: message,
		trace:   append([]string(nil), trace...),
		data:    data,
		hasData: hasData,
		kind:    kind,
	}
}

// TypeName returns the Go type name of v as printed by the %T verb.
func TypeName(v any) string {
	return fmt.Sprintf("%T", v)
}

// Message returns the human readable description of the error.
func (e Error[E]) Message() string {
	return e.message
}

// Trace returns a copy of the trace entries in insertion order.
func (e Error[E]) Trace() []string {
	return append([]string(nil), e.trace...)
}

// Data returns the payload and whether one was set.
func (e Error[E]) Data() (E, bool) {
	return e.data, e.hasData
}

// Kind returns the tag of the error.
func (e Error[E]) Kind() Kind {
	return e.kind
}

// IsException reports whether the error was deliberately raised.
func (e Error[E]) IsException() bool {
	return e.kind == KindException
}

// WithAdditionalTrace returns a copy of e with entries appended to its trace.
func (e Error[E]) WithAdditionalTrace(entries ...string) Error[E] {
	c := e
	c.trace = make([]string, 0, len(e.trace)+len(entries))
	c.trace = append(c.trace, e.trace...)
	c.trace = append(c.trace, entries...)
	return c
}

// AsError returns a copy of e tagged with KindError.  All fields are carried across.
func (e Error[E]) AsError() Error[E] {
	c := e.clone()
	c.kind = KindError
	return c
}

// AsException returns a copy of e tagged with KindException.  All fields are carried across.
func (e Error[E]) AsException() Error[E] {
	c := e.clone()
	c.kind = KindException
	return c
}

// Erase returns a copy of e with its payload held as any.
func (e Error[E]) Erase() Error[any] {
	var data any
	if e.hasData {
		data = e.data
	}

	return Error[any]{
		message: e.message,
		trace:   append([]string(nil), e.trace...),
		data:    data,
		hasData: e.hasData,
		kind:    e.kind,
	}
}

func (e Error[E]) clone() Error[E] {
	c := e
	c.trace = append([]string(nil), e.trace...)
	return c
}

func (e Error[E]) Error() string {
	return e.message
}

// Unwrap returns the payload when it is itself an error.
func (e Error[E]) Unwrap() error {
	if !e.hasData {
		return nil
	}
	err, _ := any(e.data).(error)
	return err
}

// LogFields returns a stable set of fields describing e, suitable for a structured log line.
func (e Error[E]) LogFields() map[string]any {
	fields := map[string]any{
		"message":       e.message,
		"kind":          e.kind.String(),
		"trace_entries": len(e.trace),
	}
	if e.hasData {
		fields["data_type"] = TypeName(e.data)
	}
	return fields
}

// Format implements fmt.Formatter.  %s and %v print the message, %q prints it quoted and
// %+v prints the kind, the message, the payload and every trace entry on its own lines.
func (e Error[E]) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			e.formatVerbose(s)
			return
		}
		_, _ = io.WriteString(s, e.message)
	case 's':
		_, _ = io.WriteString(s, e.message)
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.message)
	default:
		_, _ = fmt.Fprintf(s, "%%!%c(%s)", verb, e.message)
	}
}

func (e Error[E]) formatVerbose(w io.Writer) {
	_, _ = fmt.Fprintf(w, "%s msg=%q", e.kind, e.message)
	if e.hasData {
		_, _ = fmt.Fprintf(w, "\ndata: %v", e.data)
	}
	for i, t := range e.trace {
		_, _ = fmt.Fprintf(w, "\ntrace (%d/%d):\n%s", i+1, len(e.trace), t)
	}
}

// Raised is satisfied by every Error regardless of its payload type.  It lets code that only
// holds an error or a recovered panic value inspect the tag and erase the payload type.
type Raised interface {
	error
	IsException() bool
	Erase() Error[any]
}

var _ Raised = Error[any]{}
