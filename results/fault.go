package results

// FromFault converts a caught fault into an Error with trace appended.
//
// If fault is a deliberately raised exception it keeps its message, trace and payload and
// gains trace as one more entry.  Anything else becomes a new Error whose message is the
// type name of fault, whose trace holds the single entry and whose payload is fault itself.
func FromFault(fault any, trace string) Error[any] {
	if r, ok := fault.(Raised); ok && r.IsException() {
		return r.Erase().WithAdditionalTrace(trace).AsError()
	}
	return NewError[any]("", fault, trace)
}
