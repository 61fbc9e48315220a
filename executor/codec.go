package executor

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// Codec marshals task payloads and results across the worker boundary.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// JSON is the default Codec.
var JSON Codec = jsoniter.ConfigCompatibleWithStandardLibrary

// MarshalOp names the step of a remote dispatch that failed to marshal.
type MarshalOp string

const (
	OpEncodePayload MarshalOp = "encode payload"
	OpDecodePayload MarshalOp = "decode payload"
	OpEncodeResult  MarshalOp = "encode result"
	OpDecodeResult  MarshalOp = "decode result"
)

// MarshalError is the fault reported when a payload or a result cannot cross the worker boundary.
type MarshalError struct {
	Op  MarshalOp
	Err error
}

func (e *MarshalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *MarshalError) Unwrap() error {
	return e.Err
}
