package dispatch

import "fmt"

// UsageError reports command-line input that does not map onto an Operation.
// Usage carries the generated usage text of the command that rejected the input, when known.
type UsageError struct {
	Msg   string
	Usage string
}

func (e *UsageError) Error() string {
	return e.Msg
}

// HandlerError wraps a failure returned by an operation's handler.
type HandlerError struct {
	Op  Operation
	Err error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}
