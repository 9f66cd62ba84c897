package typedevent

import (
	"errors"
	"fmt"
)

// Sentinel errors for event lifecycle.
var (
	// ErrAlreadyReleased indicates Retain or Release on a pooled event whose
	// reference count already reached zero.
	ErrAlreadyReleased = errors.New("event already released")

	// ErrPayloadRequired indicates a payload-less construction for a signal
	// that carries a payload.
	ErrPayloadRequired = errors.New("signal requires a payload")

	// ErrNilFactory indicates a factory call on a nil *Factory.
	ErrNilFactory = errors.New("factory is nil")
)

// EventError wraps a failed factory or release call with its signal.
type EventError struct {
	// Signal is the signal of the event being built or released.
	Signal Signal
	// Op is the operation that failed ("make", "release").
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *EventError) Error() string {
	return fmt.Sprintf("%s %s event: %v", e.Op, e.Signal, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *EventError) Unwrap() error {
	return e.Err
}
