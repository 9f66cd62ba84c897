package pool

import (
	"errors"
	"fmt"
)

// Sentinel errors for acquisition.
var (
	// ErrPoolExhausted indicates every block of the class is in use.
	ErrPoolExhausted = errors.New("pool exhausted")

	// ErrBlockTooLarge indicates the requested size exceeds the class block size.
	ErrBlockTooLarge = errors.New("requested size exceeds block size")

	// ErrUnknownClass indicates a class outside the defined set.
	ErrUnknownClass = errors.New("unknown pool class")
)

// Sentinel errors for release.
var (
	// ErrInvalidBlock indicates a zero Block that never came from Acquire.
	ErrInvalidBlock = errors.New("invalid block")

	// ErrForeignBlock indicates a block released to a manager that did not issue it.
	ErrForeignBlock = errors.New("block belongs to another pool")

	// ErrDoubleRelease indicates the block was already returned.
	ErrDoubleRelease = errors.New("block already released")
)

// ErrInvalidConfig indicates a non-positive block size or capacity.
var ErrInvalidConfig = errors.New("invalid pool configuration")

// AllocationError describes a failed Acquire.
type AllocationError struct {
	// Class is the pool class that was asked.
	Class Class
	// Size is the requested size in bytes.
	Size uintptr
	// Err is the underlying cause (ErrPoolExhausted, ErrBlockTooLarge, ErrUnknownClass).
	Err error
}

// Error implements the error interface.
func (e *AllocationError) Error() string {
	return fmt.Sprintf("acquire %d bytes from %s pool: %v", e.Size, e.Class, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *AllocationError) Unwrap() error {
	return e.Err
}
