package pool

import "unsafe"

// Threshold is the largest payload size, in bytes, served by ClassSmall.
const Threshold = 42

// Class identifies a pool size class.
type Class uint8

const (
	// ClassSmall serves payloads of at most Threshold bytes.
	ClassSmall Class = iota
	// ClassLarge serves everything bigger.
	ClassLarge

	numClasses = 2
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case ClassSmall:
		return "small"
	case ClassLarge:
		return "large"
	default:
		return "unknown"
	}
}

// Valid reports whether c is one of the defined classes.
func (c Class) Valid() bool {
	return c < numClasses
}

// Classes returns every defined class in ascending size order.
func Classes() []Class {
	return []Class{ClassSmall, ClassLarge}
}

// SelectClass maps a payload byte size to its pool class.
// A payload of exactly Threshold bytes is small.
func SelectClass(size uintptr) Class {
	if size <= Threshold {
		return ClassSmall
	}
	return ClassLarge
}

// ClassFor returns the pool class for payload type P.
func ClassFor[P any]() Class {
	var zero P
	return SelectClass(unsafe.Sizeof(zero))
}
