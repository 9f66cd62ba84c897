package typedevent

import "github.com/randalmurphal/typedevent/pkg/typedevent/pool"

// Signal identifies an event's semantic kind.
// It is the only discriminant consumers need to recover a payload.
type Signal uint8

// Signal values. The numeric order is stable.
const (
	SignalInvalid Signal = iota
	SignalButtonPressed
	SignalTimerExpired
	SignalXYRawData
	SignalHIDPP
)

// String returns the signal name.
func (s Signal) String() string {
	switch s {
	case SignalInvalid:
		return "Invalid"
	case SignalButtonPressed:
		return "ButtonPressed"
	case SignalTimerExpired:
		return "TimerExpired"
	case SignalXYRawData:
		return "XYRawData"
	case SignalHIDPP:
		return "HIDPP"
	default:
		return "Unknown"
	}
}

// HasPayload reports whether events of this signal carry a payload.
// Payload-carrying signals can only be built as TypedEvent.
func (s Signal) HasPayload() bool {
	switch s {
	case SignalButtonPressed, SignalXYRawData, SignalHIDPP:
		return true
	}
	return false
}

// Origin records where an event's storage came from.
type Origin uint8

const (
	// OriginStatic marks events built with NewEvent or NewTypedEvent.
	OriginStatic Origin = iota
	// OriginSmall marks events backed by a small-class block.
	OriginSmall
	// OriginLarge marks events backed by a large-class block.
	OriginLarge
)

// String returns the origin name.
func (o Origin) String() string {
	switch o {
	case OriginStatic:
		return "static"
	case OriginSmall:
		return "small"
	case OriginLarge:
		return "large"
	default:
		return "unknown"
	}
}

// Pooled reports whether the origin is a pool class.
func (o Origin) Pooled() bool {
	return o == OriginSmall || o == OriginLarge
}

// OriginOf maps a pool class to the origin stamped on events it backs.
func OriginOf(c pool.Class) Origin {
	if c == pool.ClassLarge {
		return OriginLarge
	}
	return OriginSmall
}
