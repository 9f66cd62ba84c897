package typedevent

// Payload is implemented by every type that can ride on a TypedEvent.
//
// The set is closed: each payload type names its own signal, so a signal
// can never be paired with a payload type other than the one below.
//
//	Signal               Payload
//	SignalButtonPressed  ButtonMask
//	SignalXYRawData      XYData
//	SignalHIDPP          HIDPPPayload
type Payload interface {
	// Signal returns the signal bound to this payload type.
	Signal() Signal

	payload()
}

// ButtonMask is a bit set of pressed buttons.
type ButtonMask uint32

// Signal implements Payload.
func (ButtonMask) Signal() Signal { return SignalButtonPressed }

func (ButtonMask) payload() {}

// XYData is a raw pointer-device coordinate sample.
type XYData struct {
	X int32
	Y int32
}

// Signal implements Payload.
func (XYData) Signal() Signal { return SignalXYRawData }

func (XYData) payload() {}

// HIDPPLongParamsSize is the parameter length of a long HID++ 2.0 report.
const HIDPPLongParamsSize = 55

// HIDPPPayload is a long HID++ 2.0 protocol message.
// At 58 bytes it is always served by the large pool.
type HIDPPPayload struct {
	DeviceIdx     uint8
	FeatureIdx    uint8
	FuncIndexSwID uint8
	MethodParams  [HIDPPLongParamsSize]uint8
}

// Signal implements Payload.
func (HIDPPPayload) Signal() Signal { return SignalHIDPP }

func (HIDPPPayload) payload() {}

// Compile-time checks that the table is complete.
var (
	_ Payload = ButtonMask(0)
	_ Payload = XYData{}
	_ Payload = HIDPPPayload{}
)
