package typedevent

import "fmt"

// PayloadOf recovers the payload of ev as P.
// It reports false when ev is not a TypedEvent[P], so a payload can never be
// read under the wrong type.
func PayloadOf[P Payload](ev Event) (P, bool) {
	te, ok := ev.(*TypedEvent[P])
	if !ok || te == nil {
		var zero P
		return zero, false
	}
	return te.payload, true
}

// Visitor receives the recovered payload of an event.
// Default is called for signals without a payload and for unknown signals.
type Visitor interface {
	ButtonPressed(ev Event, mask ButtonMask)
	XYRawData(ev Event, xy XYData)
	HIDPP(ev Event, msg HIDPPPayload)
	Default(ev Event)
}

// Visit switches on ev's signal and calls the matching Visitor method with
// the typed payload.
func Visit(ev Event, v Visitor) {
	switch ev.Signal() {
	case SignalButtonPressed:
		if p, ok := PayloadOf[ButtonMask](ev); ok {
			v.ButtonPressed(ev, p)
			return
		}
	case SignalXYRawData:
		if p, ok := PayloadOf[XYData](ev); ok {
			v.XYRawData(ev, p)
			return
		}
	case SignalHIDPP:
		if p, ok := PayloadOf[HIDPPPayload](ev); ok {
			v.HIDPP(ev, p)
			return
		}
	}
	v.Default(ev)
}

// VisitorFuncs adapts optional functions to the Visitor interface.
// A nil field falls through to OnDefault; a nil OnDefault does nothing.
type VisitorFuncs struct {
	OnButtonPressed func(ev Event, mask ButtonMask)
	OnXYRawData     func(ev Event, xy XYData)
	OnHIDPP         func(ev Event, msg HIDPPPayload)
	OnDefault       func(ev Event)
}

// ButtonPressed implements Visitor.
func (v VisitorFuncs) ButtonPressed(ev Event, mask ButtonMask) {
	if v.OnButtonPressed == nil {
		v.Default(ev)
		return
	}
	v.OnButtonPressed(ev, mask)
}

// XYRawData implements Visitor.
func (v VisitorFuncs) XYRawData(ev Event, xy XYData) {
	if v.OnXYRawData == nil {
		v.Default(ev)
		return
	}
	v.OnXYRawData(ev, xy)
}

// HIDPP implements Visitor.
func (v VisitorFuncs) HIDPP(ev Event, msg HIDPPPayload) {
	if v.OnHIDPP == nil {
		v.Default(ev)
		return
	}
	v.OnHIDPP(ev, msg)
}

// Default implements Visitor.
func (v VisitorFuncs) Default(ev Event) {
	if v.OnDefault != nil {
		v.OnDefault(ev)
	}
}

// NoData is the data text for events without a payload.
const NoData = "N/A"

// Describe renders ev as a single diagnostic line:
//
//	Event pool:1 signal:1 data:42
//
// pool and signal are the numeric Origin and Signal values.
func Describe(ev Event) string {
	data := NoData
	Visit(ev, VisitorFuncs{
		OnButtonPressed: func(_ Event, mask ButtonMask) {
			data = fmt.Sprintf("%d", mask)
		},
		OnXYRawData: func(_ Event, xy XYData) {
			data = fmt.Sprintf("x:%d y:%d", xy.X, xy.Y)
		},
		OnHIDPP: func(_ Event, msg HIDPPPayload) {
			data = fmt.Sprintf("deviceIdx:%d", msg.DeviceIdx)
		},
	})
	return fmt.Sprintf("Event pool:%d signal:%d data:%s", ev.Origin(), ev.Signal(), data)
}
