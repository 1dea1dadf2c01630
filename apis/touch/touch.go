// Package touch is the client for the touch panel driver.
package touch

import (
	"fmt"

	"github.com/northvolt/go-libtock/platform"
)

// Driver number, command and slot ids.
const (
	DriverNum platform.DriverNum = 0x90002

	commandDriverCheck   platform.CommandID = 0
	commandEnableSingle  platform.CommandID = 1
	commandDisableSingle platform.CommandID = 2

	upcallSingle   platform.SubscribeID = 0
	upcallGestures platform.SubscribeID = 1
)

// Status is the state of a touch.
type Status int

const (
	Unstarted Status = iota
	Pressed
	Released
	Moved
)

func statusFromUint32(v uint32) Status {
	switch v {
	case 0:
		return Released
	case 1:
		return Pressed
	case 2:
		return Moved
	default:
		return Unstarted
	}
}

func (s Status) String() string {
	switch s {
	case Pressed:
		return "pressed"
	case Released:
		return "released"
	case Moved:
		return "moved"
	default:
		return "unstarted"
	}
}

// Event is a single touch.
type Event struct {
	Status Status
	X, Y   uint16

	// Area is a scaled size of the touch, larger for a fatter touch. Zero if
	// the panel does not report it.
	Area uint16
	// Pressure is a scaled pressure of the touch, larger for a firmer press.
	// Zero if the panel does not report it.
	Pressure uint16
}

// DecodeEvent decodes the payload of a single touch upcall.
func DecodeEvent(p platform.Payload) Event {
	return Event{
		Status:   statusFromUint32(p[0]),
		X:        uint16(p[1] >> 16),
		Y:        uint16(p[1]),
		Area:     uint16(p[2]),
		Pressure: uint16(p[2] >> 16),
	}
}

func (e Event) String() string {
	return fmt.Sprintf("%s at (%d, %d)", e.Status, e.X, e.Y)
}

// Gesture is a gesture reported by the panel.
type Gesture int

const (
	SwipeUp Gesture = iota + 1
	SwipeDown
	SwipeLeft
	SwipeRight
	ZoomIn
	ZoomOut
)

func (g Gesture) String() string {
	switch g {
	case SwipeUp:
		return "swipe up"
	case SwipeDown:
		return "swipe down"
	case SwipeLeft:
		return "swipe left"
	case SwipeRight:
		return "swipe right"
	case ZoomIn:
		return "zoom in"
	case ZoomOut:
		return "zoom out"
	default:
		return fmt.Sprintf("gesture %d", int(g))
	}
}

// Listener is called for every single touch event.
type Listener func(Event)

// Upcall implements platform.Upcall.
func (l Listener) Upcall(a0, a1, a2 uint32) {
	l(DecodeEvent(platform.Payload{a0, a1, a2}))
}

// GestureListener is called for every gesture.
type GestureListener func(Gesture)

// Upcall implements platform.Upcall.
func (l GestureListener) Upcall(gesture, _, _ uint32) {
	l(Gesture(gesture))
}

// Touch reads a touch panel.
type Touch struct {
	s platform.Syscalls
}

// New returns a client using s.
func New(s platform.Syscalls) *Touch {
	return &Touch{s}
}

// Exists returns nil if the driver is present.
func (t *Touch) Exists() error {
	return t.s.Command(DriverNum, commandDriverCheck, 0, 0).Err()
}

// EnableSingleTouch starts reporting single touch events.
func (t *Touch) EnableSingleTouch() error {
	return t.s.Command(DriverNum, commandEnableSingle, 0, 0).Err()
}

// DisableSingleTouch stops reporting single touch events.
func (t *Touch) DisableSingleTouch() error {
	return t.s.Command(DriverNum, commandDisableSingle, 0, 0).Err()
}

// RegisterSingleTouchListener binds l to single touch events for the rest of
// the scope.
func (t *Touch) RegisterSingleTouchListener(sc *platform.Scope, l platform.Upcall) error {
	return sc.Subscribe(DriverNum, upcallSingle, l)
}

// RegisterGestureListener binds l to gesture events for the rest of the scope.
func (t *Touch) RegisterGestureListener(sc *platform.Scope, l platform.Upcall) error {
	return sc.Subscribe(DriverNum, upcallGestures, l)
}

// WaitForSingleTouch enables single touch reporting, waits for the next touch
// and disables reporting again.
func (t *Touch) WaitForSingleTouch() (Event, error) {
	p, err := platform.Await(t.s, DriverNum, upcallSingle, func(*platform.Scope) error {
		return t.EnableSingleTouch()
	})
	if derr := t.DisableSingleTouch(); err == nil {
		err = derr
	}
	if err != nil {
		return Event{}, err
	}
	return DecodeEvent(p), nil
}
