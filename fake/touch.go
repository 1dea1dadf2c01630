package fake

import (
	"sync"

	"github.com/northvolt/go-libtock/platform"
)

// Driver number, command and slot ids of the touch panel.
const (
	TouchDriverNum platform.DriverNum = 0x90002

	TouchCommandDriverCheck   platform.CommandID = 0
	TouchCommandEnableSingle  platform.CommandID = 1
	TouchCommandDisableSingle platform.CommandID = 2

	TouchUpcallSingle   platform.SubscribeID = 0
	TouchUpcallGestures platform.SubscribeID = 1
	TouchUpcallMulti    platform.SubscribeID = 2
)

// TouchPoint is a single touch reported by the fake touch panel.
type TouchPoint struct {
	Status   uint32
	X, Y     uint16
	Area     uint16
	Pressure uint16
}

func (p TouchPoint) payload() (uint32, uint32, uint32) {
	return p.Status,
		uint32(p.X)<<16 | uint32(p.Y),
		uint32(p.Pressure)<<16 | uint32(p.Area)
}

// Touch is a fake single touch panel.
//
// Touches are only reported while single touch is enabled. A touch queued
// with TouchOnEnable is reported from within the next enable command.
type Touch struct {
	mu  sync.Mutex
	ref *DriverShareRef

	enabled  bool
	onEnable *TouchPoint
}

// NewTouch returns a fake touch panel.
func NewTouch() *Touch {
	return &Touch{}
}

// Info implements SyscallDriver.
func (t *Touch) Info() DriverInfo {
	return DriverInfo{Num: TouchDriverNum, UpcallCount: 3}
}

// Register implements SyscallDriver.
func (t *Touch) Register(ref *DriverShareRef) {
	t.mu.Lock()
	t.ref = ref
	t.mu.Unlock()
}

// IsEnabled reports whether single touch reporting is enabled.
func (t *Touch) IsEnabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enabled
}

// Touch reports a touch. It returns false when single touch is disabled and
// the touch was ignored.
func (t *Touch) Touch(p TouchPoint) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.touch(p)
}

// TouchOnEnable stores a touch to report from within the next enable command.
func (t *Touch) TouchOnEnable(p TouchPoint) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onEnable = &p
}

func (t *Touch) touch(p TouchPoint) bool {
	if !t.enabled {
		return false
	}
	a0, a1, a2 := p.payload()
	t.ref.schedule(TouchUpcallSingle, a0, a1, a2)
	return true
}

// Command implements SyscallDriver.
func (t *Touch) Command(cmd platform.CommandID, _, _ uint32) platform.CommandReturn {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch cmd {
	case TouchCommandDriverCheck:
		return platform.Success()
	case TouchCommandEnableSingle:
		t.enabled = true
		if p := t.onEnable; p != nil {
			t.onEnable = nil
			t.touch(*p)
		}
		return platform.Success()
	case TouchCommandDisableSingle:
		t.enabled = false
		return platform.Success()
	default:
		return platform.Failure(platform.ErrNoSupport)
	}
}
