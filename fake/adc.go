package fake

import (
	"sync"

	"github.com/northvolt/go-libtock/platform"
)

// Driver number, command and slot ids of the analog to digital converter.
const (
	AdcDriverNum platform.DriverNum = 0x5

	AdcCommandCount platform.CommandID = 0

	AdcUpcall platform.SubscribeID = 0
)

// Adc is a fake analog to digital converter with a fixed number of channels.
//
// The count command answers with the channel count. Samples are reported with
// Report while a listener is bound.
type Adc struct {
	mu       sync.Mutex
	ref      *DriverShareRef
	channels uint32
}

// NewAdc returns a fake converter with the given number of channels.
func NewAdc(channels uint32) *Adc {
	return &Adc{channels: channels}
}

// Info implements SyscallDriver.
func (a *Adc) Info() DriverInfo {
	return DriverInfo{Num: AdcDriverNum, UpcallCount: 1}
}

// Register implements SyscallDriver.
func (a *Adc) Register(ref *DriverShareRef) {
	a.mu.Lock()
	a.ref = ref
	a.mu.Unlock()
}

// Report delivers a sample with the upcall (value, 0, 0).
func (a *Adc) Report(value int32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ref.schedule(AdcUpcall, uint32(value), 0, 0)
}

// Command implements SyscallDriver.
func (a *Adc) Command(cmd platform.CommandID, _, _ uint32) platform.CommandReturn {
	switch cmd {
	case AdcCommandCount:
		a.mu.Lock()
		defer a.mu.Unlock()
		return platform.SuccessU32(a.channels)
	default:
		return platform.Failure(platform.ErrNoSupport)
	}
}
