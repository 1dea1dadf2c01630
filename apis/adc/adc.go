// Package adc is the client for the analog to digital converter driver.
package adc

import "github.com/northvolt/go-libtock/platform"

// Driver number, command and slot ids.
const (
	DriverNum platform.DriverNum = 0x5

	commandCount platform.CommandID = 0

	upcallSample platform.SubscribeID = 0
)

// Listener is called with a sample.
type Listener func(value int32)

// Upcall implements platform.Upcall.
func (l Listener) Upcall(value, _, _ uint32) {
	l(int32(value))
}

// Adc reads analog channels.
type Adc struct {
	s platform.Syscalls
}

// New returns a client using s.
func New(s platform.Syscalls) *Adc {
	return &Adc{s}
}

// Count returns the number of channels.
//
// Any answer other than a success carrying a value is reported as ErrFail.
func (a *Adc) Count() (uint32, error) {
	n, ok := a.s.Command(DriverNum, commandCount, 0, 0).SuccessU32()
	if !ok {
		return 0, platform.ErrFail
	}
	return n, nil
}

// Exists returns nil if the driver is present and has at least one channel.
func (a *Adc) Exists() error {
	n, err := a.Count()
	if err != nil {
		return err
	}
	if n < 1 {
		return platform.ErrFail
	}
	return nil
}

// Handle reserves the listener slot of the driver in sc.
func (a *Adc) Handle(sc *platform.Scope) platform.SubscribeHandle {
	return sc.SubscribeHandle(DriverNum, upcallSample)
}

// RegisterListener registers l for samples. The listener stays bound until
// the scope owning sub exits.
func (a *Adc) RegisterListener(sub platform.SubscribeHandle, l platform.Upcall) error {
	return sub.Subscribe(l)
}
