// Package soundpressure is the client for the sound pressure sensor driver.
package soundpressure

import "github.com/northvolt/go-libtock/platform"

// Driver number, command and slot ids.
const (
	DriverNum platform.DriverNum = 0x60006

	commandExists platform.CommandID = 0
	commandRead   platform.CommandID = 1

	upcallReading platform.SubscribeID = 0
)

// Listener is called with a sound pressure reading.
type Listener func(pressure int32)

// Upcall implements platform.Upcall.
func (l Listener) Upcall(pressure, _, _ uint32) {
	l(int32(pressure))
}

// SoundPressure reads sound pressure.
type SoundPressure struct {
	s platform.Syscalls
}

// New returns a client using s.
func New(s platform.Syscalls) *SoundPressure {
	return &SoundPressure{s}
}

// Exists returns nil if the driver is present.
func (p *SoundPressure) Exists() error {
	return p.s.Command(DriverNum, commandExists, 0, 0).Err()
}

// Read starts a measurement.
func (p *SoundPressure) Read() error {
	return p.s.Command(DriverNum, commandRead, 0, 0).Err()
}

// Handle reserves the listener slot of the driver in sc.
func (p *SoundPressure) Handle(sc *platform.Scope) platform.SubscribeHandle {
	return sc.SubscribeHandle(DriverNum, upcallReading)
}

// RegisterListener registers l for measurement results.
func (p *SoundPressure) RegisterListener(sub platform.SubscribeHandle, l platform.Upcall) error {
	return sub.Subscribe(l)
}

// ReadSync measures and returns the sound pressure.
func (p *SoundPressure) ReadSync() (int32, error) {
	r, err := platform.AwaitCommand(p.s, DriverNum, upcallReading, commandRead, 0, 0)
	if err != nil {
		return 0, err
	}
	return int32(r[0]), nil
}
