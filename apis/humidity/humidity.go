// Package humidity is the client for the humidity sensor driver.
package humidity

import "github.com/northvolt/go-libtock/platform"

// Driver number, command and slot ids.
const (
	DriverNum platform.DriverNum = 0x60001

	commandExists platform.CommandID = 0
	commandRead   platform.CommandID = 1

	upcallReading platform.SubscribeID = 0
)

// Listener is called with a humidity reading in hundredths of a percent.
type Listener func(humidity uint32)

// Upcall implements platform.Upcall.
func (l Listener) Upcall(humidity, _, _ uint32) {
	l(humidity)
}

// Humidity reads relative humidity.
type Humidity struct {
	s platform.Syscalls
}

// New returns a client using s.
func New(s platform.Syscalls) *Humidity {
	return &Humidity{s}
}

// Exists returns nil if the driver is present. This does not necessarily mean
// that the sensor is working.
func (h *Humidity) Exists() error {
	return h.s.Command(DriverNum, commandExists, 0, 0).Err()
}

// Read starts a measurement. The result is delivered to the registered
// listener.
func (h *Humidity) Read() error {
	return h.s.Command(DriverNum, commandRead, 0, 0).Err()
}

// Handle reserves the listener slot of the driver in sc.
func (h *Humidity) Handle(sc *platform.Scope) platform.SubscribeHandle {
	return sc.SubscribeHandle(DriverNum, upcallReading)
}

// RegisterListener registers l for measurement results. The listener stays
// bound until the scope owning sub exits.
func (h *Humidity) RegisterListener(sub platform.SubscribeHandle, l platform.Upcall) error {
	return sub.Subscribe(l)
}

// ReadSync measures and returns the humidity in hundredths of a percent.
func (h *Humidity) ReadSync() (uint32, error) {
	p, err := platform.AwaitCommand(h.s, DriverNum, upcallReading, commandRead, 0, 0)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}
