// Package rng is the client for the random number generator driver.
package rng

import "github.com/northvolt/go-libtock/platform"

// Driver number, command and slot ids.
const (
	DriverNum platform.DriverNum = 0x40001

	commandExists          platform.CommandID = 0
	commandAskForRandBytes platform.CommandID = 1

	allowBuffer platform.BufferID    = 0
	upcallDone  platform.SubscribeID = 0
)

// Rng generates random bytes using the kernel's random number generator.
type Rng struct {
	s platform.Syscalls
}

// New returns a client using s.
func New(s platform.Syscalls) *Rng {
	return &Rng{s}
}

// Exists returns nil if the driver is present.
func (r *Rng) Exists() error {
	return r.s.Command(DriverNum, commandExists, 0, 0).Err()
}

// Handles reserves the buffer and listener slots of the driver in sc.
func (r *Rng) Handles(sc *platform.Scope) (platform.AllowHandle, platform.SubscribeHandle) {
	return sc.AllowHandle(DriverNum, allowBuffer), sc.SubscribeHandle(DriverNum, upcallDone)
}

// SetBuffer shares buf as the destination for random bytes.
func (r *Rng) SetBuffer(h platform.AllowHandle, buf []byte) error {
	return h.Allow(buf)
}

// RegisterListener registers l to be called when generation has finished.
//
// The listener receives (0, bytes written, 0).
func (r *Rng) RegisterListener(h platform.SubscribeHandle, l platform.Upcall) error {
	return h.Subscribe(l)
}

// GetRandom starts generating n random bytes.
//
// A buffer and listener should be registered before.
func (r *Rng) GetRandom(n uint32) error {
	return r.s.Command(DriverNum, commandAskForRandBytes, n, 0).Err()
}

// GetRandomSync writes n random bytes into buf and returns the number of bytes
// written.
//
// If buf is shorter than n, the driver fills buf and reports len(buf).
func (r *Rng) GetRandomSync(buf []byte, n uint32) (uint32, error) {
	p, err := platform.Await(r.s, DriverNum, upcallDone, func(sc *platform.Scope) error {
		if err := sc.AllowReadWrite(DriverNum, allowBuffer, buf); err != nil {
			return err
		}
		return r.GetRandom(n)
	})
	if err != nil {
		return 0, err
	}
	return p[1], nil
}
