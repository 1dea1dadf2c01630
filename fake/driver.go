package fake

import (
	"errors"
	"sync"

	"github.com/northvolt/go-libtock/platform"
)

// Package errors.
var (
	ErrDriverExists  = errors.New("libtock: fake: driver number already registered")
	ErrNotRegistered = errors.New("libtock: fake: driver not registered with a kernel")
)

// DriverInfo describes a fake driver to the kernel.
type DriverInfo struct {
	// Num is the driver number the driver is registered under.
	Num platform.DriverNum
	// UpcallCount is the number of upcall slots. Subscribe ids at or above
	// this are rejected.
	UpcallCount uint32
}

// SyscallDriver is implemented by fake drivers.
//
// Drivers that accept read-write buffers also implement AllowReadWriter.
type SyscallDriver interface {
	// Info returns the driver number and upcall count.
	Info() DriverInfo
	// Register is called once when the driver is added to a kernel. Drivers
	// use ref to schedule upcalls.
	Register(ref *DriverShareRef)
	// Command handles a command syscall.
	Command(cmd platform.CommandID, arg0, arg1 uint32) platform.CommandReturn
}

// AllowReadWriter is implemented by drivers with read-write allow slots.
//
// AllowReadWrite keeps buf and returns the buffer it replaces. On failure it
// must keep nothing and hand buf back.
type AllowReadWriter interface {
	AllowReadWrite(id platform.BufferID, buf []byte) ([]byte, error)
}

// DriverShareRef is the driver's handle to the kernel it is registered with.
//
// The zero value and nil are valid and refuse to schedule upcalls.
type DriverShareRef struct {
	mu   sync.Mutex
	k    *Kernel
	log  platform.Logger
	info DriverInfo
}

// ScheduleUpcall queues an upcall for delivery at the next yield.
//
// If no listener is bound to the slot the event is dropped, like it would be on
// hardware.
func (r *DriverShareRef) ScheduleUpcall(id platform.SubscribeID, arg0, arg1, arg2 uint32) error {
	if r == nil {
		return ErrNotRegistered
	}
	r.mu.Lock()
	k, info := r.k, r.info
	r.mu.Unlock()
	if k == nil {
		return ErrNotRegistered
	}
	if uint32(id) >= info.UpcallCount {
		return platform.ErrInvalid
	}
	k.scheduleUpcall(slot{info.Num, id}, platform.Payload{arg0, arg1, arg2})
	return nil
}

// schedule is ScheduleUpcall for driver state changes that have no caller to
// report to. Failures are written to the kernel's debug log.
func (r *DriverShareRef) schedule(id platform.SubscribeID, arg0, arg1, arg2 uint32) {
	err := r.ScheduleUpcall(id, arg0, arg1, arg2)
	if err == nil {
		return
	}
	log := platform.NullLogger
	var num platform.DriverNum
	if r != nil {
		r.mu.Lock()
		log, num = platform.LoggerOrNull(r.log), r.info.Num
		r.mu.Unlock()
	}
	log.Printf("fake: upcall %#x/%d (%d, %d, %d) not scheduled: %v", uint32(num), id, arg0, arg1, arg2, err)
}

func (r *DriverShareRef) detach() {
	r.mu.Lock()
	r.k = nil
	r.mu.Unlock()
}
