package fake

import (
	"sync"

	"github.com/northvolt/go-libtock/platform"
)

// KernelConfig is the configuration for a fake kernel.
type KernelConfig struct {
	// Debug is used for debug output.
	Debug platform.Logger
}

type driverEntry struct {
	driver SyscallDriver
	info   DriverInfo
	ref    *DriverShareRef
}

// Kernel is a deterministic in-process implementation of platform.Syscalls.
//
// Drivers are registered with AddDriver and receive commands, allows and
// subscribes by driver number. Upcalls scheduled by drivers are queued and
// delivered one at a time, in order, from YieldWait and YieldNoWait.
//
// The application side of a Kernel (the platform.Syscalls methods) must be
// used from a single goroutine. Driver stimulus methods may be called from
// other goroutines, in which case they wake a blocked YieldWait.
type Kernel struct {
	mu   sync.Mutex
	cond *sync.Cond
	log  platform.Logger

	drivers map[platform.DriverNum]*driverEntry
	upcalls upcallRegistry
	queue   upcallQueue

	// delivering is set while a listener runs.
	delivering bool

	syscalls []SyscallRecord
}

var _ platform.Syscalls = (*Kernel)(nil)

// NewKernel returns an empty kernel with no drivers.
func NewKernel(cfg ...KernelConfig) *Kernel {
	var c KernelConfig
	if len(cfg) > 0 {
		c = cfg[0]
	}
	k := &Kernel{
		log:     platform.LoggerOrNull(c.Debug),
		drivers: make(map[platform.DriverNum]*driverEntry),
	}
	k.cond = sync.NewCond(&k.mu)
	return k
}

// AddDriver registers d under its driver number.
func (k *Kernel) AddDriver(d SyscallDriver) error {
	info := d.Info()

	k.mu.Lock()
	if _, ok := k.drivers[info.Num]; ok {
		k.mu.Unlock()
		return ErrDriverExists
	}
	ref := &DriverShareRef{k: k, log: k.log, info: info}
	k.drivers[info.Num] = &driverEntry{driver: d, info: info, ref: ref}
	k.mu.Unlock()

	k.log.Printf("fake: add driver %#x upcalls=%d", uint32(info.Num), info.UpcallCount)
	d.Register(ref)
	return nil
}

// RemoveDriver unregisters the driver, dropping its listeners and any of its
// upcalls still queued.
func (k *Kernel) RemoveDriver(num platform.DriverNum) {
	k.mu.Lock()
	e, ok := k.drivers[num]
	if ok {
		delete(k.drivers, num)
		k.upcalls.unregisterDriver(num)
		k.queue.purge(func(s slot) bool { return s.driver == num })
	}
	k.mu.Unlock()

	if ok {
		e.ref.detach()
	}
}

func (k *Kernel) driver(num platform.DriverNum) (*driverEntry, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	e, ok := k.drivers[num]
	return e, ok
}

// Command implements platform.Syscalls.
func (k *Kernel) Command(driver platform.DriverNum, cmd platform.CommandID, arg0, arg1 uint32) platform.CommandReturn {
	k.record(SyscallRecord{Kind: SyscallCommand, Driver: driver, ID: uint32(cmd), Arg0: arg0, Arg1: arg1})
	e, ok := k.driver(driver)
	if !ok {
		return platform.Failure(platform.ErrNoDevice)
	}
	return e.driver.Command(cmd, arg0, arg1)
}

// Subscribe implements platform.Syscalls.
//
// Upcalls still queued for the slot are dropped whenever the slot is rebound,
// so they never reach a listener other than the one they were scheduled for.
func (k *Kernel) Subscribe(driver platform.DriverNum, id platform.SubscribeID, l platform.Upcall) (platform.Upcall, error) {
	k.record(SyscallRecord{Kind: SyscallSubscribe, Driver: driver, ID: uint32(id)})

	k.mu.Lock()
	defer k.mu.Unlock()
	e, ok := k.drivers[driver]
	if !ok {
		return nil, platform.ErrNoDevice
	}
	if uint32(id) >= e.info.UpcallCount {
		return nil, platform.ErrNoSupport
	}
	s := slot{driver, id}
	if l == nil {
		return k.unsubscribeLocked(s), nil
	}
	k.queue.purge(func(q slot) bool { return q == s })
	return k.upcalls.register(s, l), nil
}

// Unsubscribe implements platform.Syscalls.
func (k *Kernel) Unsubscribe(driver platform.DriverNum, id platform.SubscribeID) {
	k.record(SyscallRecord{Kind: SyscallUnsubscribe, Driver: driver, ID: uint32(id)})

	k.mu.Lock()
	k.unsubscribeLocked(slot{driver, id})
	k.mu.Unlock()
}

// unsubscribeLocked clears the slot and drops upcalls still queued for it.
func (k *Kernel) unsubscribeLocked(s slot) platform.Upcall {
	k.queue.purge(func(q slot) bool { return q == s })
	return k.upcalls.unregister(s)
}

// AllowReadWrite implements platform.Syscalls.
func (k *Kernel) AllowReadWrite(driver platform.DriverNum, id platform.BufferID, buf []byte) ([]byte, error) {
	k.record(SyscallRecord{Kind: SyscallAllowReadWrite, Driver: driver, ID: uint32(id), Arg0: uint32(len(buf))})
	e, ok := k.driver(driver)
	if !ok {
		return buf, platform.ErrNoDevice
	}
	ar, ok := e.driver.(AllowReadWriter)
	if !ok {
		return buf, platform.ErrNoSupport
	}
	return ar.AllowReadWrite(id, buf)
}

// YieldNoWait implements platform.Syscalls.
func (k *Kernel) YieldNoWait() platform.YieldNoWaitReturn {
	k.record(SyscallRecord{Kind: SyscallYieldNoWait})

	k.mu.Lock()
	if k.delivering {
		k.mu.Unlock()
		k.log.Printf("fake: yield_no_wait called from inside an upcall, ignored")
		return platform.NoUpcall
	}
	u, l, ok := k.popLocked()
	if !ok {
		k.mu.Unlock()
		return platform.NoUpcall
	}
	k.deliver(u, l)
	return platform.Upcalled
}

// YieldWait implements platform.Syscalls.
//
// It blocks until a driver schedules an upcall for a bound slot.
func (k *Kernel) YieldWait() {
	k.record(SyscallRecord{Kind: SyscallYieldWait})

	k.mu.Lock()
	if k.delivering {
		k.mu.Unlock()
		k.log.Printf("fake: yield_wait called from inside an upcall, ignored")
		return
	}
	for {
		u, l, ok := k.popLocked()
		if ok {
			k.deliver(u, l)
			return
		}
		k.cond.Wait()
	}
}

// popLocked removes the next upcall that still has a listener.
func (k *Kernel) popLocked() (pendingUpcall, platform.Upcall, bool) {
	for {
		u, ok := k.queue.pop()
		if !ok {
			return pendingUpcall{}, nil, false
		}
		if l, ok := k.upcalls.lookup(u.slot); ok {
			return u, l, true
		}
	}
}

// deliver invokes l outside the kernel lock. It is called with k.mu held and
// returns with it released.
func (k *Kernel) deliver(u pendingUpcall, l platform.Upcall) {
	k.delivering = true
	k.mu.Unlock()

	k.log.Printf("fake: upcall %#x/%d %s", uint32(u.slot.driver), u.slot.id, u.payload)
	defer func() {
		k.mu.Lock()
		k.delivering = false
		k.mu.Unlock()
	}()
	l.Upcall(u.payload[0], u.payload[1], u.payload[2])
}

func (k *Kernel) scheduleUpcall(s slot, p platform.Payload) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if _, ok := k.upcalls.lookup(s); !ok {
		k.log.Printf("fake: upcall %#x/%d %s dropped, no listener", uint32(s.driver), s.id, p)
		return
	}
	k.queue.push(pendingUpcall{s, p})
	k.cond.Broadcast()
}

// PendingUpcalls returns the number of upcalls waiting for a yield.
func (k *Kernel) PendingUpcalls() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.queue.len()
}

// IsSubscribed reports whether a listener is bound to the slot.
func (k *Kernel) IsSubscribed(driver platform.DriverNum, id platform.SubscribeID) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	_, ok := k.upcalls.lookup(slot{driver, id})
	return ok
}
