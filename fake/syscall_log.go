package fake

import (
	"fmt"

	"github.com/northvolt/go-libtock/platform"
)

// SyscallKind identifies a system call in the syscall log.
type SyscallKind int

const (
	SyscallCommand SyscallKind = iota
	SyscallSubscribe
	SyscallUnsubscribe
	SyscallAllowReadWrite
	SyscallYieldWait
	SyscallYieldNoWait
)

func (s SyscallKind) String() string {
	switch s {
	case SyscallCommand:
		return "command"
	case SyscallSubscribe:
		return "subscribe"
	case SyscallUnsubscribe:
		return "unsubscribe"
	case SyscallAllowReadWrite:
		return "allow_rw"
	case SyscallYieldWait:
		return "yield_wait"
	case SyscallYieldNoWait:
		return "yield_no_wait"
	default:
		return "unknown"
	}
}

// SyscallRecord is one entry in the syscall log.
//
// ID holds the command, subscribe or buffer id. For allows Arg0 holds the
// buffer length.
type SyscallRecord struct {
	Kind   SyscallKind
	Driver platform.DriverNum
	ID     uint32
	Arg0   uint32
	Arg1   uint32
}

func (r SyscallRecord) String() string {
	switch r.Kind {
	case SyscallYieldWait, SyscallYieldNoWait:
		return r.Kind.String()
	case SyscallCommand:
		return fmt.Sprintf("%s(%#x, %d, %d, %d)", r.Kind, uint32(r.Driver), r.ID, r.Arg0, r.Arg1)
	default:
		return fmt.Sprintf("%s(%#x, %d)", r.Kind, uint32(r.Driver), r.ID)
	}
}

func (k *Kernel) record(r SyscallRecord) {
	k.mu.Lock()
	k.syscalls = append(k.syscalls, r)
	k.mu.Unlock()
}

// SyscallLog returns every syscall made against the kernel, in order.
func (k *Kernel) SyscallLog() []SyscallRecord {
	k.mu.Lock()
	defer k.mu.Unlock()
	log := make([]SyscallRecord, len(k.syscalls))
	copy(log, k.syscalls)
	return log
}

// CountSyscalls returns how many calls of the given kind have been made.
func (k *Kernel) CountSyscalls(kind SyscallKind) int {
	k.mu.Lock()
	defer k.mu.Unlock()
	n := 0
	for _, r := range k.syscalls {
		if r.Kind == kind {
			n++
		}
	}
	return n
}

// ClearSyscallLog empties the syscall log.
func (k *Kernel) ClearSyscallLog() {
	k.mu.Lock()
	k.syscalls = nil
	k.mu.Unlock()
}
