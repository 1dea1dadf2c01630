package platform

// DriverNum identifies a kernel-resident driver.
type DriverNum uint32

// CommandID identifies a command within a driver.
type CommandID uint32

// SubscribeID identifies an upcall slot within a driver.
type SubscribeID uint32

// BufferID identifies a read-write allow slot within a driver.
type BufferID uint32

// Command, subscribe and allow identifiers are independent numbering spaces:
// command 0 and subscribe slot 0 of the same driver are unrelated.

// YieldNoWaitReturn reports whether a non-blocking yield delivered an upcall.
type YieldNoWaitReturn int

const (
	NoUpcall YieldNoWaitReturn = iota
	Upcalled
)

func (r YieldNoWaitReturn) String() string {
	switch r {
	case NoUpcall:
		return "no upcall"
	case Upcalled:
		return "upcall"
	default:
		return "unknown"
	}
}

// Syscalls is the system call surface used by driver clients.
//
// It is implemented by the fake kernel in package fake for tests, and may be
// wrapped with Traced for debugging. Driver clients should only use Subscribe
// and AllowReadWrite through a Scope, which guarantees the grants are revoked
// before the listener or buffer goes out of use.
type Syscalls interface {
	// Command issues a synchronous, non-blocking request to a driver.
	Command(driver DriverNum, cmd CommandID, arg0, arg1 uint32) CommandReturn

	// Subscribe binds l to the upcall slot, returning the listener it replaces.
	//
	// A nil l unbinds the slot. The replaced listener receives no further
	// deliveries.
	Subscribe(driver DriverNum, id SubscribeID, l Upcall) (Upcall, error)

	// Unsubscribe clears the upcall slot.
	Unsubscribe(driver DriverNum, id SubscribeID)

	// AllowReadWrite shares buf with the driver and returns the buffer it held
	// before.
	//
	// On failure the kernel keeps nothing and buf is handed back together
	// with the error. A nil buf revokes the current grant.
	AllowReadWrite(driver DriverNum, id BufferID, buf []byte) ([]byte, error)

	// YieldWait suspends until exactly one upcall has been delivered.
	YieldWait()

	// YieldNoWait delivers at most one pending upcall without suspending.
	YieldNoWait() YieldNoWaitReturn
}
