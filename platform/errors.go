package platform

import "strconv"

// ErrorCode is an error kind reported by the kernel at the syscall boundary.
//
// The numeric values match the kernel's ABI. Driver clients translate these
// into domain results but never introduce new kinds.
type ErrorCode uint32

// Kernel error codes.
const (
	ErrFail ErrorCode = 1
	ErrBusy ErrorCode = 2

	// ErrInvalid is used when a parameter passed to the driver was illegal.
	ErrInvalid ErrorCode = 6

	// ErrNoSupport is used when the driver does not implement the call.
	ErrNoSupport ErrorCode = 10

	// ErrNoDevice is used when no driver is registered for the driver number.
	ErrNoDevice ErrorCode = 11
)

func (e ErrorCode) Error() string {
	return "libtock: " + e.String()
}

func (e ErrorCode) String() string {
	switch e {
	case ErrFail:
		return "fail"
	case ErrBusy:
		return "busy"
	case ErrInvalid:
		return "invalid"
	case ErrNoSupport:
		return "no support"
	case ErrNoDevice:
		return "no device"
	default:
		return "error code " + strconv.FormatUint(uint64(e), 10)
	}
}

// ParseErrorCode returns the error code with the given name.
//
// Both the String form ("no device") and the identifier form ("NoDevice") are
// accepted.
func ParseErrorCode(name string) (ErrorCode, bool) {
	switch name {
	case "fail", "Fail":
		return ErrFail, true
	case "busy", "Busy":
		return ErrBusy, true
	case "invalid", "Invalid":
		return ErrInvalid, true
	case "no support", "NoSupport":
		return ErrNoSupport, true
	case "no device", "NoDevice":
		return ErrNoDevice, true
	default:
		return 0, false
	}
}

// errorCode normalizes a kernel supplied value.
//
// Codes outside the known set are reported as ErrFail.
func errorCode(v uint32) ErrorCode {
	switch e := ErrorCode(v); e {
	case ErrFail, ErrBusy, ErrInvalid, ErrNoSupport, ErrNoDevice:
		return e
	default:
		return ErrFail
	}
}
