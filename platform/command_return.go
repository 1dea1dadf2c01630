package platform

// ReturnVariant identifies the shape of a command return.
type ReturnVariant uint32

// Return variants as encoded by the kernel.
const (
	VariantFailure          ReturnVariant = 0
	VariantFailureU32       ReturnVariant = 1
	VariantSuccess          ReturnVariant = 128
	VariantSuccessU32       ReturnVariant = 129
	VariantSuccessU32U32    ReturnVariant = 130
	VariantSuccessU64       ReturnVariant = 131
	VariantSuccessU32U32U32 ReturnVariant = 132
)

func (v ReturnVariant) String() string {
	switch v {
	case VariantFailure:
		return "failure"
	case VariantFailureU32:
		return "failure_u32"
	case VariantSuccess:
		return "success"
	case VariantSuccessU32:
		return "success_u32"
	case VariantSuccessU32U32:
		return "success_u32_u32"
	case VariantSuccessU64:
		return "success_u64"
	case VariantSuccessU32U32U32:
		return "success_u32_u32_u32"
	default:
		return "unknown"
	}
}

// CommandReturn is the raw result of a command syscall.
//
// For failure variants R1 holds the error code.
type CommandReturn struct {
	Variant ReturnVariant
	R1      uint32
	R2      uint32
	R3      uint32
}

// Success returns a plain success.
func Success() CommandReturn {
	return CommandReturn{Variant: VariantSuccess}
}

// SuccessU32 returns a success carrying one value.
func SuccessU32(v uint32) CommandReturn {
	return CommandReturn{Variant: VariantSuccessU32, R1: v}
}

// SuccessU32U32 returns a success carrying two values.
func SuccessU32U32(v0, v1 uint32) CommandReturn {
	return CommandReturn{Variant: VariantSuccessU32U32, R1: v0, R2: v1}
}

// SuccessU64 returns a success carrying a 64-bit value.
func SuccessU64(v uint64) CommandReturn {
	return CommandReturn{Variant: VariantSuccessU64, R1: uint32(v), R2: uint32(v >> 32)}
}

// Failure returns a failure with the given error code.
func Failure(code ErrorCode) CommandReturn {
	return CommandReturn{Variant: VariantFailure, R1: uint32(code)}
}

// FailureU32 returns a failure with the given error code and value.
func FailureU32(code ErrorCode, v uint32) CommandReturn {
	return CommandReturn{Variant: VariantFailureU32, R1: uint32(code), R2: v}
}

// IsSuccess reports whether the command succeeded, regardless of the values
// returned.
func (r CommandReturn) IsSuccess() bool {
	return r.Variant >= VariantSuccess && r.Variant <= VariantSuccessU32U32U32
}

// IsFailure reports whether the command failed.
func (r CommandReturn) IsFailure() bool {
	return r.Variant == VariantFailure || r.Variant == VariantFailureU32
}

// Err returns the error carried by a failure, or nil on success.
//
// An unknown variant is reported as ErrFail.
func (r CommandReturn) Err() error {
	switch {
	case r.IsSuccess():
		return nil
	case r.IsFailure():
		return errorCode(r.R1)
	default:
		return ErrFail
	}
}

// SuccessU32 returns the value of a success_u32 return.
func (r CommandReturn) SuccessU32() (uint32, bool) {
	if r.Variant != VariantSuccessU32 {
		return 0, false
	}
	return r.R1, true
}

// SuccessU32U32 returns the values of a success_u32_u32 return.
func (r CommandReturn) SuccessU32U32() (uint32, uint32, bool) {
	if r.Variant != VariantSuccessU32U32 {
		return 0, 0, false
	}
	return r.R1, r.R2, true
}

// SuccessU64 returns the value of a success_u64 return.
func (r CommandReturn) SuccessU64() (uint64, bool) {
	if r.Variant != VariantSuccessU64 {
		return 0, false
	}
	return uint64(r.R1) | uint64(r.R2)<<32, true
}
