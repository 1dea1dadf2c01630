package platform

import (
	"errors"
	"testing"
)

func TestCommandReturnErr(t *testing.T) {
	testCases := []struct {
		name string
		r    CommandReturn
		want error
	}{
		{"success", Success(), nil},
		{"success_u32", SuccessU32(5), nil},
		{"success_u64", SuccessU64(1 << 40), nil},
		{"failure", Failure(ErrBusy), ErrBusy},
		{"failure_u32", FailureU32(ErrNoDevice, 3), ErrNoDevice},
		{"unknown code", CommandReturn{Variant: VariantFailure, R1: 99}, ErrFail},
		{"unknown variant", CommandReturn{Variant: 7}, ErrFail},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.r.Err()
			if !errors.Is(got, tc.want) || (got == nil) != (tc.want == nil) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCommandReturnValues(t *testing.T) {
	if v, ok := SuccessU32(7).SuccessU32(); !ok || v != 7 {
		t.Errorf("SuccessU32: got %d %t", v, ok)
	}
	if _, ok := Success().SuccessU32(); ok {
		t.Error("SuccessU32 on plain success")
	}
	if a, b, ok := SuccessU32U32(1, 2).SuccessU32U32(); !ok || a != 1 || b != 2 {
		t.Errorf("SuccessU32U32: got %d %d %t", a, b, ok)
	}
	want := uint64(0x1122334455667788)
	if v, ok := SuccessU64(want).SuccessU64(); !ok || v != want {
		t.Errorf("SuccessU64: got %#x, want %#x", v, want)
	}
	if Failure(ErrFail).IsSuccess() || !Failure(ErrFail).IsFailure() {
		t.Error("failure classified as success")
	}
}

func TestErrorCodeNames(t *testing.T) {
	testCases := []struct {
		code ErrorCode
		str  string
		id   string
	}{
		{ErrFail, "fail", "Fail"},
		{ErrBusy, "busy", "Busy"},
		{ErrInvalid, "invalid", "Invalid"},
		{ErrNoSupport, "no support", "NoSupport"},
		{ErrNoDevice, "no device", "NoDevice"},
	}

	for _, tc := range testCases {
		t.Run(tc.str, func(t *testing.T) {
			if got := tc.code.String(); got != tc.str {
				t.Errorf("got %q, want %q", got, tc.str)
			}
			if got := tc.code.Error(); got != "libtock: "+tc.str {
				t.Errorf("got %q", got)
			}
			for _, name := range []string{tc.str, tc.id} {
				if got, ok := ParseErrorCode(name); !ok || got != tc.code {
					t.Errorf("ParseErrorCode(%q): got %v %t", name, got, ok)
				}
			}
		})
	}

	if _, ok := ParseErrorCode("size"); ok {
		t.Error("parsed unknown code")
	}
	if got := ErrorCode(42).String(); got != "error code 42" {
		t.Errorf("got %q", got)
	}
}
