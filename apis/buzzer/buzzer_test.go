package buzzer

import (
	"testing"

	"github.com/northvolt/go-libtock/fake"
	"github.com/northvolt/go-libtock/platform"
	"github.com/stretchr/testify/require"
)

func TestToneSync(t *testing.T) {
	k := fake.NewKernel()
	b := fake.NewBuzzer()
	require.NoError(t, k.AddDriver(b))
	b.SetImmediate(true)

	bz := New(k)
	require.NoError(t, bz.DriverCheck())
	require.NoError(t, bz.ToneSync(C5*3, 1000))
	f, d := b.LastTone()
	require.Equal(t, uint32(C5*3), f)
	require.Equal(t, uint32(1000), d)
	require.False(t, k.IsSubscribed(DriverNum, upcallDone))
}

func TestToneSyncErrors(t *testing.T) {
	k := fake.NewKernel()
	b := fake.NewBuzzer()
	require.NoError(t, k.AddDriver(b))
	bz := New(k)

	require.ErrorIs(t, bz.ToneSync(0, 10), platform.ErrInvalid)
	require.NoError(t, bz.Tone(A4, 10))
	require.ErrorIs(t, bz.ToneSync(A4, 10), platform.ErrBusy)
	require.Equal(t, 0, k.CountSyscalls(fake.SyscallYieldWait))
}

func TestNoteDuration(t *testing.T) {
	testCases := []struct {
		name string
		n    Note
		want uint32
	}{
		{"quarter", Note{E4, 4}, 526},
		{"dotted quarter", Note{E4, -4}, 789},
		{"half", Note{D4, 2}, 1052},
		{"no divider", Note{D4, 0}, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.n.Duration(114); got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestPlaySync(t *testing.T) {
	k := fake.NewKernel()
	b := fake.NewBuzzer()
	require.NoError(t, k.AddDriver(b))
	b.SetImmediate(true)

	require.NoError(t, New(k).PlaySync(114, OdeToJoy))
	require.Equal(t, len(OdeToJoy), b.Tones())
	f, d := b.LastTone()
	require.Equal(t, uint32(C4), f)
	require.Equal(t, uint32(1052*9/10), d)
}
