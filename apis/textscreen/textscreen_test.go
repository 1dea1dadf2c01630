package textscreen

import (
	"testing"

	"github.com/northvolt/go-libtock/fake"
	"github.com/northvolt/go-libtock/platform"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*fake.Kernel, *fake.TextScreen, *TextScreen) {
	t.Helper()
	k := fake.NewKernel()
	s := fake.NewTextScreen(16, 2)
	require.NoError(t, k.AddDriver(s))
	return k, s, New(k)
}

func TestResolution(t *testing.T) {
	_, _, ts := setup(t)
	w, h, err := ts.Resolution()
	require.NoError(t, err)
	require.Equal(t, uint32(16), w)
	require.Equal(t, uint32(2), h)
}

func TestWrite(t *testing.T) {
	k, s, ts := setup(t)
	n, err := ts.WriteString("Hello")
	require.NoError(t, err)
	require.Equal(t, 5, n)
	n, err = ts.Write([]byte(", world"))
	require.NoError(t, err)
	require.Equal(t, 7, n)
	require.Equal(t, "Hello, world", s.Text())

	prev, err := k.AllowReadWrite(DriverNum, allowBuffer, nil)
	require.NoError(t, err)
	require.Nil(t, prev)
}

func TestDisplayCommands(t *testing.T) {
	_, s, ts := setup(t)
	require.NoError(t, ts.Exists())
	require.NoError(t, ts.DisplayOn())
	require.True(t, s.DisplayOn())
	require.NoError(t, ts.Blink())
	require.True(t, s.Blinking())
	require.NoError(t, ts.NoBlink())
	require.False(t, s.Blinking())
	require.NoError(t, ts.ShowCursor())
	require.NoError(t, ts.SetCursor(4, 1))
	x, y, shown := s.Cursor()
	require.Equal(t, uint32(4), x)
	require.Equal(t, uint32(1), y)
	require.True(t, shown)
	require.ErrorIs(t, ts.SetCursor(16, 0), platform.ErrInvalid)
	require.NoError(t, ts.Home())
	x, _, _ = s.Cursor()
	require.Equal(t, uint32(0), x)
	require.NoError(t, ts.HideCursor())
	require.NoError(t, ts.Clear())
	require.NoError(t, ts.DisplayOff())
	require.False(t, s.DisplayOn())
}

func TestResolutionBusy(t *testing.T) {
	k, s, ts := setup(t)
	s.Defer()
	require.NoError(t, k.Command(DriverNum, commandGetResolution, 0, 0).Err())

	_, _, err := ts.Resolution()
	require.ErrorIs(t, err, platform.ErrBusy)
	require.Equal(t, 0, k.CountSyscalls(fake.SyscallYieldWait))
}
