package soundpressure

import (
	"testing"

	"github.com/northvolt/go-libtock/fake"
	"github.com/northvolt/go-libtock/platform"
	"github.com/stretchr/testify/require"
)

func TestReadSync(t *testing.T) {
	k := fake.NewKernel()
	s := fake.NewSoundPressure()
	require.NoError(t, k.AddDriver(s))
	p := New(k)
	require.NoError(t, p.Exists())

	s.SetValueSync(-3)
	v, err := p.ReadSync()
	require.NoError(t, err)
	require.Equal(t, int32(-3), v)

	require.NoError(t, p.Read())
	_, err = p.ReadSync()
	require.ErrorIs(t, err, platform.ErrBusy)
}

func TestListener(t *testing.T) {
	k := fake.NewKernel()
	s := fake.NewSoundPressure()
	require.NoError(t, k.AddDriver(s))
	p := New(k)

	var got int32
	err := platform.WithScope(k, func(sc *platform.Scope) error {
		require.NoError(t, p.RegisterListener(p.Handle(sc), Listener(func(v int32) { got = v })))
		require.NoError(t, p.Read())
		s.SetValue(62)
		k.YieldWait()
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, int32(62), got)
	require.False(t, k.IsSubscribed(DriverNum, upcallReading))
}
