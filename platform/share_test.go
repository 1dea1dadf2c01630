package platform_test

import (
	"errors"
	"testing"

	"github.com/northvolt/go-libtock/fake"
	"github.com/northvolt/go-libtock/platform"
	"github.com/stretchr/testify/require"
)

// fire makes the humidity stub answer the next read immediately and delivers
// the reading to whatever listener is bound.
func fire(t *testing.T, k *fake.Kernel, s *fake.Sensor, v int32) {
	t.Helper()
	s.SetValueSync(v)
	require.NoError(t, k.Command(fake.HumidityDriverNum, fake.SensorCommandRead, 0, 0).Err())
	for k.YieldNoWait() == platform.Upcalled {
	}
}

func setup(t *testing.T) (*fake.Kernel, *fake.Sensor, *fake.Rng) {
	t.Helper()
	k := fake.NewKernel()
	s := fake.NewHumidity()
	r := fake.NewRng()
	require.NoError(t, k.AddDriver(s))
	require.NoError(t, k.AddDriver(r))
	return k, s, r
}

func TestScopeRevokesGrants(t *testing.T) {
	k, _, _ := setup(t)
	var scope *platform.Scope

	err := platform.WithScope(k, func(sc *platform.Scope) error {
		scope = sc
		require.NoError(t, sc.Subscribe(fake.HumidityDriverNum, fake.SensorUpcall, &platform.Cell{}))
		require.NoError(t, sc.AllowReadWrite(fake.RngDriverNum, fake.RngAllowBuffer, make([]byte, 4)))
		require.Equal(t, 2, sc.Active())
		require.True(t, k.IsSubscribed(fake.HumidityDriverNum, fake.SensorUpcall))
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 2, scope.Revoked())
	require.Equal(t, 0, scope.Active())
	require.False(t, k.IsSubscribed(fake.HumidityDriverNum, fake.SensorUpcall))

	prev, err := k.AllowReadWrite(fake.RngDriverNum, fake.RngAllowBuffer, nil)
	require.NoError(t, err)
	require.Nil(t, prev)

	require.Equal(t, 1, k.CountSyscalls(fake.SyscallUnsubscribe))
}

func TestScopeRevokesInReverseOrder(t *testing.T) {
	k, _, _ := setup(t)
	err := platform.WithScope(k, func(sc *platform.Scope) error {
		require.NoError(t, sc.Subscribe(fake.HumidityDriverNum, fake.SensorUpcall, &platform.Cell{}))
		require.NoError(t, sc.AllowReadWrite(fake.RngDriverNum, fake.RngAllowBuffer, make([]byte, 4)))
		k.ClearSyscallLog()
		return nil
	})
	require.NoError(t, err)

	log := k.SyscallLog()
	require.Len(t, log, 2)
	require.Equal(t, fake.SyscallAllowReadWrite, log[0].Kind)
	require.Equal(t, fake.SyscallUnsubscribe, log[1].Kind)
}

func TestScopeUnusedHandlesNotRevoked(t *testing.T) {
	k, _, _ := setup(t)
	var scope *platform.Scope
	err := platform.WithScope(k, func(sc *platform.Scope) error {
		scope = sc
		sc.SubscribeHandle(fake.HumidityDriverNum, fake.SensorUpcall)
		sc.AllowHandle(fake.RngDriverNum, fake.RngAllowBuffer)
		k.ClearSyscallLog()
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 0, scope.Revoked())
	require.Empty(t, k.SyscallLog())
}

func TestScopeRestoresListener(t *testing.T) {
	k, s, _ := setup(t)

	var outer, inner platform.Cell
	_, err := k.Subscribe(fake.HumidityDriverNum, fake.SensorUpcall, &outer)
	require.NoError(t, err)

	err = platform.WithScope(k, func(sc *platform.Scope) error {
		require.NoError(t, sc.Subscribe(fake.HumidityDriverNum, fake.SensorUpcall, &inner))
		fire(t, k, s, 1)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, inner.Count())
	require.Equal(t, 0, outer.Count())

	fire(t, k, s, 2)
	require.Equal(t, 1, inner.Count())
	p, _ := outer.Get()
	require.Equal(t, uint32(2), p[0])
}

func TestScopeExitDropsQueuedUpcalls(t *testing.T) {
	k, s, _ := setup(t)

	var outer, inner platform.Cell
	_, err := k.Subscribe(fake.HumidityDriverNum, fake.SensorUpcall, &outer)
	require.NoError(t, err)

	err = platform.WithScope(k, func(sc *platform.Scope) error {
		require.NoError(t, sc.Subscribe(fake.HumidityDriverNum, fake.SensorUpcall, &inner))
		s.SetValueSync(42)
		return k.Command(fake.HumidityDriverNum, fake.SensorCommandRead, 0, 0).Err()
	})
	require.NoError(t, err)
	require.True(t, k.IsSubscribed(fake.HumidityDriverNum, fake.SensorUpcall))
	require.Equal(t, 0, k.PendingUpcalls())

	require.Equal(t, platform.NoUpcall, k.YieldNoWait())
	require.Equal(t, 0, outer.Count())
	require.Equal(t, 0, inner.Count())
}

func TestScopeRestoresBuffer(t *testing.T) {
	k, _, _ := setup(t)
	b0, b1, b2 := []byte{0}, []byte{1}, []byte{2}

	_, err := k.AllowReadWrite(fake.RngDriverNum, fake.RngAllowBuffer, b0)
	require.NoError(t, err)

	err = platform.WithScope(k, func(sc *platform.Scope) error {
		h := sc.AllowHandle(fake.RngDriverNum, fake.RngAllowBuffer)
		require.NoError(t, h.Allow(b1))
		require.NoError(t, h.Allow(b2))
		require.Equal(t, 1, sc.Active())
		return nil
	})
	require.NoError(t, err)

	prev, err := k.AllowReadWrite(fake.RngDriverNum, fake.RngAllowBuffer, nil)
	require.NoError(t, err)
	require.Equal(t, b0, prev)
}

func TestScopeSplitHandles(t *testing.T) {
	k, s, _ := setup(t)
	var got []uint32
	err := platform.WithScope(k, func(sc *platform.Scope) error {
		sub := sc.SubscribeHandle(fake.HumidityDriverNum, fake.SensorUpcall)
		allow := sc.AllowHandle(fake.RngDriverNum, fake.RngAllowBuffer)

		require.Equal(t, sub, sc.SubscribeHandle(fake.HumidityDriverNum, fake.SensorUpcall))

		require.NoError(t, allow.Allow(make([]byte, 2)))
		require.NoError(t, sub.Subscribe(platform.UpcallFunc(func(v, _, _ uint32) {
			got = append(got, v)
		})))
		fire(t, k, s, 7)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []uint32{7}, got)
}

func TestScopeNilListener(t *testing.T) {
	k, _, _ := setup(t)
	err := platform.WithScope(k, func(sc *platform.Scope) error {
		return sc.Subscribe(fake.HumidityDriverNum, fake.SensorUpcall, nil)
	})
	require.ErrorIs(t, err, platform.ErrInvalid)
}

func TestScopeClosed(t *testing.T) {
	k, _, _ := setup(t)
	var scope *platform.Scope
	require.NoError(t, platform.WithScope(k, func(sc *platform.Scope) error {
		scope = sc
		return nil
	}))
	require.Error(t, scope.Subscribe(fake.HumidityDriverNum, fake.SensorUpcall, &platform.Cell{}))
	require.Error(t, scope.AllowReadWrite(fake.RngDriverNum, fake.RngAllowBuffer, nil))
	require.False(t, k.IsSubscribed(fake.HumidityDriverNum, fake.SensorUpcall))
}

func TestScopeRevokesOnPanic(t *testing.T) {
	k, _, _ := setup(t)
	func() {
		defer func() {
			require.Equal(t, "boom", recover())
		}()
		_ = platform.WithScope(k, func(sc *platform.Scope) error {
			require.NoError(t, sc.Subscribe(fake.HumidityDriverNum, fake.SensorUpcall, &platform.Cell{}))
			panic("boom")
		})
	}()
	require.False(t, k.IsSubscribed(fake.HumidityDriverNum, fake.SensorUpcall))
}

func TestScopeRevokesOnError(t *testing.T) {
	k, _, _ := setup(t)
	errBody := errors.New("body failed")
	err := platform.WithScope(k, func(sc *platform.Scope) error {
		require.NoError(t, sc.Subscribe(fake.HumidityDriverNum, fake.SensorUpcall, &platform.Cell{}))
		return errBody
	})
	require.ErrorIs(t, err, errBody)
	require.False(t, k.IsSubscribed(fake.HumidityDriverNum, fake.SensorUpcall))
}

func TestNestedScopes(t *testing.T) {
	k, s, _ := setup(t)
	var outer, inner platform.Cell
	err := platform.WithScope(k, func(sc *platform.Scope) error {
		require.NoError(t, sc.Subscribe(fake.HumidityDriverNum, fake.SensorUpcall, &outer))
		require.NoError(t, platform.WithScope(k, func(sc *platform.Scope) error {
			return sc.Subscribe(fake.HumidityDriverNum, fake.SensorUpcall, &inner)
		}))
		fire(t, k, s, 3)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, outer.Count())
	require.Equal(t, 0, inner.Count())
	require.False(t, k.IsSubscribed(fake.HumidityDriverNum, fake.SensorUpcall))
}

func TestGrantsRollback(t *testing.T) {
	k, _, _ := setup(t)
	ran := false
	err := platform.Grants(k, []platform.Grant{
		platform.SubscribeGrant{Driver: fake.HumidityDriverNum, ID: fake.SensorUpcall, Listener: &platform.Cell{}},
		platform.AllowGrant{Driver: fake.HumidityDriverNum, ID: 0, Buffer: make([]byte, 1)},
	}, func(*platform.Scope) error {
		ran = true
		return nil
	})
	require.ErrorIs(t, err, platform.ErrNoSupport)
	require.False(t, ran)
	require.False(t, k.IsSubscribed(fake.HumidityDriverNum, fake.SensorUpcall))
}

func TestGrants(t *testing.T) {
	k, _, _ := setup(t)
	buf := make([]byte, 3)
	err := platform.Grants(k, []platform.Grant{
		platform.AllowGrant{Driver: fake.RngDriverNum, ID: fake.RngAllowBuffer, Buffer: buf},
		platform.SubscribeGrant{Driver: fake.RngDriverNum, ID: fake.RngUpcall, Listener: &platform.Cell{}},
	}, func(sc *platform.Scope) error {
		require.Equal(t, 2, sc.Active())
		return nil
	})
	require.NoError(t, err)
	require.False(t, k.IsSubscribed(fake.RngDriverNum, fake.RngUpcall))
	require.NoError(t, platform.Grants(k, nil, nil))
}

// restoreFails refuses to take buffers back.
type restoreFails struct {
	platform.Syscalls
}

func (r restoreFails) AllowReadWrite(driver platform.DriverNum, id platform.BufferID, buf []byte) ([]byte, error) {
	if buf == nil {
		return nil, platform.ErrFail
	}
	return r.Syscalls.AllowReadWrite(driver, id, buf)
}

func TestScopeRevokeErrors(t *testing.T) {
	k, _, _ := setup(t)
	errBody := errors.New("body failed")
	err := platform.WithScope(restoreFails{k}, func(sc *platform.Scope) error {
		require.NoError(t, sc.AllowReadWrite(fake.RngDriverNum, fake.RngAllowBuffer, make([]byte, 1)))
		require.NoError(t, sc.Subscribe(fake.RngDriverNum, fake.RngUpcall, &platform.Cell{}))
		return errBody
	})
	require.ErrorIs(t, err, errBody)
	require.ErrorIs(t, err, platform.ErrFail)
	require.False(t, k.IsSubscribed(fake.RngDriverNum, fake.RngUpcall))
}
