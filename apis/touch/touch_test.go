package touch

import (
	"testing"

	"github.com/northvolt/go-libtock/fake"
	"github.com/northvolt/go-libtock/platform"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvent(t *testing.T) {
	testCases := []struct {
		name string
		p    platform.Payload
		want Event
	}{
		{"released", platform.Payload{0, 5<<16 | 6, 0}, Event{Status: Released, X: 5, Y: 6}},
		{"pressed", platform.Payload{1, 100<<16 | 200, 7<<16 | 3}, Event{Status: Pressed, X: 100, Y: 200, Area: 3, Pressure: 7}},
		{"moved", platform.Payload{2, 0, 0}, Event{Status: Moved}},
		{"unstarted", platform.Payload{9, 0, 0}, Event{Status: Unstarted}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DecodeEvent(tc.p); got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestWaitForSingleTouch(t *testing.T) {
	k := fake.NewKernel()
	panel := fake.NewTouch()
	require.NoError(t, k.AddDriver(panel))
	tc := New(k)
	require.NoError(t, tc.Exists())

	panel.TouchOnEnable(fake.TouchPoint{Status: 1, X: 12, Y: 34, Pressure: 2})
	ev, err := tc.WaitForSingleTouch()
	require.NoError(t, err)
	require.Equal(t, Event{Status: Pressed, X: 12, Y: 34, Pressure: 2}, ev)
	require.Equal(t, "pressed at (12, 34)", ev.String())
	require.False(t, panel.IsEnabled())

	require.False(t, panel.Touch(fake.TouchPoint{Status: 1, X: 1, Y: 1}))
	require.Equal(t, 0, k.PendingUpcalls())
}

func TestWaitForSingleTouchNoDevice(t *testing.T) {
	_, err := New(fake.NewKernel()).WaitForSingleTouch()
	require.ErrorIs(t, err, platform.ErrNoDevice)
}

func TestGestureListener(t *testing.T) {
	k := fake.NewKernel()
	require.NoError(t, k.AddDriver(fake.NewTouch()))
	tc := New(k)

	err := platform.WithScope(k, func(sc *platform.Scope) error {
		return tc.RegisterGestureListener(sc, GestureListener(func(Gesture) {}))
	})
	require.NoError(t, err)
	require.Equal(t, "zoom out", ZoomOut.String())
	require.Equal(t, "gesture 0", Gesture(0).String())
}

func TestSingleTouchListener(t *testing.T) {
	k := fake.NewKernel()
	panel := fake.NewTouch()
	require.NoError(t, k.AddDriver(panel))
	tc := New(k)

	var events []Event
	err := platform.WithScope(k, func(sc *platform.Scope) error {
		if err := tc.RegisterSingleTouchListener(sc, Listener(func(e Event) {
			events = append(events, e)
		})); err != nil {
			return err
		}
		if err := tc.EnableSingleTouch(); err != nil {
			return err
		}
		panel.Touch(fake.TouchPoint{Status: 1, X: 1, Y: 1})
		panel.Touch(fake.TouchPoint{Status: 2, X: 2, Y: 2})
		panel.Touch(fake.TouchPoint{Status: 0, X: 2, Y: 2})
		for k.YieldNoWait() == platform.Upcalled {
		}
		return nil
	})
	require.NoError(t, err)
	require.Len(t, events, 3)
	require.Equal(t, Pressed, events[0].Status)
	require.Equal(t, Moved, events[1].Status)
	require.Equal(t, Released, events[2].Status)
}
