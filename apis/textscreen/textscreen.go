// Package textscreen is the client for character display drivers.
package textscreen

import "github.com/northvolt/go-libtock/platform"

// Driver number, command and slot ids.
const (
	DriverNum platform.DriverNum = 0x90003

	commandExists        platform.CommandID = 0
	commandGetResolution platform.CommandID = 1
	commandDisplay       platform.CommandID = 2
	commandNoDisplay     platform.CommandID = 3
	commandBlink         platform.CommandID = 4
	commandNoBlink       platform.CommandID = 5
	commandShowCursor    platform.CommandID = 6
	commandNoCursor      platform.CommandID = 7
	commandWrite         platform.CommandID = 8
	commandClear         platform.CommandID = 9
	commandHome          platform.CommandID = 10
	commandSetCursor     platform.CommandID = 11

	allowBuffer platform.BufferID    = 0
	upcallDone  platform.SubscribeID = 0
)

// TextScreen drives a character display.
type TextScreen struct {
	s platform.Syscalls
}

// New returns a client using s.
func New(s platform.Syscalls) *TextScreen {
	return &TextScreen{s}
}

func (t *TextScreen) command(cmd platform.CommandID, arg0, arg1 uint32) error {
	return t.s.Command(DriverNum, cmd, arg0, arg1).Err()
}

// Exists returns nil if the driver is present.
func (t *TextScreen) Exists() error { return t.command(commandExists, 0, 0) }

func (t *TextScreen) DisplayOn() error { return t.command(commandDisplay, 0, 0) }
func (t *TextScreen) DisplayOff() error { return t.command(commandNoDisplay, 0, 0) }
func (t *TextScreen) Blink() error { return t.command(commandBlink, 0, 0) }
func (t *TextScreen) NoBlink() error { return t.command(commandNoBlink, 0, 0) }
func (t *TextScreen) ShowCursor() error { return t.command(commandShowCursor, 0, 0) }
func (t *TextScreen) HideCursor() error { return t.command(commandNoCursor, 0, 0) }
func (t *TextScreen) Clear() error { return t.command(commandClear, 0, 0) }
func (t *TextScreen) Home() error { return t.command(commandHome, 0, 0) }

// SetCursor moves the cursor to column x of row y.
func (t *TextScreen) SetCursor(x, y uint32) error {
	return t.command(commandSetCursor, x, y)
}

// Resolution returns the size of the display in characters.
func (t *TextScreen) Resolution() (width, height uint32, err error) {
	p, err := platform.AwaitCommand(t.s, DriverNum, upcallDone, commandGetResolution, 0, 0)
	if err != nil {
		return 0, 0, err
	}
	return p[1], p[2], nil
}

// Write writes text at the cursor and returns the number of bytes the display
// accepted.
//
// text is shared with the driver while the write is in progress.
func (t *TextScreen) Write(text []byte) (int, error) {
	p, err := platform.Await(t.s, DriverNum, upcallDone, func(sc *platform.Scope) error {
		if err := sc.AllowReadWrite(DriverNum, allowBuffer, text); err != nil {
			return err
		}
		return t.command(commandWrite, uint32(len(text)), 0)
	})
	if err != nil {
		return 0, err
	}
	return int(p[1]), nil
}

// WriteString writes s at the cursor.
func (t *TextScreen) WriteString(s string) (int, error) {
	return t.Write([]byte(s))
}
