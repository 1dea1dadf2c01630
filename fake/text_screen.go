package fake

import (
	"sync"

	"github.com/northvolt/go-libtock/platform"
)

// Driver number, command and slot ids of the text screen.
const (
	TextScreenDriverNum platform.DriverNum = 0x90003

	TextScreenCommandExists        platform.CommandID = 0
	TextScreenCommandGetResolution platform.CommandID = 1
	TextScreenCommandDisplay       platform.CommandID = 2
	TextScreenCommandNoDisplay     platform.CommandID = 3
	TextScreenCommandBlink         platform.CommandID = 4
	TextScreenCommandNoBlink       platform.CommandID = 5
	TextScreenCommandShowCursor    platform.CommandID = 6
	TextScreenCommandNoCursor      platform.CommandID = 7
	TextScreenCommandWrite         platform.CommandID = 8
	TextScreenCommandClear         platform.CommandID = 9
	TextScreenCommandHome          platform.CommandID = 10
	TextScreenCommandSetCursor     platform.CommandID = 11

	TextScreenAllowBuffer platform.BufferID    = 0
	TextScreenUpcall      platform.SubscribeID = 0
)

// TextScreen is a fake character display.
//
// The resolution query and writes are answered with an upcall on slot 0. By
// default the upcall is scheduled from within the command; after Defer the
// answer waits for Complete.
type TextScreen struct {
	mu  sync.Mutex
	ref *DriverShareRef

	width, height uint32
	buffer        []byte

	displayOn bool
	blink     bool
	cursorOn  bool
	cursorX   uint32
	cursorY   uint32
	text      []byte

	deferred bool
	busy     bool
	pending  platform.Payload
}

// NewTextScreen returns a fake display of width by height characters.
func NewTextScreen(width, height uint32) *TextScreen {
	return &TextScreen{width: width, height: height}
}

// Info implements SyscallDriver.
func (s *TextScreen) Info() DriverInfo {
	return DriverInfo{Num: TextScreenDriverNum, UpcallCount: 1}
}

// Register implements SyscallDriver.
func (s *TextScreen) Register(ref *DriverShareRef) {
	s.mu.Lock()
	s.ref = ref
	s.mu.Unlock()
}

// Defer makes the display hold answers until Complete is called.
func (s *TextScreen) Defer() {
	s.mu.Lock()
	s.deferred = true
	s.mu.Unlock()
}

// Complete delivers the held answer, if any.
func (s *TextScreen) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.complete()
}

func (s *TextScreen) complete() {
	if !s.busy {
		return
	}
	s.busy = false
	s.ref.schedule(TextScreenUpcall, s.pending[0], s.pending[1], s.pending[2])
}

func (s *TextScreen) answer(p platform.Payload) {
	s.busy = true
	s.pending = p
	if !s.deferred {
		s.complete()
	}
}

// Text returns everything written since the last clear.
func (s *TextScreen) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.text)
}

// DisplayOn reports whether the display is switched on.
func (s *TextScreen) DisplayOn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.displayOn
}

// Blinking reports whether the cursor blinks.
func (s *TextScreen) Blinking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blink
}

// Cursor returns the cursor position and whether it is shown.
func (s *TextScreen) Cursor() (x, y uint32, shown bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursorX, s.cursorY, s.cursorOn
}

// AllowReadWrite implements AllowReadWriter.
func (s *TextScreen) AllowReadWrite(id platform.BufferID, buf []byte) ([]byte, error) {
	if id != TextScreenAllowBuffer {
		return buf, platform.ErrInvalid
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.buffer
	s.buffer = buf
	return prev, nil
}

// Command implements SyscallDriver.
func (s *TextScreen) Command(cmd platform.CommandID, arg0, arg1 uint32) platform.CommandReturn {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch cmd {
	case TextScreenCommandExists:
		return platform.Success()
	case TextScreenCommandGetResolution, TextScreenCommandWrite:
		if s.busy {
			return platform.Failure(platform.ErrBusy)
		}
	}

	switch cmd {
	case TextScreenCommandGetResolution:
		s.answer(platform.Payload{0, s.width, s.height})
	case TextScreenCommandDisplay:
		s.displayOn = true
	case TextScreenCommandNoDisplay:
		s.displayOn = false
	case TextScreenCommandBlink:
		s.blink = true
	case TextScreenCommandNoBlink:
		s.blink = false
	case TextScreenCommandShowCursor:
		s.cursorOn = true
	case TextScreenCommandNoCursor:
		s.cursorOn = false
	case TextScreenCommandWrite:
		if s.buffer == nil {
			return platform.Failure(platform.ErrInvalid)
		}
		n := int(arg0)
		if n > len(s.buffer) {
			n = len(s.buffer)
		}
		s.text = append(s.text, s.buffer[:n]...)
		s.answer(platform.Payload{0, uint32(n), 0})
	case TextScreenCommandClear:
		s.text = nil
		s.cursorX, s.cursorY = 0, 0
	case TextScreenCommandHome:
		s.cursorX, s.cursorY = 0, 0
	case TextScreenCommandSetCursor:
		if arg0 >= s.width || arg1 >= s.height {
			return platform.Failure(platform.ErrInvalid)
		}
		s.cursorX, s.cursorY = arg0, arg1
	default:
		return platform.Failure(platform.ErrNoSupport)
	}
	return platform.Success()
}
