package fake

import (
	"sync"

	"github.com/northvolt/go-libtock/platform"
)

// Driver number, command and slot ids of the buzzer.
const (
	BuzzerDriverNum platform.DriverNum = 0x90000

	BuzzerCommandDriverCheck platform.CommandID = 0
	BuzzerCommandBuzz        platform.CommandID = 1

	BuzzerUpcall platform.SubscribeID = 0
)

// Buzzer is a fake buzzer.
//
// A buzz command keeps the buzzer busy until Finish is called, which answers
// with the upcall (frequency, duration, 0). With SetImmediate the tone
// finishes inside the buzz command.
type Buzzer struct {
	mu  sync.Mutex
	ref *DriverShareRef

	busy      bool
	immediate bool
	frequency uint32
	duration  uint32
	tones     int
}

// NewBuzzer returns a fake buzzer.
func NewBuzzer() *Buzzer {
	return &Buzzer{}
}

// Info implements SyscallDriver.
func (b *Buzzer) Info() DriverInfo {
	return DriverInfo{Num: BuzzerDriverNum, UpcallCount: 1}
}

// Register implements SyscallDriver.
func (b *Buzzer) Register(ref *DriverShareRef) {
	b.mu.Lock()
	b.ref = ref
	b.mu.Unlock()
}

// SetImmediate controls whether tones finish inside the buzz command.
func (b *Buzzer) SetImmediate(immediate bool) {
	b.mu.Lock()
	b.immediate = immediate
	b.mu.Unlock()
}

// IsBusy reports whether a tone is playing.
func (b *Buzzer) IsBusy() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.busy
}

// LastTone returns the frequency and duration of the last tone started.
func (b *Buzzer) LastTone() (frequency, duration uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frequency, b.duration
}

// Tones returns the number of tones started.
func (b *Buzzer) Tones() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tones
}

// Finish ends the playing tone.
func (b *Buzzer) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.finish()
}

func (b *Buzzer) finish() {
	if !b.busy {
		return
	}
	b.ref.schedule(BuzzerUpcall, b.frequency, b.duration, 0)
	b.busy = false
}

// Command implements SyscallDriver.
func (b *Buzzer) Command(cmd platform.CommandID, arg0, arg1 uint32) platform.CommandReturn {
	switch cmd {
	case BuzzerCommandDriverCheck:
		return platform.Success()
	case BuzzerCommandBuzz:
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.busy {
			return platform.Failure(platform.ErrBusy)
		}
		if arg0 == 0 {
			return platform.Failure(platform.ErrInvalid)
		}
		b.busy = true
		b.frequency, b.duration = arg0, arg1
		b.tones++
		if b.immediate {
			b.finish()
		}
		return platform.Success()
	default:
		return platform.Failure(platform.ErrNoSupport)
	}
}
