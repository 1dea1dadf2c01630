// Package buzzer is the client for the piezo buzzer driver.
//
//	b := buzzer.New(s)
//	if err := b.ToneSync(buzzer.C5*3, 1000); err != nil {
//		return err
//	}
package buzzer

import "github.com/northvolt/go-libtock/platform"

// Driver number, command and slot ids.
const (
	DriverNum platform.DriverNum = 0x90000

	commandDriverCheck platform.CommandID = 0
	commandBuzz        platform.CommandID = 1

	upcallDone platform.SubscribeID = 0
)

// Buzzer plays tones.
type Buzzer struct {
	s platform.Syscalls
}

// New returns a client using s.
func New(s platform.Syscalls) *Buzzer {
	return &Buzzer{s}
}

// DriverCheck returns nil if the driver is present.
func (b *Buzzer) DriverCheck() error {
	return b.s.Command(DriverNum, commandDriverCheck, 0, 0).Err()
}

// Tone starts playing a tone. It returns immediately.
func (b *Buzzer) Tone(frequencyHz, durationMs uint32) error {
	return b.s.Command(DriverNum, commandBuzz, frequencyHz, durationMs).Err()
}

// ToneSync plays a tone and waits until it has finished.
func (b *Buzzer) ToneSync(frequencyHz, durationMs uint32) error {
	_, err := platform.AwaitCommand(b.s, DriverNum, upcallDone, commandBuzz, frequencyHz, durationMs)
	return err
}

// Note is a single note of a melody.
//
// Divider gives the length as a fraction of a whole note: 4 is a quarter
// note. A negative divider makes it a dotted note, half as long again.
type Note struct {
	Frequency uint32
	Divider   int
}

// Duration returns the note length in milliseconds at tempo beats per minute.
func (n Note) Duration(tempo uint32) uint32 {
	if tempo == 0 || n.Divider == 0 {
		return 0
	}
	whole := 60000 * 4 / tempo
	if n.Divider > 0 {
		return whole / uint32(n.Divider)
	}
	d := whole / uint32(-n.Divider)
	return d + d/2
}

// PlaySync plays melody at tempo beats per minute, waiting for each note.
//
// Each note sounds for 90% of its length. Notes with a zero frequency are
// skipped.
func (b *Buzzer) PlaySync(tempo uint32, melody []Note) error {
	for _, n := range melody {
		if n.Frequency == 0 {
			continue
		}
		if err := b.ToneSync(n.Frequency, n.Duration(tempo)*9/10); err != nil {
			return err
		}
	}
	return nil
}

// OdeToJoy is the opening of Beethoven's Ode to Joy.
var OdeToJoy = []Note{
	{E4, 4}, {E4, 4}, {F4, 4}, {G4, 4}, {G4, 4}, {F4, 4}, {E4, 4}, {D4, 4},
	{C4, 4}, {C4, 4}, {D4, 4}, {E4, 4}, {E4, -4}, {D4, 8}, {D4, 2},
	{E4, 4}, {E4, 4}, {F4, 4}, {G4, 4}, {G4, 4}, {F4, 4}, {E4, 4}, {D4, 4},
	{C4, 4}, {C4, 4}, {D4, 4}, {E4, 4}, {D4, -4}, {C4, 8}, {C4, 2},
}
