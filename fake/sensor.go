package fake

import (
	"sync"

	"github.com/northvolt/go-libtock/platform"
)

// Driver numbers of the single value sensors.
const (
	HumidityDriverNum      platform.DriverNum = 0x60001
	SoundPressureDriverNum platform.DriverNum = 0x60006
)

// Command and slot ids shared by the single value sensors.
const (
	SensorCommandExists platform.CommandID = 0
	SensorCommandRead   platform.CommandID = 1

	SensorUpcall platform.SubscribeID = 0
)

// ValueSource provides readings for a Sensor at the time a read command is
// issued.
type ValueSource interface {
	Sample() (int32, error)
}

// Sensor is a fake sensor returning one value per read command.
//
// A read command marks the sensor busy until a value is delivered; a second
// read while busy fails with ErrBusy. SetValue delivers a value to an
// outstanding read. SetValueSync stores a value that is delivered from within
// the next read command, so the upcall is already pending when the command
// returns.
type Sensor struct {
	mu   sync.Mutex
	num  platform.DriverNum
	ref  *DriverShareRef
	busy bool

	upcallOnCommand    int32
	hasUpcallOnCommand bool
	source             ValueSource
}

// NewHumidity returns a fake humidity sensor. Values are in hundredths of a
// percent.
func NewHumidity() *Sensor {
	return NewSensor(HumidityDriverNum)
}

// NewSoundPressure returns a fake sound pressure sensor.
func NewSoundPressure() *Sensor {
	return NewSensor(SoundPressureDriverNum)
}

// NewSensor returns a fake single value sensor under the given driver number.
func NewSensor(num platform.DriverNum) *Sensor {
	return &Sensor{num: num}
}

// Info implements SyscallDriver.
func (s *Sensor) Info() DriverInfo {
	return DriverInfo{Num: s.num, UpcallCount: 1}
}

// Register implements SyscallDriver.
func (s *Sensor) Register(ref *DriverShareRef) {
	s.mu.Lock()
	s.ref = ref
	s.mu.Unlock()
}

// IsBusy reports whether a read is outstanding.
func (s *Sensor) IsBusy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// SetValue completes an outstanding read with value.
//
// It does nothing when no read is outstanding.
func (s *Sensor) SetValue(value int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setValue(value)
}

// SetValueSync stores value to answer the next read command with.
func (s *Sensor) SetValueSync(value int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upcallOnCommand = value
	s.hasUpcallOnCommand = true
}

// SampleFrom makes every read command take its value from src. Values set
// with SetValueSync take precedence.
func (s *Sensor) SampleFrom(src ValueSource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = src
}

func (s *Sensor) setValue(value int32) {
	if !s.busy {
		return
	}
	s.ref.schedule(SensorUpcall, uint32(value), 0, 0)
	s.busy = false
}

// Command implements SyscallDriver.
func (s *Sensor) Command(cmd platform.CommandID, _, _ uint32) platform.CommandReturn {
	switch cmd {
	case SensorCommandExists:
		return platform.Success()
	case SensorCommandRead:
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.busy {
			return platform.Failure(platform.ErrBusy)
		}
		s.busy = true

		switch {
		case s.hasUpcallOnCommand:
			s.hasUpcallOnCommand = false
			s.setValue(s.upcallOnCommand)
		case s.source != nil:
			v, err := s.source.Sample()
			if err != nil {
				s.busy = false
				return platform.Failure(platform.ErrFail)
			}
			s.setValue(v)
		}
		return platform.Success()
	default:
		return platform.Failure(platform.ErrNoSupport)
	}
}
