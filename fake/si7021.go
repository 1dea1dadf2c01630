package fake

import (
	"encoding/binary"
	"fmt"

	"periph.io/x/conn/v3/i2c"
)

// Si7021DefaultAddress is the fixed I²C address of the Si7021 and HTU21D.
const Si7021DefaultAddress = 0x40

// si7021MeasureRHHold starts a humidity conversion, holding the bus until the
// result is ready.
const si7021MeasureRHHold = 0xe5

// Si7021 reads relative humidity from a Si7021 compatible sensor over I²C.
//
// It implements ValueSource, so a fake humidity driver can be backed by a
// physical sensor:
//
//	h := fake.NewHumidity()
//	h.SampleFrom(fake.NewSi7021(bus, fake.Si7021DefaultAddress))
type Si7021 struct {
	dev *i2c.Dev
}

// NewSi7021 returns a sensor at addr on bus.
func NewSi7021(bus i2c.Bus, addr uint16) *Si7021 {
	return &Si7021{dev: &i2c.Dev{Bus: bus, Addr: addr}}
}

// Sample returns the relative humidity in hundredths of a percent.
func (s *Si7021) Sample() (int32, error) {
	var raw [2]byte
	if err := s.dev.Tx([]byte{si7021MeasureRHHold}, raw[:]); err != nil {
		return 0, fmt.Errorf("libtock: si7021: %w", err)
	}
	return si7021Humidity(binary.BigEndian.Uint16(raw[:])), nil
}

// si7021Humidity converts a raw reading to hundredths of a percent, clamped
// to 0..100%.
func si7021Humidity(raw uint16) int32 {
	// the two least significant bits are status bits
	code := uint32(raw &^ 0x3)
	rh := int32(12500*code/65536) - 600
	if rh < 0 {
		return 0
	}
	if rh > 10000 {
		return 10000
	}
	return rh
}
