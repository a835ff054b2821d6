package protocol

import "fmt"

// Celsius is a signed integer temperature in degrees Celsius, stored on
// the wire as a single raw byte.
type Celsius int8

// NewCelsius constructs a Celsius value, rejecting degrees that do not
// fit the single-byte wire representation.
func NewCelsius(degrees int) (Celsius, error) {
	if degrees < -128 || degrees > 127 {
		return 0, fmt.Errorf("%w: %d", ErrTempOutOfRange, degrees)
	}
	return Celsius(degrees), nil
}

// CelsiusFromRaw reinterprets the raw wire byte as a temperature.
func CelsiusFromRaw(raw uint8) Celsius {
	return Celsius(raw)
}

// Raw returns the wire byte representation.
func (c Celsius) Raw() uint8 {
	return uint8(c)
}

// Degrees returns the temperature in degrees Celsius.
func (c Celsius) Degrees() int {
	return int(c)
}

func (c Celsius) String() string {
	return fmt.Sprintf("%d°C", int(c))
}
