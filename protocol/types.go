package protocol

// SensorType identifies what an entry's sensor measures. Values other
// than the named constants are carried through untouched.
type SensorType uint8

const (
	SensorTypeUnknown SensorType = 0
	SensorTypeThermal SensorType = 1
)

// SensorLocation identifies where on the card the sensor sits. Values
// other than the named constants are carried through untouched.
type SensorLocation uint32

const (
	LocationUnknown        SensorLocation = 0
	LocationInternalToAsic SensorLocation = 1
	LocationOnboardOther   SensorLocation = 5
)

// Header is the fixed OCSD system header.
type Header struct {
	Magic      uint32
	Version    uint8
	EntryCount uint8
	EntrySize  uint8
	Generation uint32
	// UpdateInterval is the interval, in seconds, at which the
	// management controller expects readings to be refreshed.
	UpdateInterval uint8
	// Checksum is the stored integrity value as read. EncodeBuffer
	// recomputes it; the stored value is kept so decode is lossless.
	Checksum uint32

	pad0     [3]byte
	pad1     [3]byte
	pad2     [3]byte
	pad3     [3]byte
	reserved [headerReservedLen]byte
}

// Entry is one slot of the buffer's entry table.
type Entry struct {
	// CardID identifies the option card reporting through this slot.
	CardID     uint16
	SensorType SensorType
	Location   SensorLocation
	// CautionThreshold raises a caution in the controller when the
	// reading exceeds it.
	CautionThreshold Celsius
	// MaxContinuousThreshold is the maximum allowed continuous
	// temperature for the sensor.
	MaxContinuousThreshold Celsius
	// Configuration is controller-owned configuration data. Semantics
	// are not understood; the value is carried through untouched.
	Configuration uint16
	Status        Status
	// Reading is the current temperature reported for the slot.
	Reading Celsius
	// UpdateCount wraps and must advance at least as fast as the
	// header's update interval for the controller to trust the slot.
	UpdateCount uint16

	pad0 [2]byte
	pad1 [3]byte
	pad2 [3]byte
	pad3 [3]byte
	pad4 [3]byte
	pad5 [2]byte
}

// Buffer is a decoded snapshot of the shared region: the header plus
// EntryCount entries, indexed by slot. It is a plain value with no tie
// to the underlying memory; the controller may have rewritten the
// region the moment after the snapshot was taken.
type Buffer struct {
	Header  Header
	Entries []Entry
}
