package protocol

import "encoding/binary"

// ChecksumFunc computes the buffer integrity value from encoded buffer
// bytes, skipping the checksum lane itself. The algorithm is only
// confirmed against captures from one hardware unit, so the codec
// routes all checksum math through a single replaceable function.
type ChecksumFunc func(b []byte) uint32

// FieldSumChecksum is the capture-validated default: the two's
// complement of the wrapping sum of every interpreted field value in
// the header and in each declared entry. Padding and reserved lanes do
// not participate, so opaque bytes can be round-tripped without
// disturbing the stored value.
//
// The entry-count byte comes straight off the hardware, so the sum only
// walks entries that b actually holds. A slice shorter than the header
// sums to zero.
func FieldSumChecksum(b []byte) uint32 {
	if len(b) < HeaderSize {
		return 0
	}
	var sum uint32
	sum += binary.LittleEndian.Uint32(b[offMagic:])
	sum += uint32(b[offVersion])
	sum += uint32(b[offEntryCount])
	sum += uint32(b[offEntrySize])
	sum += binary.LittleEndian.Uint32(b[offGeneration:])
	sum += uint32(b[offUpdateInterval])

	count := int(b[offEntryCount])
	if held := (len(b) - HeaderSize) / EntrySize; count > held {
		count = held
	}
	for i := 0; i < count; i++ {
		e := b[HeaderSize+i*EntrySize:]
		sum += uint32(binary.LittleEndian.Uint16(e[entOffCardID:]))
		sum += uint32(e[entOffSensorType])
		sum += binary.LittleEndian.Uint32(e[entOffLocation:])
		sum += uint32(e[entOffCaution])
		sum += uint32(e[entOffMaxContinuous])
		sum += binary.LittleEndian.Uint32(e[entOffConfigStatus:])
		sum += uint32(e[entOffReading])
		sum += uint32(binary.LittleEndian.Uint16(e[entOffUpdateCount:]))
	}
	return -sum
}

// ValidateChecksum reports whether the stored checksum lane matches the
// value recomputed over b. A slice too short for the declared entry
// table validates as false rather than being recomputed over a partial
// buffer.
func ValidateChecksum(b []byte) bool {
	if len(b) < HeaderSize || len(b) < BufferLen(b[offEntryCount]) {
		return false
	}
	return binary.LittleEndian.Uint32(b[offChecksum:]) == FieldSumChecksum(b)
}
