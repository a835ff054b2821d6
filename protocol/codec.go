package protocol

import (
	"encoding/binary"
	"fmt"
)

// DecodeHeader decodes the fixed system header from the first
// HeaderSize bytes of b. It validates magic, version, and declared
// entry size, but not the checksum: the checksum spans the whole
// buffer, which a header-only read does not have.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d byte header", ErrTruncated, len(b))
	}
	h := Header{
		Magic:          binary.LittleEndian.Uint32(b[offMagic:]),
		Version:        b[offVersion],
		EntryCount:     b[offEntryCount],
		EntrySize:      b[offEntrySize],
		Generation:     binary.LittleEndian.Uint32(b[offGeneration:]),
		UpdateInterval: b[offUpdateInterval],
		Checksum:       binary.LittleEndian.Uint32(b[offChecksum:]),
	}
	copy(h.pad0[:], b[offVersion+1:])
	copy(h.pad1[:], b[offEntryCount+1:])
	copy(h.pad2[:], b[offEntrySize+1:])
	copy(h.pad3[:], b[offUpdateInterval+1:])
	copy(h.reserved[:], b[offReserved:offChecksum])

	if h.Magic != Magic {
		return Header{}, fmt.Errorf("%w: 0x%08x", ErrBadMagic, h.Magic)
	}
	if h.Version != Version1 {
		return Header{}, fmt.Errorf("%w: version %d", ErrBadVersion, h.Version)
	}
	if h.EntrySize != EntrySize {
		return Header{}, fmt.Errorf("%w: entry size 0x%02x", ErrBadVersion, h.EntrySize)
	}
	return h, nil
}

// EncodeHeader is the inverse of DecodeHeader. The checksum lane is
// written as held; EncodeBuffer overwrites it with the recomputed
// value.
func EncodeHeader(h Header) []byte {
	b := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(b[offMagic:], h.Magic)
	b[offVersion] = h.Version
	b[offEntryCount] = h.EntryCount
	b[offEntrySize] = h.EntrySize
	binary.LittleEndian.PutUint32(b[offGeneration:], h.Generation)
	b[offUpdateInterval] = h.UpdateInterval
	binary.LittleEndian.PutUint32(b[offChecksum:], h.Checksum)
	copy(b[offVersion+1:], h.pad0[:])
	copy(b[offEntryCount+1:], h.pad1[:])
	copy(b[offEntrySize+1:], h.pad2[:])
	copy(b[offUpdateInterval+1:], h.pad3[:])
	copy(b[offReserved:offChecksum], h.reserved[:])
	return b
}

// DecodeBuffer decodes a full buffer snapshot: header, checksum, and
// the declared entry table. b may extend past the declared buffer (a
// whole-region read); the excess is ignored.
func DecodeBuffer(b []byte) (Buffer, error) {
	return DecodeBufferWith(b, FieldSumChecksum)
}

// DecodeBufferWith decodes with a caller-supplied checksum algorithm,
// for hardware whose integrity field diverges from the captured unit.
func DecodeBufferWith(b []byte, sum ChecksumFunc) (Buffer, error) {
	h, err := DecodeHeader(b)
	if err != nil {
		return Buffer{}, err
	}
	total := BufferLen(h.EntryCount)
	if len(b) < total {
		return Buffer{}, fmt.Errorf("%w: %d bytes for %d declared entries",
			ErrTruncated, len(b), h.EntryCount)
	}
	if got := sum(b[:total]); got != h.Checksum {
		return Buffer{}, fmt.Errorf("%w: stored 0x%08x computed 0x%08x",
			ErrChecksumMismatch, h.Checksum, got)
	}
	entries := make([]Entry, h.EntryCount)
	for i := range entries {
		entries[i] = decodeEntry(b[HeaderSize+i*EntrySize:])
	}
	return Buffer{Header: h, Entries: entries}, nil
}

// EncodeBuffer is the inverse of DecodeBuffer. It emits exactly the
// declared buffer length, recomputes the checksum lane, and writes all
// padding bytes back exactly as held.
func EncodeBuffer(buf Buffer) []byte {
	return EncodeBufferWith(buf, FieldSumChecksum)
}

// EncodeBufferWith encodes with a caller-supplied checksum algorithm.
func EncodeBufferWith(buf Buffer, sum ChecksumFunc) []byte {
	h := buf.Header
	h.EntryCount = uint8(len(buf.Entries))
	b := make([]byte, BufferLen(h.EntryCount))
	copy(b, EncodeHeader(h))
	for i, e := range buf.Entries {
		copy(b[HeaderSize+i*EntrySize:], encodeEntry(e))
	}
	binary.LittleEndian.PutUint32(b[offChecksum:], sum(b))
	return b
}

func decodeEntry(b []byte) Entry {
	configStatus := binary.LittleEndian.Uint32(b[entOffConfigStatus:])
	e := Entry{
		CardID:                 binary.LittleEndian.Uint16(b[entOffCardID:]),
		SensorType:             SensorType(b[entOffSensorType]),
		Location:               SensorLocation(binary.LittleEndian.Uint32(b[entOffLocation:])),
		CautionThreshold:       CelsiusFromRaw(b[entOffCaution]),
		MaxContinuousThreshold: CelsiusFromRaw(b[entOffMaxContinuous]),
		Configuration:          uint16(configStatus),
		Status:                 Status(configStatus >> 16),
		Reading:                CelsiusFromRaw(b[entOffReading]),
		UpdateCount:            binary.LittleEndian.Uint16(b[entOffUpdateCount:]),
	}
	copy(e.pad0[:], b[entOffCardID+2:])
	copy(e.pad1[:], b[entOffSensorType+1:])
	copy(e.pad2[:], b[entOffCaution+1:])
	copy(e.pad3[:], b[entOffMaxContinuous+1:])
	copy(e.pad4[:], b[entOffReading+1:])
	copy(e.pad5[:], b[entOffUpdateCount+2:])
	return e
}

func encodeEntry(e Entry) []byte {
	b := make([]byte, EntrySize)
	binary.LittleEndian.PutUint16(b[entOffCardID:], e.CardID)
	b[entOffSensorType] = uint8(e.SensorType)
	binary.LittleEndian.PutUint32(b[entOffLocation:], uint32(e.Location))
	b[entOffCaution] = e.CautionThreshold.Raw()
	b[entOffMaxContinuous] = e.MaxContinuousThreshold.Raw()
	configStatus := uint32(e.Configuration) | uint32(e.Status)<<16
	binary.LittleEndian.PutUint32(b[entOffConfigStatus:], configStatus)
	b[entOffReading] = e.Reading.Raw()
	binary.LittleEndian.PutUint16(b[entOffUpdateCount:], e.UpdateCount)
	copy(b[entOffCardID+2:], e.pad0[:])
	copy(b[entOffSensorType+1:], e.pad1[:])
	copy(b[entOffCaution+1:], e.pad2[:])
	copy(b[entOffMaxContinuous+1:], e.pad3[:])
	copy(b[entOffReading+1:], e.pad4[:])
	copy(b[entOffUpdateCount+2:], e.pad5[:])
	return b
}
