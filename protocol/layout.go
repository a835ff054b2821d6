package protocol

// OCSD buffer geometry. These values define the wire contract recovered
// from hardware captures and MUST NOT be configurable.

const (
	// Magic marks the start of an OCSD buffer ("OCSD" in byte order).
	Magic uint32 = 0x4453434F

	// Version1 is the only header format this codec recognizes.
	Version1 uint8 = 1

	// HeaderSize is the fixed system header size in bytes.
	HeaderSize = 0x40

	// EntrySize is the fixed per-slot entry size in bytes.
	EntrySize = 0x20

	// GenerationOffset locates the 4-byte generation counter inside the
	// header. Exported so the torn-read fence can re-read just that lane.
	GenerationOffset = 0x10

	// GenerationLen is the width of the generation counter lane.
	GenerationLen = 4
)

// Header field offsets. Single-byte fields sit in 4-byte lanes; the
// trailing lane bytes are opaque padding round-tripped verbatim.
const (
	offMagic          = 0x00
	offVersion        = 0x04
	offEntryCount     = 0x08
	offEntrySize      = 0x0C
	offGeneration     = 0x10
	offUpdateInterval = 0x14
	offReserved       = 0x18
	offChecksum       = 0x3C
)

// headerReservedLen covers offsets 0x18..0x3B.
const headerReservedLen = offChecksum - offReserved

// Entry field offsets, relative to the entry start.
const (
	entOffCardID        = 0x00
	entOffSensorType    = 0x04
	entOffLocation      = 0x08
	entOffCaution       = 0x0C
	entOffMaxContinuous = 0x10
	entOffConfigStatus  = 0x14
	entOffReading       = 0x18
	entOffUpdateCount   = 0x1C
)

// BufferLen returns the encoded byte length of a buffer holding
// entryCount slots.
func BufferLen(entryCount uint8) int {
	return HeaderSize + int(entryCount)*EntrySize
}
