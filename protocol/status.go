package protocol

import (
	"fmt"
	"strings"
)

// Status is the u16 bitmask describing one slot's sensor state. Bits
// beyond the named ones are not understood and are preserved verbatim.
type Status uint16

const (
	// StatusNotFailed is set while the sensor has not faulted.
	StatusNotFailed Status = 1 << 0
	// StatusPresent marks the slot as populated.
	StatusPresent Status = 1 << 1
	// StatusDisabled marks the slot as administratively disabled.
	StatusDisabled Status = 1 << 2
	// StatusWithChecksum tells the controller the writer maintains the
	// buffer checksum.
	StatusWithChecksum Status = 1 << 3
)

// StatusHealthy is the flag set a host-published live reading carries.
const StatusHealthy = StatusNotFailed | StatusPresent | StatusWithChecksum

var statusNames = []struct {
	bit  Status
	name string
}{
	{StatusNotFailed, "not-failed"},
	{StatusPresent, "present"},
	{StatusDisabled, "disabled"},
	{StatusWithChecksum, "with-checksum"},
}

// Has reports whether every bit of flag is set.
func (s Status) Has(flag Status) bool {
	return s&flag == flag
}

// With returns s with the given bits set.
func (s Status) With(flag Status) Status {
	return s | flag
}

// Without returns s with the given bits cleared.
func (s Status) Without(flag Status) Status {
	return s &^ flag
}

// Names decomposes the set into its active named bits for diagnostics.
// Unknown bits are reported as one hexadecimal remainder token.
func (s Status) Names() []string {
	names := make([]string, 0, len(statusNames))
	rest := s
	for _, e := range statusNames {
		if s.Has(e.bit) {
			names = append(names, e.name)
			rest = rest.Without(e.bit)
		}
	}
	if rest != 0 {
		names = append(names, fmt.Sprintf("unknown(0x%04x)", uint16(rest)))
	}
	return names
}

func (s Status) String() string {
	if s == 0 {
		return "none"
	}
	return strings.Join(s.Names(), "|")
}
