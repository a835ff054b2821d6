package client

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/conroy-cheers/ocsd/physmem"
	"github.com/conroy-cheers/ocsd/protocol"
)

// DefaultMaxRetries bounds torn read/write retries per operation.
const DefaultMaxRetries = 3

// Config configures a Client.
type Config struct {
	// MaxRetries bounds how many times a torn read or write is retried
	// before the operation fails. Zero or negative selects
	// DefaultMaxRetries.
	MaxRetries int
	// Logger receives per-attempt diagnostics. The zero value is a
	// disabled logger.
	Logger zerolog.Logger
}

func DefaultConfig() Config {
	return Config{MaxRetries: DefaultMaxRetries, Logger: zerolog.Nop()}
}

// Client combines the buffer codec with generation-counter fencing to
// read the shared region and publish per-slot temperatures into it.
type Client struct {
	win        physmem.Window
	maxRetries int
	log        zerolog.Logger
}

func New(win physmem.Window, cfg Config) *Client {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	return &Client{win: win, maxRetries: cfg.MaxRetries, log: cfg.Logger}
}

// Slot pairs an entry with its index in the buffer's entry table.
type Slot struct {
	Index int
	Entry protocol.Entry
}

// ReadHeader fetches and decodes just the system header under the
// torn-read fence. No entries are decoded and the checksum is not
// validated (it spans the whole buffer).
func (c *Client) ReadHeader() (protocol.Header, error) {
	return c.protectedReadHeader()
}

// ReadAll performs one protected full read and eagerly materializes
// every declared slot. The result is a snapshot: the controller may
// rewrite the region the moment this returns, so nothing is cached or
// exposed lazily.
func (c *Client) ReadAll() ([]Slot, error) {
	buf, err := c.protectedRead()
	if err != nil {
		return nil, err
	}
	slots := make([]Slot, len(buf.Entries))
	for i, e := range buf.Entries {
		slots[i] = Slot{Index: i, Entry: e}
	}
	return slots, nil
}

// PublishReading writes one temperature and status into the designated
// slot through the full read-modify-write sequence. Every other slot
// and all opaque bytes are written back untouched. The slot's update
// count is advanced so the controller sees the reading as live.
func (c *Client) PublishReading(slot int, reading protocol.Celsius, status protocol.Status) error {
	if slot < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	return c.publish(slot, func(e *protocol.Entry) {
		e.Reading = reading
		e.Status = status
		if e.SensorType == protocol.SensorTypeUnknown {
			e.SensorType = protocol.SensorTypeThermal
		}
		e.UpdateCount++
	})
}
