package client

import (
	"encoding/binary"
	"fmt"

	"github.com/conroy-cheers/ocsd/internal/observability"
	"github.com/conroy-cheers/ocsd/protocol"
)

// readGeneration re-reads just the generation counter lane. Used as the
// second read of the torn-detection fence.
func (c *Client) readGeneration() (uint32, error) {
	b, err := c.win.ReadRange(protocol.GenerationOffset, protocol.GenerationLen)
	if err != nil {
		return 0, fmt.Errorf("client: read generation: %w", err)
	}
	return binary.LittleEndian.Uint32(b), nil
}

// protectedReadHeader reads the header once, then re-reads the
// generation lane. A moved counter means the controller wrote in
// between and the header bytes may be torn.
func (c *Client) protectedReadHeader() (protocol.Header, error) {
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		raw, err := c.win.ReadRange(0, protocol.HeaderSize)
		if err != nil {
			return protocol.Header{}, fmt.Errorf("client: read header: %w", err)
		}
		h, err := protocol.DecodeHeader(raw)
		if err != nil {
			return protocol.Header{}, err
		}
		gen, err := c.readGeneration()
		if err != nil {
			return protocol.Header{}, err
		}
		if gen == h.Generation {
			return h, nil
		}
		observability.RecordTornRetry("read")
		c.log.Debug().Uint32("read", h.Generation).Uint32("reread", gen).
			Int("attempt", attempt).Msg("torn header read")
	}
	return protocol.Header{}, fmt.Errorf("%w: header unstable after %d attempts",
		ErrTornRead, c.maxRetries+1)
}

// protectedRead reads the full declared buffer once, then re-reads the
// generation lane and compares. Codec failures are terminal; only a
// moved generation counter is retried.
func (c *Client) protectedRead() (protocol.Buffer, error) {
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		hdrRaw, err := c.win.ReadRange(0, protocol.HeaderSize)
		if err != nil {
			observability.RecordProtectedRead(false)
			return protocol.Buffer{}, fmt.Errorf("client: read header: %w", err)
		}
		h, err := protocol.DecodeHeader(hdrRaw)
		if err != nil {
			observability.RecordProtectedRead(false)
			return protocol.Buffer{}, err
		}
		raw, err := c.win.ReadRange(0, protocol.BufferLen(h.EntryCount))
		if err != nil {
			observability.RecordProtectedRead(false)
			return protocol.Buffer{}, fmt.Errorf("client: read buffer: %w", err)
		}
		buf, err := protocol.DecodeBuffer(raw)
		if err != nil {
			observability.RecordProtectedRead(false)
			return protocol.Buffer{}, err
		}
		gen, err := c.readGeneration()
		if err != nil {
			observability.RecordProtectedRead(false)
			return protocol.Buffer{}, err
		}
		if gen == buf.Header.Generation {
			observability.RecordProtectedRead(true)
			return buf, nil
		}
		observability.RecordTornRetry("read")
		c.log.Debug().Uint32("read", buf.Header.Generation).Uint32("reread", gen).
			Int("attempt", attempt).Msg("torn buffer read")
	}
	observability.RecordProtectedRead(false)
	return protocol.Buffer{}, fmt.Errorf("%w: buffer unstable after %d attempts",
		ErrTornRead, c.maxRetries+1)
}

// publish runs the write sequence: protected read, mutate one slot,
// bump the generation, write the whole encoded buffer in a single call,
// then read back and verify. A generation that moved past the expected
// value means the controller raced the write; the whole sequence is
// retried.
func (c *Client) publish(slot int, mutate func(*protocol.Entry)) error {
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		buf, err := c.protectedRead()
		if err != nil {
			observability.RecordPublish(false)
			return err
		}
		if slot >= len(buf.Entries) {
			observability.RecordPublish(false)
			return fmt.Errorf("%w: slot %d with %d entries declared",
				ErrInvalidSlot, slot, len(buf.Entries))
		}
		entry := buf.Entries[slot]
		mutate(&entry)
		buf.Entries[slot] = entry
		want := buf.Header.Generation + 1
		buf.Header.Generation = want

		// One full-buffer write: the controller must never observe a
		// partially updated region.
		if err := c.win.WriteRange(0, protocol.EncodeBuffer(buf)); err != nil {
			observability.RecordPublish(false)
			return fmt.Errorf("client: write buffer: %w", err)
		}

		verify, err := c.protectedRead()
		if err != nil {
			observability.RecordPublish(false)
			return err
		}
		if verify.Header.Generation != want {
			observability.RecordTornRetry("write")
			c.log.Debug().Uint32("want", want).Uint32("got", verify.Header.Generation).
				Int("attempt", attempt).Msg("torn write")
			continue
		}
		if verify.Entries[slot] != entry {
			observability.RecordPublish(false)
			return fmt.Errorf("%w: slot %d read back differs", ErrVerifyMismatch, slot)
		}
		observability.RecordPublish(true)
		return nil
	}
	observability.RecordPublish(false)
	return fmt.Errorf("%w: controller kept racing after %d attempts",
		ErrTornWrite, c.maxRetries+1)
}
