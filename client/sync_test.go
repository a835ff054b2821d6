package client

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/conroy-cheers/ocsd/internal/testutil/testlog"
	"github.com/conroy-cheers/ocsd/protocol"
)

// failedReadCount reads the failed protected-read counter off the
// default registry.
func failedReadCount(t *testing.T) float64 {
	t.Helper()
	mfs, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() != "ocsd_sync_reads_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "success" && l.GetValue() == "false" {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

// tearOnFence makes the simulated controller write between the buffer
// read and the generation re-read, for the first `times` fence checks.
func tearOnFence(t *testing.T, win *stubWindow, times int) {
	remaining := times
	win.beforeRead = func(off, n int) {
		if off != protocol.GenerationOffset || n != protocol.GenerationLen {
			return
		}
		if times >= 0 && remaining == 0 {
			return
		}
		remaining--
		win.controllerRewrite(t, func(buf *protocol.Buffer) {
			buf.Header.Generation++
		})
	}
}

const tearAlways = -1

func TestReadAllTornReadExhaustsRetries(t *testing.T) {
	testlog.Start(t)
	win := &stubWindow{region: seedRegion(t, 4)}
	tearOnFence(t, win, tearAlways)
	c := New(win, Config{MaxRetries: 2})

	_, err := c.ReadAll()
	if !errors.Is(err, ErrTornRead) {
		t.Fatalf("expected ErrTornRead, got %v", err)
	}
	if win.writes != 0 {
		t.Fatalf("torn read caused writes: %d", win.writes)
	}
}

func TestReadAllRecoversFromSingleTear(t *testing.T) {
	testlog.Start(t)
	win := &stubWindow{region: seedRegion(t, 4)}
	tearOnFence(t, win, 1)
	c := New(win, DefaultConfig())

	slots, err := c.ReadAll()
	if err != nil {
		t.Fatalf("read all after single tear: %v", err)
	}
	if len(slots) != 4 {
		t.Fatalf("slot count: %d", len(slots))
	}
}

func TestReadAllWindowErrorFailsFastAndCounts(t *testing.T) {
	testlog.Start(t)
	before := failedReadCount(t)
	busErr := errors.New("bus fault")
	win := &stubWindow{region: seedRegion(t, 4), readErr: busErr}
	c := New(win, Config{MaxRetries: 2})

	if _, err := c.ReadAll(); !errors.Is(err, busErr) {
		t.Fatalf("expected wrapped window error, got %v", err)
	}
	if win.reads != 1 {
		t.Fatalf("window error must not be retried: %d reads", win.reads)
	}
	if got := failedReadCount(t); got != before+1 {
		t.Fatalf("failed read counter: got %v want %v", got, before+1)
	}
}

func TestReadHeaderTornExhaustsRetries(t *testing.T) {
	testlog.Start(t)
	win := &stubWindow{region: seedRegion(t, 4)}
	tearOnFence(t, win, tearAlways)
	c := New(win, Config{MaxRetries: 1})

	if _, err := c.ReadHeader(); !errors.Is(err, ErrTornRead) {
		t.Fatalf("expected ErrTornRead, got %v", err)
	}
}

func TestPublishRetriesAfterTornWrite(t *testing.T) {
	testlog.Start(t)
	win := &stubWindow{region: seedRegion(t, 4)}
	interfered := false
	win.afterWrite = func() {
		if interfered {
			return
		}
		interfered = true
		win.controllerRewrite(t, func(buf *protocol.Buffer) {
			buf.Header.Generation++
		})
	}
	c := New(win, DefaultConfig())

	newValue := mustCelsius(t, 61)
	if err := c.PublishReading(1, newValue, protocol.StatusHealthy); err != nil {
		t.Fatalf("publish with one torn write: %v", err)
	}
	if win.writes != 2 {
		t.Fatalf("expected one retry write, got %d writes", win.writes)
	}
	slots, err := c.ReadAll()
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if slots[1].Entry.Reading != newValue {
		t.Fatalf("slot 1 reading after retry: %v", slots[1].Entry.Reading)
	}
}

func TestPublishTornWriteExhaustsRetries(t *testing.T) {
	testlog.Start(t)
	win := &stubWindow{region: seedRegion(t, 4)}
	win.afterWrite = func() {
		win.controllerRewrite(t, func(buf *protocol.Buffer) {
			buf.Header.Generation++
		})
	}
	c := New(win, Config{MaxRetries: 2})

	err := c.PublishReading(0, mustCelsius(t, 48), protocol.StatusHealthy)
	if !errors.Is(err, ErrTornWrite) {
		t.Fatalf("expected ErrTornWrite, got %v", err)
	}
	if win.writes != 3 {
		t.Fatalf("expected 3 write attempts, got %d", win.writes)
	}
}

func TestPublishVerifyMismatchIsTerminal(t *testing.T) {
	testlog.Start(t)
	win := &stubWindow{region: seedRegion(t, 4)}
	win.afterWrite = func() {
		// Same generation, different payload: the region did not take
		// the value we wrote.
		win.controllerRewrite(t, func(buf *protocol.Buffer) {
			buf.Entries[3].Reading = protocol.CelsiusFromRaw(0x7F)
		})
	}
	c := New(win, DefaultConfig())

	err := c.PublishReading(3, mustCelsius(t, 50), protocol.StatusHealthy)
	if !errors.Is(err, ErrVerifyMismatch) {
		t.Fatalf("expected ErrVerifyMismatch, got %v", err)
	}
	if win.writes != 1 {
		t.Fatalf("verify mismatch must not retry: %d writes", win.writes)
	}
}
