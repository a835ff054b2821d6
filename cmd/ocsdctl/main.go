package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/conroy-cheers/ocsd/client"
	"github.com/conroy-cheers/ocsd/internal/logging"
	"github.com/conroy-cheers/ocsd/physmem"
	"github.com/conroy-cheers/ocsd/protocol"
)

func main() {
	logging.ConfigureRuntime()
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "header":
		err = runHeader(os.Args[2:])
	case "entries":
		err = runEntries(os.Args[2:])
	case "report":
		err = runReport(os.Args[2:])
	case "help", "-h", "--help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "ocsdctl: unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ocsdctl: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: ocsdctl <command> [flags]

commands:
  header    print the decoded buffer header
  entries   print every declared entry slot
  report    publish a temperature reading into a slot`)
}

func openClient(cfgPath string) (*client.Client, *physmem.DevMem, error) {
	cfg, err := loadRuntimeConfig(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	win, err := physmem.OpenDevMem(cfg.BaseAddress, cfg.RegionSize)
	if err != nil {
		return nil, nil, err
	}
	c := client.New(win, client.Config{
		MaxRetries: cfg.MaxRetries,
		Logger:     logging.NewLogger("ocsdctl"),
	})
	return c, win, nil
}

func runHeader(args []string) error {
	fs := flag.NewFlagSet("header", flag.ExitOnError)
	cfgPath := fs.String("config", "ocsd.toml", "path to TOML config")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, win, err := openClient(*cfgPath)
	if err != nil {
		return err
	}
	defer win.Close()

	h, err := c.ReadHeader()
	if err != nil {
		return err
	}
	fmt.Printf("magic:           0x%08x\n", h.Magic)
	fmt.Printf("version:         %d\n", h.Version)
	fmt.Printf("entries:         %d\n", h.EntryCount)
	fmt.Printf("entry size:      0x%02x\n", h.EntrySize)
	fmt.Printf("generation:      %d\n", h.Generation)
	fmt.Printf("update interval: %ds\n", h.UpdateInterval)
	fmt.Printf("checksum:        0x%08x\n", h.Checksum)
	return nil
}

func runEntries(args []string) error {
	fs := flag.NewFlagSet("entries", flag.ExitOnError)
	cfgPath := fs.String("config", "ocsd.toml", "path to TOML config")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, win, err := openClient(*cfgPath)
	if err != nil {
		return err
	}
	defer win.Close()

	slots, err := c.ReadAll()
	if err != nil {
		return err
	}
	for _, s := range slots {
		e := s.Entry
		fmt.Printf("slot %d: card=0x%04x reading=%s status=%s count=%d\n",
			s.Index, e.CardID, e.Reading, e.Status, e.UpdateCount)
	}
	return nil
}

func runReport(args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	cfgPath := fs.String("config", "ocsd.toml", "path to TOML config")
	slot := fs.Int("slot", -1, "entry slot to publish into")
	degrees := fs.Int("temp", 0, "temperature in degrees celsius")
	interval := fs.Duration("interval", 0, "republish interval; 0 publishes once")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *slot < 0 {
		return fmt.Errorf("report: -slot is required")
	}
	reading, err := protocol.NewCelsius(*degrees)
	if err != nil {
		return err
	}

	c, win, err := openClient(*cfgPath)
	if err != nil {
		return err
	}
	defer win.Close()

	log := logging.NewLogger("ocsdctl")
	for {
		if err := c.PublishReading(*slot, reading, protocol.StatusHealthy); err != nil {
			return err
		}
		log.Info().Int("slot", *slot).Stringer("reading", reading).Msg("published")
		if *interval <= 0 {
			return nil
		}
		time.Sleep(*interval)
	}
}
