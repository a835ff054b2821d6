package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/conroy-cheers/ocsd/client"
	"github.com/conroy-cheers/ocsd/protocol"
)

// ocsdctl config.toml key mapping to runtime settings. The buffer's
// physical base address and region size vary per hardware model, so
// both come from configuration.
type fileConfig struct {
	BaseAddress string `toml:"base_address"`
	RegionSize  int    `toml:"region_size"`
	MaxRetries  int    `toml:"max_retries"`
}

type runtimeConfig struct {
	BaseAddress uint64
	RegionSize  int
	MaxRetries  int
}

func defaultRuntimeConfig() runtimeConfig {
	return runtimeConfig{
		RegionSize: 0x1000,
		MaxRetries: client.DefaultMaxRetries,
	}
}

// ocsdctl loader for TOML config with default overlay.
func loadRuntimeConfig(path string) (runtimeConfig, error) {
	cfg := defaultRuntimeConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return runtimeConfig{}, fmt.Errorf("load ocsdctl config: %w", err)
	}

	if meta.IsDefined("base_address") {
		addr, err := parseAddress(raw.BaseAddress)
		if err != nil {
			return runtimeConfig{}, err
		}
		cfg.BaseAddress = addr
	}
	if meta.IsDefined("region_size") {
		cfg.RegionSize = raw.RegionSize
	}
	if meta.IsDefined("max_retries") {
		cfg.MaxRetries = raw.MaxRetries
	}

	if err := validateRuntimeConfig(cfg); err != nil {
		return runtimeConfig{}, err
	}
	return cfg, nil
}

func validateRuntimeConfig(cfg runtimeConfig) error {
	if cfg.BaseAddress == 0 {
		return fmt.Errorf("config missing base_address")
	}
	if cfg.RegionSize < protocol.HeaderSize {
		return fmt.Errorf("region_size %d smaller than the %d byte header",
			cfg.RegionSize, protocol.HeaderSize)
	}
	if cfg.MaxRetries < 0 {
		return fmt.Errorf("max_retries must not be negative")
	}
	return nil
}

// parseAddress accepts decimal or 0x-prefixed hexadecimal.
func parseAddress(raw string) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("parse base_address %q: %w", raw, err)
	}
	return v, nil
}
