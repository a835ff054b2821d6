package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ocsd.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadRuntimeConfigDefaultsAndOverrides(t *testing.T) {
	path := writeConfig(t, `base_address = "0x9e3f1000"`)

	cfg, err := loadRuntimeConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BaseAddress != 0x9e3f1000 {
		t.Fatalf("unexpected base address: 0x%x", cfg.BaseAddress)
	}
	if cfg.RegionSize != 0x1000 {
		t.Fatalf("default region size not applied: %d", cfg.RegionSize)
	}
	if cfg.MaxRetries != 3 {
		t.Fatalf("default retries not applied: %d", cfg.MaxRetries)
	}
}

func TestLoadRuntimeConfigFullOverride(t *testing.T) {
	path := writeConfig(t, `
base_address = "40960"
region_size = 512
max_retries = 7
`)

	cfg, err := loadRuntimeConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BaseAddress != 40960 {
		t.Fatalf("decimal base address: 0x%x", cfg.BaseAddress)
	}
	if cfg.RegionSize != 512 || cfg.MaxRetries != 7 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadRuntimeConfigRejectsMissingBaseAddress(t *testing.T) {
	path := writeConfig(t, `region_size = 4096`)
	if _, err := loadRuntimeConfig(path); err == nil {
		t.Fatalf("expected error for missing base_address")
	}
}

func TestLoadRuntimeConfigRejectsTinyRegion(t *testing.T) {
	path := writeConfig(t, `
base_address = "0x1000"
region_size = 16
`)
	if _, err := loadRuntimeConfig(path); err == nil {
		t.Fatalf("expected error for undersized region")
	}
}

func TestLoadRuntimeConfigRejectsBadAddress(t *testing.T) {
	path := writeConfig(t, `base_address = "zz"`)
	if _, err := loadRuntimeConfig(path); err == nil {
		t.Fatalf("expected error for malformed base_address")
	}
}
