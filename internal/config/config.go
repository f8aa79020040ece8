// Package config loads wlctl configuration files.
//
// A configuration file describes the pool a store uses, the scan window, the
// allocation mode, an optional placement seed and the diagnostic guard:
//
//	pool:
//	  start: 0
//	  size: 0          # 0 = rest of device
//	scan:
//	  window: 128
//	mode: wear         # wear | sequential
//	seed: 42           # optional deterministic placement
//	guard:
//	  enabled: false
//	  max_writes: 0
//	  strict: false
//
// Keys left out of a file keep their Default values.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/wearkit/device"
	"github.com/joshuapare/wearkit/internal/format"
	"github.com/joshuapare/wearkit/wear"
)

// Config is the parsed configuration file.
type Config struct {
	Pool  Pool    `yaml:"pool"`
	Scan  Scan    `yaml:"scan"`
	Mode  string  `yaml:"mode"`           // wear | sequential
	Seed  *uint64 `yaml:"seed,omitempty"` // nil seeds from the clock
	Guard Guard   `yaml:"guard"`
}

// Pool is the address range records live in.
type Pool struct {
	Start int `yaml:"start"`
	Size  int `yaml:"size"` // <= 0 means the rest of the device
}

// Scan tunes the marker scanner.
type Scan struct {
	Window int `yaml:"window"`
}

// Guard configures the diagnostic device wrapper.
type Guard struct {
	Enabled   bool   `yaml:"enabled"`
	MaxWrites uint64 `yaml:"max_writes"` // 0 = unlimited
	Strict    bool   `yaml:"strict"`     // panic on violations
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Scan: Scan{Window: wear.DefaultWindowSize},
		Mode: wear.ModeWearLevel.String(),
	}
}

// Validate checks values that do not depend on the device size.
func (c *Config) Validate() error {
	if c.Pool.Start < 0 {
		return fmt.Errorf("pool start cannot be negative: %d", c.Pool.Start)
	}
	if c.Scan.Window != 0 && c.Scan.Window <= format.MarkerLen {
		return fmt.Errorf("scan window must exceed %d bytes: %d", format.MarkerLen, c.Scan.Window)
	}
	if _, err := wear.ParseMode(c.Mode); err != nil {
		return err
	}
	return nil
}

// Parse decodes YAML data over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// StoreOptions converts the configuration into store options.
func (c *Config) StoreOptions(logger *slog.Logger) (*wear.Options, error) {
	mode, err := wear.ParseMode(c.Mode)
	if err != nil {
		return nil, err
	}
	opts := wear.DefaultOptions()
	opts.PoolStart = c.Pool.Start
	opts.PoolSize = c.Pool.Size
	if c.Scan.Window != 0 {
		opts.WindowSize = c.Scan.Window
	}
	opts.Mode = mode
	if c.Seed != nil {
		opts.Rand = wear.NewSeededSource(*c.Seed)
	}
	opts.Logger = logger
	return opts, nil
}

// GuardOptions returns guard settings bounded to the configured pool.
func (c *Config) GuardOptions() device.GuardOptions {
	opts := device.GuardOptions{
		Lo:        c.Pool.Start,
		MaxWrites: c.Guard.MaxWrites,
		Strict:    c.Guard.Strict,
	}
	if c.Pool.Size > 0 {
		opts.Hi = c.Pool.Start + c.Pool.Size
	}
	return opts
}

// Wrap returns dev behind a Guard when the guard is enabled, and the guard
// itself (nil otherwise).
func (c *Config) Wrap(dev device.Device) (device.Device, *device.Guard) {
	if !c.Guard.Enabled {
		return dev, nil
	}
	g := device.NewGuard(dev, c.GuardOptions())
	return g, g
}
