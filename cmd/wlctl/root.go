package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/wearkit/cmd/wlctl/logger"
	"github.com/joshuapare/wearkit/device"
	"github.com/joshuapare/wearkit/internal/config"
	"github.com/joshuapare/wearkit/internal/format"
	"github.com/joshuapare/wearkit/wear"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	noColor bool
	logDir  string

	// Store flags; unset values fall back to the config file
	configPath string
	poolStart  int
	poolSize   int
	window     int
	mode       string
	seed       int64
	guardOn    bool
	maxWrites  uint64
	markerHex  bool
)

var rootCmd = &cobra.Command{
	Use:   "wlctl",
	Short: "Read, write and inspect wear-leveled EEPROM images",
	Long: `wlctl manages key/value records stored in EEPROM images with wear
leveling. Records are found by their 8-byte marker, validated by checksum, and
each rewrite moves so that it overwrites the previous record's marker.`,
	Version: "0.1.0",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		return logger.Init(logger.Options{
			Enabled: verbose || logDir != "",
			LogDir:  logDir,
			Level:   level,
		})
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Write JSON logs to this directory")

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().IntVar(&poolStart, "pool-start", -1, "First pool address (default from config, else 0)")
	rootCmd.PersistentFlags().IntVar(&poolSize, "pool-size", -1, "Pool size in bytes, 0 for rest of device")
	rootCmd.PersistentFlags().IntVar(&window, "window", 0, "Marker scan window in bytes")
	rootCmd.PersistentFlags().StringVar(&mode, "mode", "", "Allocation mode: wear or sequential")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", -1, "Seed for first-record placement")
	rootCmd.PersistentFlags().BoolVar(&guardOn, "guard", false, "Bound device access to the pool")
	rootCmd.PersistentFlags().Uint64Var(&maxWrites, "max-writes", 0, "Write budget for the guard (implies --guard)")
	rootCmd.PersistentFlags().BoolVar(&markerHex, "marker-hex", false, "Treat markers as hex bytes")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resetFlags restores every global flag to its default.
func resetFlags() {
	verbose, quiet, jsonOut, noColor = false, false, false, false
	logDir, configPath, mode = "", "", ""
	poolStart, poolSize, window = -1, -1, 0
	seed = -1
	guardOn, maxWrites, markerHex = false, 0, false
}

// loadConfig reads --config, if any, and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if poolStart >= 0 {
		cfg.Pool.Start = poolStart
	}
	if poolSize >= 0 {
		cfg.Pool.Size = poolSize
	}
	if window > 0 {
		cfg.Scan.Window = window
	}
	if mode != "" {
		cfg.Mode = mode
	}
	if seed >= 0 {
		s := uint64(seed)
		cfg.Seed = &s
	}
	if guardOn || maxWrites > 0 {
		cfg.Guard.Enabled = true
	}
	if maxWrites > 0 {
		cfg.Guard.MaxWrites = maxWrites
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseMarker reads a marker argument as text or, with --marker-hex, as hex.
func parseMarker(s string) (format.Marker, error) {
	if markerHex {
		return format.ParseMarkerHex(s)
	}
	return format.ParseMarker(s)
}

// imageDevice is an image file opened as a device.
type imageDevice interface {
	device.Device
	Path() string
	Close() error
}

// session is an open image with a store over it.
type session struct {
	img   imageDevice
	guard *device.Guard
	store *wear.Store
	cfg   *config.Config
}

// openSession opens the image read-write when writable is set and as a
// read-only snapshot otherwise.
func openSession(path string, writable bool) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	printVerbose("Opening image: %s\n", path)

	var img imageDevice
	if writable {
		f, err := device.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open image: %w", err)
		}
		img = f
	} else {
		snap, err := device.OpenSnapshot(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open image: %w", err)
		}
		img = snap
	}

	opts, err := cfg.StoreOptions(logger.L)
	if err != nil {
		_ = img.Close()
		return nil, err
	}
	dev, guard := cfg.Wrap(img)
	store, err := wear.New(dev, opts)
	if err != nil {
		_ = img.Close()
		return nil, err
	}
	logger.Debug("session opened",
		"image", path, "size", img.Size(), "pool", store.Pool().String(), "writable", writable)
	return &session{img: img, guard: guard, store: store, cfg: cfg}, nil
}

// close syncs a writable image when requested and closes it.
func (s *session) close(sync bool) error {
	var errs []error
	if f, ok := s.img.(*device.File); ok && sync {
		if err := f.Sync(context.Background()); err != nil {
			errs = append(errs, fmt.Errorf("failed to sync image: %w", err))
		}
	}
	if err := s.img.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close image: %w", err))
	}
	return errors.Join(errs...)
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// formatSize renders a byte count for humans.
func formatSize(n int) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d bytes", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
}
