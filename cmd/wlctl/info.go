package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <image>",
		Short: "Report image size, readiness and store settings",
		Long: `The info command opens an image and displays its size, whether the device
is ready, and the pool, scan window and allocation mode in effect.

Example:
  wlctl info eeprom.bin
  wlctl info eeprom.bin --config wlctl.yaml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

func runInfo(args []string) error {
	s, err := openSession(args[0], false)
	if err != nil {
		return err
	}
	defer s.close(false)

	pool := s.store.Pool()
	window := s.cfg.Scan.Window
	info := map[string]interface{}{
		"path":       s.img.Path(),
		"size":       s.img.Size(),
		"ready":      s.store.Device().Ready(),
		"pool_start": pool.Start,
		"pool_end":   pool.End,
		"pool_size":  pool.Len(),
		"window":     window,
		"mode":       s.cfg.Mode,
		"guard":      s.guard != nil,
	}

	if jsonOut {
		return printJSON(info)
	}

	printInfo("\nImage Information:\n")
	printInfo("  File: %s\n", s.img.Path())
	printInfo("  Size: %s\n", formatSize(s.img.Size()))
	printInfo("  Ready: %t\n", s.store.Device().Ready())
	printInfo("\nStore:\n")
	printInfo("  Pool: %s (%s)\n", pool, formatSize(pool.Len()))
	printInfo("  Scan window: %d bytes\n", window)
	printInfo("  Mode: %s\n", s.cfg.Mode)
	if s.guard != nil {
		lo, hi := s.guard.Bounds()
		budget := "unlimited"
		if s.cfg.Guard.MaxWrites > 0 {
			budget = fmt.Sprintf("%d writes", s.cfg.Guard.MaxWrites)
		}
		printInfo("  Guard: [0x%x, 0x%x), budget %s\n", lo, hi, budget)
	}
	return nil
}
