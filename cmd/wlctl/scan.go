package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/wearkit/wear"
)

func init() {
	rootCmd.AddCommand(newScanCmd())
}

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <image> <marker>",
		Short: "List every occurrence of a marker in the pool",
		Long: `The scan command reports each place the marker appears in the pool and
whether the record there is valid. Torn writes show up as checksum mismatches.

Example:
  wlctl scan eeprom.bin CONFIG
  wlctl scan eeprom.bin CONFIG --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(args)
		},
	}
	return cmd
}

type scanEntry struct {
	Addr     int    `json:"addr"`
	Size     int    `json:"size"`
	Checksum uint8  `json:"checksum"`
	Valid    bool   `json:"valid"`
	Reason   string `json:"reason,omitempty"`
}

func runScan(args []string) error {
	marker, err := parseMarker(args[1])
	if err != nil {
		return fmt.Errorf("invalid marker: %w", err)
	}

	s, err := openSession(args[0], false)
	if err != nil {
		return err
	}
	defer s.close(false)

	entries := []scanEntry{}
	err = s.store.Candidates(marker, func(c wear.Candidate) bool {
		entries = append(entries, scanEntry{
			Addr:     c.Addr,
			Size:     int(c.Header.Size),
			Checksum: c.Header.Checksum,
			Valid:    c.Valid,
			Reason:   c.Reason,
		})
		return true
	})
	if err != nil {
		return fmt.Errorf("failed to scan: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"marker":     marker.String(),
			"pool":       s.store.Pool().String(),
			"candidates": entries,
		})
	}

	printInfo("Marker %s (%s) in pool %s:\n", marker, marker.Hex(), s.store.Pool())
	if len(entries) == 0 {
		printInfo("  no occurrences\n")
		return nil
	}
	for _, e := range entries {
		if e.Valid {
			printInfo("  0x%06x  %5d bytes  ✓ valid\n", e.Addr, e.Size)
		} else {
			printInfo("  0x%06x  %5d bytes  ✗ %s\n", e.Addr, e.Size, e.Reason)
		}
	}
	return nil
}
