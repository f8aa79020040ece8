package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/wearkit/device"
)

var readHex bool

func init() {
	cmd := newReadCmd()
	cmd.Flags().BoolVar(&readHex, "hex", false, "Print the value as hex")
	rootCmd.AddCommand(cmd)
}

func newReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read <image> <marker>",
		Short: "Print the current value of a marker",
		Long: `The read command scans the pool for the marker's valid record and prints
its payload. Records failing their checksum are skipped.

Example:
  wlctl read eeprom.bin CONFIG
  wlctl read eeprom.bin CONFIG --hex
  wlctl read eeprom.bin CONFIG --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(args)
		},
	}
	return cmd
}

func runRead(args []string) error {
	marker, err := parseMarker(args[1])
	if err != nil {
		return fmt.Errorf("invalid marker: %w", err)
	}

	s, err := openSession(args[0], false)
	if err != nil {
		return err
	}
	defer s.close(false)

	rec, err := s.store.Locate(marker)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", marker, err)
	}
	payload := make([]byte, rec.Header.Size)
	if err := device.ReadRange(s.store.Device(), rec.PayloadAddr(), payload); err != nil {
		return fmt.Errorf("failed to read %s: %w", marker, err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"marker":   marker.String(),
			"addr":     rec.Addr,
			"size":     len(payload),
			"checksum": rec.Header.Checksum,
			"value":    hex.EncodeToString(payload),
		})
	}
	printVerbose("Record at 0x%x, %d bytes\n", rec.Addr, len(payload))
	if readHex {
		printInfo("%s\n", hex.EncodeToString(payload))
		return nil
	}
	if !quiet {
		os.Stdout.Write(payload)
		fmt.Fprintln(os.Stdout)
	}
	return nil
}
