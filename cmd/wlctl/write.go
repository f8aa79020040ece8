package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	writeHex  bool
	writeFile string
)

func init() {
	cmd := newWriteCmd()
	cmd.Flags().BoolVar(&writeHex, "hex", false, "Value is hex-encoded bytes")
	cmd.Flags().StringVar(&writeFile, "file", "", "Read the value from a file")
	rootCmd.AddCommand(cmd)
}

func newWriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write <image> <marker> [value]",
		Short: "Store a value under a marker",
		Long: `The write command stores a new record for the marker. The record is placed
so that it overwrites the marker of the previous record, which retires it.
The image is synced before the command returns.

Example:
  wlctl write eeprom.bin CONFIG "baud=9600"
  wlctl write eeprom.bin CONFIG 01ff --hex
  wlctl write eeprom.bin 5745415200000000 --marker-hex --file blob.bin`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(args)
		},
	}
	return cmd
}

func runWrite(args []string) error {
	marker, err := parseMarker(args[1])
	if err != nil {
		return fmt.Errorf("invalid marker: %w", err)
	}
	payload, err := writePayload(args[2:])
	if err != nil {
		return err
	}

	s, err := openSession(args[0], true)
	if err != nil {
		return err
	}
	addr, err := s.store.Write(marker, payload)
	if closeErr := s.close(true); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"marker": marker.String(),
			"addr":   addr,
			"size":   len(payload),
		})
	}
	printInfo("Wrote %d bytes for %s at 0x%x\n", len(payload), marker, addr)
	return nil
}

func writePayload(rest []string) ([]byte, error) {
	switch {
	case writeFile != "" && len(rest) > 0:
		return nil, fmt.Errorf("give either a value or --file, not both")
	case writeFile != "":
		data, err := os.ReadFile(writeFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read value: %w", err)
		}
		return data, nil
	case len(rest) == 0:
		return nil, fmt.Errorf("missing value")
	case writeHex:
		data, err := hex.DecodeString(rest[0])
		if err != nil {
			return nil, fmt.Errorf("invalid hex value: %w", err)
		}
		return data, nil
	default:
		return []byte(rest[0]), nil
	}
}
