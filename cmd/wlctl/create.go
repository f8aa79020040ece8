package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joshuapare/wearkit/device"
)

func init() {
	rootCmd.AddCommand(newCreateCmd())
}

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <image> <size>",
		Short: "Create an erased EEPROM image",
		Long: `The create command writes a new image file of the given size with every
byte in the erased state (0xFF). Sizes accept decimal or 0x-prefixed hex.

Example:
  wlctl create eeprom.bin 4096
  wlctl create eeprom.bin 0x1000`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(args)
		},
	}
	return cmd
}

func runCreate(args []string) error {
	path := args[0]
	size, err := parseInt(args[1])
	if err != nil {
		return fmt.Errorf("invalid size %q: %w", args[1], err)
	}
	if size <= 0 {
		return fmt.Errorf("invalid size %q: must be positive", args[1])
	}

	printVerbose("Creating image: %s\n", path)
	img, err := device.Create(path, size)
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	if err := img.Close(); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]interface{}{"path": path, "size": size})
	}
	printInfo("Created %s (%s)\n", path, formatSize(size))
	return nil
}

// parseInt parses decimal or 0x-prefixed integers.
func parseInt(s string) (int, error) {
	v, err := strconv.ParseInt(s, 0, 0)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}
