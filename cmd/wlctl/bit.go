package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joshuapare/wearkit/device"
)

func init() {
	cmd := &cobra.Command{
		Use:   "bit",
		Short: "Read or change single bits of an image",
	}
	cmd.AddCommand(newBitGetCmd(), newBitSetCmd())
	rootCmd.AddCommand(cmd)
}

func newBitGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <image> <addr> <bit>",
		Short: "Print one bit",
		Long: `Example:
  wlctl bit get eeprom.bin 0x10 3`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBitGet(args)
		},
	}
}

func newBitSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <image> <addr> <bit> <0|1>",
		Short: "Set one bit, writing only if the byte changes",
		Long: `Example:
  wlctl bit set eeprom.bin 0x10 3 1`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBitSet(args)
		},
	}
}

func parseBitArgs(args []string) (addr, bit int, err error) {
	if addr, err = parseInt(args[1]); err != nil {
		return 0, 0, fmt.Errorf("invalid address %q: %w", args[1], err)
	}
	if bit, err = strconv.Atoi(args[2]); err != nil {
		return 0, 0, fmt.Errorf("invalid bit %q: %w", args[2], err)
	}
	return addr, bit, nil
}

func runBitGet(args []string) error {
	addr, bit, err := parseBitArgs(args)
	if err != nil {
		return err
	}
	s, err := openSession(args[0], false)
	if err != nil {
		return err
	}
	defer s.close(false)

	v, err := device.GetBit(s.store.Device(), addr, bit)
	if err != nil {
		return fmt.Errorf("failed to read bit: %w", err)
	}
	if jsonOut {
		return printJSON(map[string]interface{}{"addr": addr, "bit": bit, "value": v})
	}
	printInfo("%d\n", boolToBit(v))
	return nil
}

func runBitSet(args []string) error {
	addr, bit, err := parseBitArgs(args)
	if err != nil {
		return err
	}
	var value bool
	switch args[3] {
	case "0":
	case "1":
		value = true
	default:
		return fmt.Errorf("invalid bit value %q: want 0 or 1", args[3])
	}

	s, err := openSession(args[0], true)
	if err != nil {
		return err
	}
	changed, err := device.UpdateBit(s.store.Device(), addr, bit, value)
	if closeErr := s.close(changed); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to set bit: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{"addr": addr, "bit": bit, "value": value, "changed": changed})
	}
	if changed {
		printInfo("Set bit %d of 0x%x to %d\n", bit, addr, boolToBit(value))
	} else {
		printVerbose("Bit %d of 0x%x already %d\n", bit, addr, boolToBit(value))
	}
	return nil
}

func boolToBit(v bool) int {
	if v {
		return 1
	}
	return 0
}
