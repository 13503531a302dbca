package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var configOpts struct {
	init  bool
	force bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the config file",
	Long: `Show the config file location and when it was last changed.

With --init, write a config file containing the built-in clocks so they can
be edited. An existing file is kept unless --force is given.`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().BoolVar(&configOpts.init, "init", false,
		"Write a starter config file")
	configCmd.Flags().BoolVar(&configOpts.force, "force", false,
		"Overwrite an existing file with --init")
}

func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	path, err := resolvedConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	info, statErr := os.Stat(path)
	exists := statErr == nil
	if statErr != nil && !errors.Is(statErr, os.ErrNotExist) {
		return fmt.Errorf("failed to stat config file: %w", statErr)
	}

	if configOpts.init {
		if exists && !configOpts.force {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
		}
		if err := cfg.WithDefaultClocks().Save(path); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", path)
		return nil
	}

	fmt.Fprintf(out, "Config: %s\n", path)
	if exists {
		fmt.Fprintf(out, "Modified: %s (%s)\n", humanize.Time(info.ModTime()), humanize.Bytes(uint64(info.Size())))
	} else {
		fmt.Fprintln(out, "Modified: never (using built-in defaults)")
	}
	fmt.Fprintf(out, "Clocks: %d\n", len(cfg.ClockConfigs()))
	fmt.Fprintf(out, "Refresh: %s\n", cfg.Refresh.Interval.Duration())
	fmt.Fprintf(out, "Anchor: %s\n", cfg.Anchor())
	return nil
}
