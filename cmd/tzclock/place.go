package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tzclock/internal/placement"
)

var placeOpts struct {
	screen  string
	window  string
	offsetX int
	offsetY int
	anchor  string
}

var placeCmd = &cobra.Command{
	Use:   "place",
	Short: "Print the panel position for a screen size",
	Long: `Compute where the panel's top-left corner lands on a screen and print
"x y". Window size, offsets and anchor default to the config.

Examples:
  tzclock place --screen 1920x1080
  tzclock place --screen 2560x1440 --anchor top-left --offset-y 10`,
	RunE: runPlace,
}

func init() {
	rootCmd.AddCommand(placeCmd)

	placeCmd.Flags().StringVar(&placeOpts.screen, "screen", "",
		"Screen size as WIDTHxHEIGHT (required)")
	placeCmd.Flags().StringVar(&placeOpts.window, "window", "",
		"Window size as WIDTHxHEIGHT (default: from config)")
	placeCmd.Flags().IntVar(&placeOpts.offsetX, "offset-x", -1,
		"Distance from the left/right edge (default: from config)")
	placeCmd.Flags().IntVar(&placeOpts.offsetY, "offset-y", -1,
		"Distance from the top/bottom edge (default: from config)")
	placeCmd.Flags().StringVar(&placeOpts.anchor, "anchor", "",
		"Screen anchor (default: from config)")
	_ = placeCmd.MarkFlagRequired("screen")
}

func runPlace(cmd *cobra.Command, args []string) error {
	screen, err := placement.ParseSize(placeOpts.screen)
	if err != nil {
		return fmt.Errorf("invalid --screen: %w", err)
	}

	window := cfg.WindowSize()
	if placeOpts.window != "" {
		window, err = placement.ParseSize(placeOpts.window)
		if err != nil {
			return fmt.Errorf("invalid --window: %w", err)
		}
	}

	anchor := cfg.Anchor()
	if placeOpts.anchor != "" {
		anchor, err = placement.ParseAnchor(placeOpts.anchor)
		if err != nil {
			return err
		}
	}

	offsetX := cfg.Window.OffsetX
	if placeOpts.offsetX >= 0 {
		offsetX = placeOpts.offsetX
	}
	offsetY := cfg.Window.OffsetY
	if placeOpts.offsetY >= 0 {
		offsetY = placeOpts.offsetY
	}

	p := placement.PlaceAt(anchor, screen, window, offsetX, offsetY)
	logger.Debug("placed panel", "anchor", anchor, "screen", screen.String(), "window", window.String())

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d %d\n", p.X, p.Y)
	return err
}
