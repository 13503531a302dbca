package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/tzclock/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the terminal clock panel",
	Long: `Launch the clock panel in the terminal.

Clocks are drawn as colored cards and refreshed at the configured interval.

Key bindings:
  r           Reload the config file
  ?           Show help
  q           Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	path, err := resolvedConfigPath()
	if err != nil {
		logger.Warn("config reload unavailable", "error", err)
	}
	return tui.Run(tui.Options{
		Config:     cfg,
		ConfigPath: path,
		Logger:     logger,
	})
}
