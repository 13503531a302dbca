package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tzclock/internal/clock"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that every configured timezone resolves",
	Long: `Load the config and resolve every clock's timezone.

Clocks with unknown timezones are listed; the panel would show them as
"Invalid Timezone". Exits non-zero if any clock is invalid.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	formatter := clock.NewFormatter(logger)

	invalid := 0
	for i, c := range cfg.ClockConfigs() {
		if _, err := formatter.Resolve(c.TimezoneID); err != nil {
			if !errors.Is(err, clock.ErrUnknownTimezone) {
				return err
			}
			invalid++
			fmt.Fprintf(out, "%d\t%s\t%q\tunknown timezone\n", i+1, c.Label, c.TimezoneID)
			continue
		}
		fmt.Fprintf(out, "%d\t%s\t%s\tok\n", i+1, c.Label, c.TimezoneID)
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d clocks have an unknown timezone", invalid, len(cfg.ClockConfigs()))
	}
	return nil
}
