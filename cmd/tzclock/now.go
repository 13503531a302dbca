package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tzclock/internal/adapter/output"
	"github.com/jmylchreest/tzclock/internal/clock"
	"github.com/jmylchreest/tzclock/internal/core"
)

var nowOpts struct {
	format     string
	at         string
	template   string
	showOffset bool
	search     string
	sortBy     string
	sortOrder  string
}

var nowCmd = &cobra.Command{
	Use:   "now [index|name]",
	Short: "Print every configured clock once",
	Long: `Render one tick of every configured clock and print it.

With an index (1-based), label or timezone argument, prints only that clock.

Examples:
  # Table of all clocks
  tzclock now

  # JSON for scripting
  tzclock now --format json

  # A fixed instant
  tzclock now --at 2024-01-01T00:00:00Z

  # One clock, by label or timezone
  tzclock now asia/tokyo

  # Sorted by UTC offset, east first
  tzclock now --sort offset --order desc

  # Custom template
  tzclock now --template '{{.Label}}={{.Time}}'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNow,
}

func init() {
	rootCmd.AddCommand(nowCmd)

	nowCmd.Flags().StringVarP(&nowOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml)")
	nowCmd.Flags().StringVar(&nowOpts.at, "at", "",
		"Render at this RFC3339 instant instead of now")
	nowCmd.Flags().StringVar(&nowOpts.template, "template", "",
		"Go template for plain output")
	nowCmd.Flags().BoolVar(&nowOpts.showOffset, "offset", false,
		"Show UTC offsets in plain output")
	nowCmd.Flags().StringVarP(&nowOpts.search, "search", "s", "",
		"Only clocks whose label or timezone contains this text")
	nowCmd.Flags().StringVar(&nowOpts.sortBy, "sort", "position",
		"Sort by field (position, label, offset)")
	nowCmd.Flags().StringVar(&nowOpts.sortOrder, "order", "asc",
		"Sort order (asc, desc)")
}

func runNow(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormatType(nowOpts.format)
	if err != nil {
		return err
	}

	var source clock.Source = clock.SystemSource{}
	at := time.Now()
	if nowOpts.at != "" {
		at, err = time.Parse(time.RFC3339, nowOpts.at)
		if err != nil {
			return fmt.Errorf("invalid --at value %q: %w", nowOpts.at, err)
		}
		source = clock.FixedSource(at)
	}

	formatter := clock.NewFormatter(logger)
	clocks, err := selectClocks(cfg.ClockConfigs(), args, at, formatter)
	if err != nil {
		return err
	}
	state := clock.NewAppState(clocks, formatter, source, logger)
	states := state.Tick()

	f, err := output.NewFormatter(format, output.FormatterOptions{
		Template:   nowOpts.template,
		ShowOffset: nowOpts.showOffset,
	})
	if err != nil {
		return err
	}
	return f.Format(cmd.OutOrStdout(), output.NewEntries(states, at, formatter))
}

// selectClocks applies the lookup argument, search and sort flags.
func selectClocks(clocks []clock.Config, args []string, at time.Time, f *clock.Formatter) ([]clock.Config, error) {
	if len(args) == 1 {
		var c *clock.Config
		if index, err := strconv.Atoi(args[0]); err == nil {
			c = core.LookupByIndex(clocks, index)
		} else {
			c = core.LookupByName(clocks, args[0])
		}
		if c == nil {
			return nil, fmt.Errorf("no clock matches %q", args[0])
		}
		return []clock.Config{*c}, nil
	}

	clocks = core.Search(clocks, nowOpts.search)

	field, err := core.ParseSortField(nowOpts.sortBy)
	if err != nil {
		return nil, err
	}
	order, err := core.ParseSortOrder(nowOpts.sortOrder)
	if err != nil {
		return nil, err
	}
	core.Sort(clocks, core.SortOptions{Field: field, Order: order, At: at}, f)
	return clocks, nil
}
