package clock

import (
	"log/slog"
	"time"
)

// State is the rendered state of one clock widget.
type State struct {
	Config Config
	Text   string
}

// Valid reports whether the last rendered text is a time rather than one of
// the sentinel strings.
func (s State) Valid() bool {
	return s.Text != "" && s.Text != InvalidTimezoneText && s.Text != ErrorText
}

// AppState owns every clock widget's state. It is not safe for concurrent
// use: it belongs to the UI goroutine, which passes it to update functions.
type AppState struct {
	clocks    []State
	formatter *Formatter
	source    Source
	logger    *slog.Logger

	ticks    uint64
	lastTick time.Time
}

// NewAppState creates state for the given clocks, in order.
func NewAppState(configs []Config, formatter *Formatter, source Source, logger *slog.Logger) *AppState {
	if logger == nil {
		logger = slog.Default()
	}
	if formatter == nil {
		formatter = NewFormatter(logger)
	}
	if source == nil {
		source = SystemSource{}
	}

	clocks := make([]State, len(configs))
	for i, cfg := range configs {
		clocks[i] = State{Config: cfg}
	}

	return &AppState{
		clocks:    clocks,
		formatter: formatter,
		source:    source,
		logger:    logger,
	}
}

// Tick renders every clock once and returns a copy of the new states.
// A tick never fails: broken clocks render a sentinel string instead.
func (a *AppState) Tick() []State {
	for i := range a.clocks {
		a.clocks[i].Text = a.formatter.Render(a.clocks[i].Config, a.source)
	}
	a.ticks++
	a.lastTick = time.Now()

	a.logger.Debug("clocks refreshed", "tick", a.ticks, "count", len(a.clocks))
	return a.Snapshot()
}

// Snapshot returns a copy of the current states.
func (a *AppState) Snapshot() []State {
	out := make([]State, len(a.clocks))
	copy(out, a.clocks)
	return out
}

// Configs returns the clock configurations in display order.
func (a *AppState) Configs() []Config {
	out := make([]Config, len(a.clocks))
	for i, c := range a.clocks {
		out[i] = c.Config
	}
	return out
}

// Ticks returns the number of completed ticks.
func (a *AppState) Ticks() uint64 {
	return a.ticks
}

// LastTick returns the wall time of the last completed tick.
func (a *AppState) LastTick() time.Time {
	return a.lastTick
}

// Source returns the time source used by Tick.
func (a *AppState) Source() Source {
	return a.source
}
