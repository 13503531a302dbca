// Package output provides output formatters for clock readings.
package output

import (
	"fmt"
	"io"
	"time"

	"github.com/jmylchreest/tzclock/internal/clock"
)

// Entry is one clock reading prepared for output.
type Entry struct {
	Label    string `json:"label" yaml:"label"`
	Timezone string `json:"timezone" yaml:"timezone"`
	Time     string `json:"time" yaml:"time"`
	Offset   string `json:"offset,omitempty" yaml:"offset,omitempty"`
	Valid    bool   `json:"valid" yaml:"valid"`
}

// NewEntries builds entries from rendered clock states. The UTC offset is
// filled in for every timezone that resolves.
func NewEntries(states []clock.State, at time.Time, f *clock.Formatter) []Entry {
	entries := make([]Entry, len(states))
	for i, s := range states {
		entries[i] = Entry{
			Label:    s.Config.Label,
			Timezone: s.Config.TimezoneID,
			Time:     s.Text,
			Valid:    s.Valid(),
		}
		if f == nil {
			continue
		}
		if loc, err := f.Resolve(s.Config.TimezoneID); err == nil {
			entries[i].Offset = at.In(loc).Format("-07:00")
		}
	}
	return entries
}

// Formatter formats clock readings for output.
type Formatter interface {
	// Format writes formatted entries to the writer.
	Format(w io.Writer, entries []Entry) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
)

// ParseFormatType validates a format name.
func ParseFormatType(s string) (FormatType, error) {
	switch FormatType(s) {
	case FormatPlain, FormatJSON, FormatYAML:
		return FormatType(s), nil
	default:
		return "", fmt.Errorf("unknown format %q (valid: plain, json, yaml)", s)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template   string // Custom template for plain format
	ShowOffset bool   // Append the UTC offset in plain format
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) (Formatter, error) {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(), nil
	case FormatYAML:
		return NewYAMLFormatter(), nil
	case FormatPlain, "":
		return NewPlainFormatter(opts)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
