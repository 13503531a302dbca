// Package clock formats wall-clock time for configured timezones and holds
// the per-widget state refreshed on every tick.
package clock

import (
	"fmt"
	"regexp"
)

// colorRegex matches #RRGGBB hex colors.
var colorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Color is a #RRGGBB hex color understood by both GTK CSS and lipgloss.
type Color string

// Validate checks that the color is a #RRGGBB hex value.
func (c Color) Validate() error {
	if !colorRegex.MatchString(string(c)) {
		return fmt.Errorf("invalid color %q, expected #RRGGBB", string(c))
	}
	return nil
}

// String returns the hex representation.
func (c Color) String() string {
	return string(c)
}

// Config describes a single clock widget. It is a value type and is never
// mutated after startup.
type Config struct {
	TimezoneID string
	Label      string
	Background Color
	Foreground Color
}

// Validate checks the widget colors. The timezone is deliberately not
// resolved here: an unknown timezone is rendered, not rejected.
func (c Config) Validate() error {
	if err := c.Background.Validate(); err != nil {
		return fmt.Errorf("clock %q background: %w", c.Label, err)
	}
	if err := c.Foreground.Validate(); err != nil {
		return fmt.Errorf("clock %q foreground: %w", c.Label, err)
	}
	return nil
}

// DefaultConfigs returns the built-in clocks in display order.
func DefaultConfigs() []Config {
	return []Config{
		{TimezoneID: "Asia/Tokyo", Label: "Japan 🏯", Background: "#FFE5CC", Foreground: "#FF8000"},
		{TimezoneID: "Asia/Kolkata", Label: "India 🌴", Background: "#CCFFCC", Foreground: "#008000"},
		{TimezoneID: "Europe/Berlin", Label: "Germany 🚘", Background: "#CCCCFF", Foreground: "#0000FF"},
	}
}
