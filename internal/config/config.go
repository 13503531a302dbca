// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/tzclock/internal/clock"
	"github.com/jmylchreest/tzclock/internal/placement"
)

// Default configuration values.
const (
	DefaultWindowWidth  = 215
	DefaultWindowHeight = 340
	DefaultOffsetY      = 50
	DefaultAnchor       = string(placement.AnchorBottomRight)
	DefaultInterval     = time.Second
	DefaultThemeName    = "default"
	DefaultChimeVolume  = 80
)

// Duration is a time.Duration that can be unmarshaled from human-readable strings.
// Supports formats like "500ms", "1s", "1m", or integer milliseconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	// Try parsing as integer (milliseconds)
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '500ms', '1s', '1m' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config is the tzclock configuration.
// Loaded from ~/.config/tzclock/config.toml
type Config struct {
	Window  WindowConfig  `toml:"window"`
	Refresh RefreshConfig `toml:"refresh"`
	Clocks  []ClockConfig `toml:"clocks"`
	Theme   ThemeConfig   `toml:"theme"`
	Chime   ChimeConfig   `toml:"chime"`
	Notify  NotifyConfig  `toml:"notify"`
}

// WindowConfig contains panel size and placement.
type WindowConfig struct {
	Width   int    `toml:"width"`    // Logical units
	Height  int    `toml:"height"`   // Logical units
	Anchor  string `toml:"anchor"`   // "bottom-right", "top-left", etc.
	OffsetX int    `toml:"offset_x"` // Distance from the left/right edge
	OffsetY int    `toml:"offset_y"` // Distance from the top/bottom edge
	Monitor int    `toml:"monitor"`  // 0 = primary, 1+ = specific monitor
}

// RefreshConfig contains the clock refresh period.
type RefreshConfig struct {
	Interval Duration `toml:"interval"`
}

// ClockConfig is a single [[clocks]] entry.
type ClockConfig struct {
	Timezone   string `toml:"timezone"`
	Label      string `toml:"label"`
	Background string `toml:"background"`
	Foreground string `toml:"foreground"`
}

// ThemeConfig contains theme settings.
type ThemeConfig struct {
	Name        string `toml:"name"`         // Theme name without .css extension
	ColorScheme string `toml:"color_scheme"` // "system", "light", or "dark"
}

// ColorScheme represents the color scheme preference.
type ColorScheme string

const (
	ColorSchemeSystem ColorScheme = "system"
	ColorSchemeLight  ColorScheme = "light"
	ColorSchemeDark   ColorScheme = "dark"
)

// ValidColorSchemes returns all valid color scheme values.
func ValidColorSchemes() []ColorScheme {
	return []ColorScheme{ColorSchemeSystem, ColorSchemeLight, ColorSchemeDark}
}

// ChimeConfig contains the hourly chime settings.
type ChimeConfig struct {
	Enabled  bool   `toml:"enabled"`
	Sound    string `toml:"sound"`    // WAV, OGG or MP3 file
	Volume   int    `toml:"volume"`   // 0-100
	Timezone string `toml:"timezone"` // Empty = first clock
}

// NotifyConfig controls desktop notifications sent by tzclockd.
type NotifyConfig struct {
	Enabled bool `toml:"enabled"`
}

// DefaultConfig returns a Config with default values.
// Clocks is left empty; Clocks() falls back to the built-in set.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:   DefaultWindowWidth,
			Height:  DefaultWindowHeight,
			Anchor:  DefaultAnchor,
			OffsetX: 0,
			OffsetY: DefaultOffsetY,
			Monitor: 0,
		},
		Refresh: RefreshConfig{
			Interval: Duration(DefaultInterval),
		},
		Theme: ThemeConfig{
			Name:        DefaultThemeName,
			ColorScheme: string(ColorSchemeSystem),
		},
		Chime: ChimeConfig{
			Enabled: false,
			Volume:  DefaultChimeVolume,
		},
		Notify: NotifyConfig{
			Enabled: true,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "tzclock", "config.toml"), nil
}

// ThemesDir returns the path to the user's themes directory.
func ThemesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "tzclock", "themes"), nil
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = ConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed and writes atomically via a temp file.
func (c *Config) Save(path string) error {
	if path == "" {
		var err error
		path, err = ConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := placement.ParseAnchor(c.Window.Anchor); err != nil {
		return err
	}

	if c.Window.Width < 50 || c.Window.Width > 4000 {
		return fmt.Errorf("window width must be between 50 and 4000, got %d", c.Window.Width)
	}
	if c.Window.Height < 50 || c.Window.Height > 4000 {
		return fmt.Errorf("window height must be between 50 and 4000, got %d", c.Window.Height)
	}
	if c.Window.Monitor < 0 {
		return fmt.Errorf("monitor must be 0 or greater, got %d", c.Window.Monitor)
	}

	if c.Refresh.Interval.Duration() < 100*time.Millisecond {
		return fmt.Errorf("refresh interval must be at least 100ms, got %s", c.Refresh.Interval.Duration())
	}

	validScheme := false
	for _, s := range ValidColorSchemes() {
		if c.Theme.ColorScheme == string(s) {
			validScheme = true
			break
		}
	}
	if !validScheme {
		return fmt.Errorf("invalid color scheme %q, must be one of: %v", c.Theme.ColorScheme, ValidColorSchemes())
	}

	if c.Chime.Volume < 0 || c.Chime.Volume > 100 {
		return fmt.Errorf("chime volume must be between 0 and 100, got %d", c.Chime.Volume)
	}
	if c.Chime.Enabled && c.Chime.Sound == "" {
		return errors.New("chime is enabled but no sound file is configured")
	}

	for i, cc := range c.Clocks {
		if strings.TrimSpace(cc.Label) == "" {
			return fmt.Errorf("clock %d: label is required", i+1)
		}
		if err := cc.toClock().Validate(); err != nil {
			return fmt.Errorf("clock %d: %w", i+1, err)
		}
	}

	return nil
}

// ClockConfigs returns the configured clocks in order, or the built-in set
// when none are configured.
func (c *Config) ClockConfigs() []clock.Config {
	if len(c.Clocks) == 0 {
		return clock.DefaultConfigs()
	}
	out := make([]clock.Config, len(c.Clocks))
	for i, cc := range c.Clocks {
		out[i] = cc.toClock()
	}
	return out
}

// Anchor returns the parsed window anchor, falling back to bottom-right.
func (c *Config) Anchor() placement.Anchor {
	a, err := placement.ParseAnchor(c.Window.Anchor)
	if err != nil {
		return placement.AnchorBottomRight
	}
	return a
}

// WindowSize returns the panel size.
func (c *Config) WindowSize() placement.Size {
	return placement.Size{Width: c.Window.Width, Height: c.Window.Height}
}

// ChimeTimezone returns the timezone used for the hourly chime.
func (c *Config) ChimeTimezone() string {
	if c.Chime.Timezone != "" {
		return c.Chime.Timezone
	}
	clocks := c.ClockConfigs()
	if len(clocks) == 0 {
		return "Local"
	}
	return clocks[0].TimezoneID
}

// ChimeSound returns the chime sound path with ~ expanded.
func (c *Config) ChimeSound() string {
	return expandPath(c.Chime.Sound)
}

// WithDefaultClocks returns a copy whose Clocks list is populated with the
// built-in clocks, for writing a starter config file.
func (c *Config) WithDefaultClocks() *Config {
	out := *c
	out.Clocks = make([]ClockConfig, 0, 3)
	for _, cc := range c.ClockConfigs() {
		out.Clocks = append(out.Clocks, ClockConfig{
			Timezone:   cc.TimezoneID,
			Label:      cc.Label,
			Background: cc.Background.String(),
			Foreground: cc.Foreground.String(),
		})
	}
	return &out
}

func (cc ClockConfig) toClock() clock.Config {
	return clock.Config{
		TimezoneID: cc.Timezone,
		Label:      cc.Label,
		Background: clock.Color(cc.Background),
		Foreground: clock.Color(cc.Foreground),
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
