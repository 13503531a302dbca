package theme

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/jmylchreest/tzclock/internal/clock"
)

// Theme is a loaded base stylesheet.
type Theme struct {
	Name    string // Theme name (without .css extension)
	Path    string // Full path to the CSS file (empty when bundled)
	CSS     string
	Bundled bool
}

// Loader resolves themes by name.
// Resolution order:
//  1. User themes directory (~/.config/tzclock/themes/)
//  2. Bundled themes
//  3. The bundled default theme
type Loader struct {
	fs        afero.Fs
	themesDir string
	logger    *slog.Logger
}

// NewLoader creates a loader reading user themes from themesDir. An empty
// themesDir disables user themes.
func NewLoader(themesDir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{fs: afero.NewOsFs(), themesDir: themesDir, logger: logger}
}

// SetFs replaces the filesystem user themes are read from.
func (l *Loader) SetFs(fs afero.Fs) {
	l.fs = fs
}

// Load returns the named theme, falling back to the default theme when it
// cannot be found.
func (l *Loader) Load(name string) *Theme {
	if name == "" {
		name = DefaultThemeName
	}

	if l.themesDir != "" {
		path := filepath.Join(l.themesDir, name+".css")
		data, err := afero.ReadFile(l.fs, path)
		switch {
		case err == nil:
			l.logger.Debug("loaded user theme", "name", name, "path", path)
			return &Theme{Name: name, Path: path, CSS: string(data)}
		case !os.IsNotExist(err):
			l.logger.Warn("failed to read user theme, trying bundled", "theme", name, "error", err)
		}
	}

	if css, found := GetEmbeddedTheme(name); found {
		l.logger.Debug("loaded bundled theme", "name", name)
		return &Theme{Name: name, CSS: css, Bundled: true}
	}

	l.logger.Warn("theme not found, using default", "theme", name)
	css, _ := GetEmbeddedTheme(DefaultThemeName)
	return &Theme{Name: DefaultThemeName, CSS: css, Bundled: true}
}

// ClockClass returns the CSS class for the clock at index i.
func ClockClass(i int) string {
	return fmt.Sprintf("tzclock-clock-%d", i)
}

// StateClass returns the CSS class marking a clock whose text is a sentinel
// rather than a time, or "" for a valid time.
func StateClass(text string) string {
	switch text {
	case clock.InvalidTimezoneText:
		return "invalid"
	case clock.ErrorText:
		return "error"
	default:
		return ""
	}
}

// Stylesheet returns the theme CSS followed by one color rule per clock.
// Clock colors come last so they override the theme.
func (t *Theme) Stylesheet(clocks []clock.Config) string {
	var sb strings.Builder
	sb.WriteString(t.CSS)
	if !strings.HasSuffix(t.CSS, "\n") {
		sb.WriteString("\n")
	}

	sb.WriteString("\n/* clock colors */\n")
	for i, c := range clocks {
		class := ClockClass(i)
		fmt.Fprintf(&sb, ".%s {\n  background-color: %s;\n}\n", class, c.Background)
		fmt.Fprintf(&sb, ".%s label {\n  color: %s;\n}\n", class, c.Foreground)
	}

	return sb.String()
}

// ThemeInfo provides basic theme information for listing.
type ThemeInfo struct {
	Name    string
	Path    string
	Bundled bool
}

// List lists bundled themes followed by user themes not shadowing them.
func (l *Loader) List() ([]ThemeInfo, error) {
	seen := make(map[string]bool)
	var themes []ThemeInfo

	for _, name := range ListEmbeddedThemes() {
		seen[name] = true
		themes = append(themes, ThemeInfo{Name: name, Bundled: true})
	}

	if l.themesDir == "" {
		return themes, nil
	}

	entries, err := afero.ReadDir(l.fs, l.themesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return themes, nil
		}
		return themes, err
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".css" {
			continue
		}
		themeName := strings.TrimSuffix(name, ".css")
		if seen[themeName] {
			continue
		}
		seen[themeName] = true
		themes = append(themes, ThemeInfo{Name: themeName, Path: filepath.Join(l.themesDir, name)})
	}

	return themes, nil
}
