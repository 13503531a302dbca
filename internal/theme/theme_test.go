package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/tzclock/internal/clock"
)

func TestGetEmbeddedTheme(t *testing.T) {
	css, found := GetEmbeddedTheme(DefaultThemeName)
	require.True(t, found)
	assert.Contains(t, css, ".tzclock-time")

	_, found = GetEmbeddedTheme("nonexistent")
	assert.False(t, found)
}

func TestListEmbeddedThemes(t *testing.T) {
	themes := ListEmbeddedThemes()
	assert.Contains(t, themes, "default")
	assert.Contains(t, themes, "minimal")
}

func TestLoader_Load(t *testing.T) {
	fs := afero.NewMemMapFs()
	dir := "/themes"
	require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, "custom.css"), []byte(".custom { color: red; }"), 0644))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, "minimal.css"), []byte(".override {}"), 0644))

	l := NewLoader(dir, nil)
	l.SetFs(fs)

	th := l.Load("custom")
	assert.Equal(t, "custom", th.Name)
	assert.False(t, th.Bundled)
	assert.Contains(t, th.CSS, ".custom")

	// User themes shadow bundled ones
	th = l.Load("minimal")
	assert.Equal(t, ".override {}", th.CSS)

	th = l.Load("default")
	assert.True(t, th.Bundled)

	th = l.Load("missing")
	assert.Equal(t, DefaultThemeName, th.Name)
	assert.True(t, th.Bundled)

	th = l.Load("")
	assert.Equal(t, DefaultThemeName, th.Name)
}

func TestLoader_NoUserDir(t *testing.T) {
	th := NewLoader("", nil).Load("minimal")
	assert.Equal(t, "minimal", th.Name)
	assert.True(t, th.Bundled)
}

func TestTheme_Stylesheet(t *testing.T) {
	th := &Theme{Name: "test", CSS: ".base {}"}
	css := th.Stylesheet(clock.DefaultConfigs())

	assert.Contains(t, css, ".base {}")
	assert.Contains(t, css, ".tzclock-clock-0 {\n  background-color: #FFE5CC;\n}")
	assert.Contains(t, css, ".tzclock-clock-0 label {\n  color: #FF8000;\n}")
	assert.Contains(t, css, ".tzclock-clock-2 label {\n  color: #0000FF;\n}")
	assert.NotContains(t, css, "tzclock-clock-3")
}

func TestLoader_List(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.css"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "default.css"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(""), 0644))

	themes, err := NewLoader(dir, nil).List()
	require.NoError(t, err)

	names := make([]string, 0, len(themes))
	for _, th := range themes {
		names = append(names, th.Name)
	}
	assert.ElementsMatch(t, []string{"default", "minimal", "custom"}, names)

	themes, err = NewLoader(filepath.Join(dir, "missing"), nil).List()
	require.NoError(t, err)
	assert.Len(t, themes, 2)
}

func TestStateClass(t *testing.T) {
	assert.Equal(t, "", StateClass("09:00:00 AM"))
	assert.Equal(t, "invalid", StateClass(clock.InvalidTimezoneText))
	assert.Equal(t, "error", StateClass(clock.ErrorText))
}
