package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/tzclock/internal/clock"
	"github.com/jmylchreest/tzclock/internal/config"
	"github.com/jmylchreest/tzclock/internal/placement"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, path string) Model {
	t.Helper()
	return New(Options{
		Config:     config.DefaultConfig(),
		ConfigPath: path,
		Source:     clock.FixedSource(epoch),
	})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTickRendersClocks(t *testing.T) {
	m := newTestModel(t, "")

	m, cmd := update(t, m, tickMsg(epoch))
	assert.NotNil(t, cmd, "tick must re-arm itself")

	view := m.View()
	assert.Contains(t, view, "Japan")
	assert.Contains(t, view, "09:00:00 AM")
	assert.Contains(t, view, "05:30:00 AM")
	assert.Contains(t, view, "01:00:00 AM")
	assert.Equal(t, uint64(1), m.state.Ticks())
}

func TestViewBeforeFirstTick(t *testing.T) {
	m := newTestModel(t, "")
	assert.Contains(t, m.View(), "--:--:--")
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, "")

	_, cmd := update(t, m, keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t, "")

	m, _ = update(t, m, keyMsg("?"))
	assert.Equal(t, ModeHelp, m.mode)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModePanel, m.mode)
}

func TestReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[[clocks]]
timezone = "America/New_York"
label = "USA"
background = "#FFFFFF"
foreground = "#000000"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	m := newTestModel(t, path)
	m, cmd := update(t, m, keyMsg("r"))
	require.NotNil(t, cmd)

	msg := cmd()
	status, ok := msg.(statusMsg)
	require.True(t, ok)
	assert.False(t, status.isErr)

	view := m.View()
	assert.Contains(t, view, "USA")
	assert.Contains(t, view, "07:00:00 PM")
	assert.NotContains(t, view, "Japan")
}

func TestReloadFailureKeepsState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window]\nanchor = \"nowhere\"\n"), 0o644))

	m := newTestModel(t, path)
	m, _ = update(t, m, tickMsg(epoch))
	m, cmd := update(t, m, keyMsg("r"))
	require.NotNil(t, cmd)

	status, ok := cmd().(statusMsg)
	require.True(t, ok)
	assert.True(t, status.isErr)
	assert.Contains(t, m.View(), "Japan")
}

func TestReloadWithoutPath(t *testing.T) {
	m := newTestModel(t, "")
	_, cmd := update(t, m, keyMsg("r"))
	status, ok := cmd().(statusMsg)
	require.True(t, ok)
	assert.True(t, status.isErr)
}

func TestStatusMessage(t *testing.T) {
	m := newTestModel(t, "")
	m, cmd := update(t, m, statusMsg{text: "hello"})
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "hello")

	m, _ = update(t, m, clearStatusMsg{})
	assert.NotContains(t, m.View(), "hello")
}

func TestWindowSize(t *testing.T) {
	m := newTestModel(t, "")
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m, _ = update(t, m, tickMsg(epoch))

	assert.True(t, m.ready)
	assert.Contains(t, m.View(), "09:00:00 AM")
}

func TestAnchorPosition(t *testing.T) {
	tests := []struct {
		anchor placement.Anchor
		h, v   lipgloss.Position
	}{
		{placement.AnchorBottomRight, lipgloss.Right, lipgloss.Bottom},
		{placement.AnchorTopLeft, lipgloss.Left, lipgloss.Top},
		{placement.AnchorTopCenter, lipgloss.Center, lipgloss.Top},
		{placement.AnchorBottomLeft, lipgloss.Left, lipgloss.Bottom},
	}
	for _, tt := range tests {
		t.Run(string(tt.anchor), func(t *testing.T) {
			h, v := anchorPosition(tt.anchor)
			assert.Equal(t, tt.h, h)
			assert.Equal(t, tt.v, v)
		})
	}
}
