// Package tui renders the clock panel in a terminal.
package tui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/tzclock/internal/clock"
	"github.com/jmylchreest/tzclock/internal/config"
	"github.com/jmylchreest/tzclock/internal/placement"
)

// Mode represents the current view.
type Mode int

const (
	ModePanel Mode = iota
	ModeHelp
)

// Model is the Bubble Tea model for the clock panel.
type Model struct {
	cfg        *config.Config
	configPath string
	logger     *slog.Logger

	state     *clock.AppState
	formatter *clock.Formatter
	source    clock.Source
	interval  time.Duration

	mode Mode
	help help.Model
	keys KeyMap

	width  int
	height int
	ready  bool

	statusMsg string
	statusErr bool
}

// Options configures a Model.
type Options struct {
	Config     *config.Config
	ConfigPath string // Reloaded with the reload key; empty disables reload
	Source     clock.Source
	Logger     *slog.Logger
}

// New creates a new TUI model.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	formatter := clock.NewFormatter(logger)

	return Model{
		cfg:        cfg,
		configPath: opts.ConfigPath,
		logger:     logger,
		state:      clock.NewAppState(cfg.ClockConfigs(), formatter, opts.Source, logger),
		formatter:  formatter,
		source:     opts.Source,
		interval:   cfg.Refresh.Interval.Duration(),
		mode:       ModePanel,
		help:       help.New(),
		keys:       DefaultKeyMap(),
	}
}

// tickMsg triggers one refresh of every clock.
type tickMsg time.Time

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

// Init renders the first tick immediately.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		return tickMsg(time.Now())
	}
}

// tick schedules the next refresh. It is only issued after the previous
// tick has been applied, so refreshes never overlap.
func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tickMsg:
		m.state.Tick()
		return m, m.tick()

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil
	}

	return m, nil
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		if m.mode == ModeHelp {
			m.mode = ModePanel
		} else {
			m.mode = ModeHelp
		}
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.mode = ModePanel
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m.reload()
	}
	return m, nil
}

// reload re-reads the config file and rebuilds the clock state. The tick
// chain is left untouched; the new interval applies from the next tick.
func (m Model) reload() (tea.Model, tea.Cmd) {
	if m.configPath == "" {
		return m, statusCmd("No config file to reload", true)
	}

	cfg, err := config.LoadConfig(m.configPath)
	if err != nil {
		m.logger.Warn("config reload failed", "path", m.configPath, "error", err)
		return m, statusCmd("Reload failed: "+err.Error(), true)
	}

	m.cfg = cfg
	m.interval = cfg.Refresh.Interval.Duration()
	m.state = clock.NewAppState(cfg.ClockConfigs(), m.formatter, m.source, m.logger)
	m.state.Tick()
	return m, statusCmd("Configuration reloaded", false)
}

func statusCmd(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// View renders the TUI.
func (m Model) View() string {
	if m.mode == ModeHelp {
		return m.viewHelp()
	}
	return m.viewPanel()
}

func (m Model) viewPanel() string {
	cards := make([]string, 0, len(m.state.Snapshot()))
	for _, s := range m.state.Snapshot() {
		cards = append(cards, renderCard(s, m.cfg.Window.Width/8))
	}
	panel := lipgloss.JoinVertical(lipgloss.Left, cards...)

	footer := m.buildKeybindBar()
	if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
		if m.statusErr {
			statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
		}
		footer = statusStyle.Render(m.statusMsg)
	}

	if !m.ready {
		return panel + "\n" + footer
	}

	hPos, vPos := anchorPosition(m.cfg.Anchor())
	body := lipgloss.Place(m.width, max(m.height-1, 0), hPos, vPos, panel)
	return body + "\n" + footer
}

// renderCard draws one clock as a colored block with its label above the
// time.
func renderCard(s clock.State, width int) string {
	style := lipgloss.NewStyle().
		Background(lipgloss.Color(s.Config.Background.String())).
		Foreground(lipgloss.Color(s.Config.Foreground.String())).
		Padding(1, 2).
		Width(max(width, len(clock.TimeLayout)+4)).
		Align(lipgloss.Center)

	title := lipgloss.NewStyle().Bold(true).Render(s.Config.Label)
	text := s.Text
	if text == "" {
		text = "--:--:--"
	}
	return style.Render(title + "\n" + text)
}

// anchorPosition maps a window anchor onto lipgloss placement.
func anchorPosition(a placement.Anchor) (lipgloss.Position, lipgloss.Position) {
	h := lipgloss.Left
	switch {
	case a.IsCenter():
		h = lipgloss.Center
	case a.IsRight():
		h = lipgloss.Right
	}
	v := lipgloss.Top
	if a.IsBottom() {
		v = lipgloss.Bottom
	}
	return h, v
}

func (m Model) viewHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginBottom(1)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(
		"Press ? or esc to return"))
	return b.String()
}

// buildKeybindBar builds a keybind bar that fits within the terminal width.
func (m Model) buildKeybindBar() string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	const separator = "  "
	result := ""
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		item := keyStyle.Render(h.Key) + " " + h.Desc
		if result != "" {
			item = separator + item
		}
		if m.width > 0 && lipgloss.Width(result+item) > m.width {
			break
		}
		result += item
	}
	return style.Render(result)
}

// Run starts the TUI.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
