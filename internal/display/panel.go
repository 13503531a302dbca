package display

import (
	"log/slog"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/tzclock/internal/clock"
	"github.com/jmylchreest/tzclock/internal/config"
	"github.com/jmylchreest/tzclock/internal/placement"
	"github.com/jmylchreest/tzclock/internal/theme"
)

// Panel is the borderless window holding one widget per clock.
// All methods must be called on the GTK main loop.
type Panel struct {
	window   *gtk.Window
	box      *gtk.Box
	provider *gtk.CSSProvider
	logger   *slog.Logger

	cfg        *config.Config
	layerShell bool

	clocks []*clockWidget
}

// clockWidget is the box, title and time label of one clock.
type clockWidget struct {
	box      *gtk.Box
	titleLbl *gtk.Label
	timeLbl  *gtk.Label
	stateCls string
}

// NewPanel creates the panel window. The stylesheet is applied to the
// default display; Show presents the window.
func NewPanel(app *gtk.Application, cfg *config.Config, stylesheet string, logger *slog.Logger) (*Panel, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	display := gdk.DisplayGetDefault()
	if display == nil {
		return nil, &DisplayError{Message: "no display available"}
	}

	p := &Panel{
		logger:   logger,
		cfg:      cfg,
		provider: gtk.NewCSSProvider(),
	}

	p.provider.LoadFromString(stylesheet)
	gtk.StyleContextAddProviderForDisplay(
		display,
		p.provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)

	p.window = gtk.NewWindow()
	p.window.SetApplication(app)
	p.window.SetTitle("tzclock")
	p.window.SetDecorated(false)
	p.window.SetResizable(false)
	p.window.AddCSSClass("tzclock-panel")

	// Layer-shell must be initialised before the window is realised.
	p.layerShell = layershell.IsSupported()
	if p.layerShell {
		layershell.InitForWindow(p.window)
		// Bottom layer: above the wallpaper, below normal windows.
		layershell.SetLayer(p.window, layershell.LayerShellLayerBottom)
		layershell.SetExclusiveZone(p.window, 0)
		layershell.SetKeyboardMode(p.window, layershell.LayerShellKeyboardModeNone)
		layershell.SetNamespace(p.window, "tzclock")
	}

	p.box = gtk.NewBox(gtk.OrientationVertical, 0)
	p.box.AddCSSClass("tzclock-panel-box")
	p.window.SetChild(p.box)

	p.applyLayout(display)
	p.buildClocks(cfg.ClockConfigs())

	return p, nil
}

// Show presents the window.
func (p *Panel) Show() {
	p.window.Present()
}

// Close destroys the window.
func (p *Panel) Close() {
	p.window.Destroy()
}

// applyLayout sizes and positions the window.
func (p *Panel) applyLayout(display *gdk.Display) {
	size := p.cfg.WindowSize()
	p.window.SetDefaultSize(size.Width, size.Height)
	p.window.SetSizeRequest(size.Width, size.Height)

	anchor := p.cfg.Anchor()
	offsetX, offsetY := p.cfg.Window.OffsetX, p.cfg.Window.OffsetY
	monitor := monitorFor(display, p.cfg.Window.Monitor, p.logger)

	if p.layerShell {
		if monitor != nil {
			layershell.SetMonitor(p.window, monitor)
		}
		applyMargins(p.window, placement.EdgeMargins(anchor, offsetX, offsetY))
	}

	screen, ok := screenSize(monitor)
	if !ok {
		p.logger.Debug("panel placed without monitor geometry", "anchor", anchor)
		return
	}
	pos := placement.PlaceAt(anchor, screen, size, offsetX, offsetY)
	if !p.layerShell {
		// GTK4 cannot move toplevels; the compositor decides.
		p.logger.Info("layer-shell unsupported, panel position is up to the window manager",
			"x", pos.X, "y", pos.Y)
		return
	}
	p.logger.Debug("panel placed",
		"anchor", anchor,
		"screen", screen.String(),
		"window", size.String(),
		"x", pos.X,
		"y", pos.Y,
	)
}

// buildClocks replaces the clock widgets.
func (p *Panel) buildClocks(configs []clock.Config) {
	for _, w := range p.clocks {
		p.box.Remove(w.box)
	}
	p.clocks = p.clocks[:0]

	for i, cfg := range configs {
		w := &clockWidget{
			box:      gtk.NewBox(gtk.OrientationVertical, 0),
			titleLbl: gtk.NewLabel(cfg.Label),
			timeLbl:  gtk.NewLabel(""),
		}
		w.box.AddCSSClass("tzclock-clock")
		w.box.AddCSSClass(theme.ClockClass(i))
		w.box.AddCSSClass(colorSchemeClass(p.cfg))
		w.titleLbl.AddCSSClass("tzclock-title")
		w.timeLbl.AddCSSClass("tzclock-time")

		w.box.Append(w.titleLbl)
		w.box.Append(w.timeLbl)
		p.box.Append(w.box)
		p.clocks = append(p.clocks, w)
	}
}

// Render updates the time labels. states must be in the panel's clock
// order; extra states are ignored.
func (p *Panel) Render(states []clock.State) {
	for i, s := range states {
		if i >= len(p.clocks) {
			p.logger.Warn("more clock states than widgets", "states", len(states), "widgets", len(p.clocks))
			return
		}
		w := p.clocks[i]
		w.timeLbl.SetText(s.Text)

		cls := theme.StateClass(s.Text)
		if cls == w.stateCls {
			continue
		}
		if w.stateCls != "" {
			w.box.RemoveCSSClass(w.stateCls)
		}
		if cls != "" {
			w.box.AddCSSClass(cls)
		}
		w.stateCls = cls
	}
}

// ApplyConfig rebuilds the panel for a new configuration and stylesheet.
func (p *Panel) ApplyConfig(cfg *config.Config, stylesheet string) {
	p.cfg = cfg
	p.provider.LoadFromString(stylesheet)
	p.applyLayout(gdk.DisplayGetDefault())
	p.buildClocks(cfg.ClockConfigs())
	p.logger.Debug("panel reconfigured", "clocks", len(p.clocks))
}

// colorSchemeClass returns "light" or "dark" based on config or system preference.
func colorSchemeClass(cfg *config.Config) string {
	switch config.ColorScheme(cfg.Theme.ColorScheme) {
	case config.ColorSchemeLight:
		return "light"
	case config.ColorSchemeDark:
		return "dark"
	default:
		if adw.StyleManagerGetDefault().Dark() {
			return "dark"
		}
		return "light"
	}
}

// DisplayError represents a display-related error.
type DisplayError struct {
	Message string
}

func (e *DisplayError) Error() string {
	return e.Message
}
