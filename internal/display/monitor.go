package display

import (
	"log/slog"
	"unsafe"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/tzclock/internal/placement"
)

// monitorFor returns the configured monitor.
// Config values:
// - 0: primary (first) monitor
// - 1+: specific monitor (1-indexed)
//
// Falls back to the first monitor when the configured one is unavailable.
func monitorFor(display *gdk.Display, monitorNum int, logger *slog.Logger) *gdk.Monitor {
	if display == nil {
		return nil
	}
	monitors := display.Monitors()
	if monitors == nil || monitors.NItems() == 0 {
		logger.Warn("no monitors available")
		return nil
	}

	index := uint(0)
	if monitorNum > 0 {
		index = uint(monitorNum - 1)
	}
	if index >= monitors.NItems() {
		logger.Warn("configured monitor not available, using primary",
			"configured", monitorNum,
			"available", monitors.NItems(),
		)
		index = 0
	}

	return wrapMonitor(monitors.Item(index))
}

// wrapMonitor wraps a glib.Object as a gdk.Monitor.
// gotk4 does not export its own wrapper for list model items.
func wrapMonitor(obj *glib.Object) *gdk.Monitor {
	if obj == nil {
		return nil
	}
	type monitor struct {
		_ [0]func()
		*glib.Object
	}
	m := &monitor{Object: obj}
	return (*gdk.Monitor)(unsafe.Pointer(m))
}

// screenSize returns the logical size of a monitor.
func screenSize(monitor *gdk.Monitor) (placement.Size, bool) {
	if monitor == nil {
		return placement.Size{}, false
	}
	geom := monitor.Geometry()
	if geom == nil {
		return placement.Size{}, false
	}
	return placement.Size{Width: geom.Width(), Height: geom.Height()}, true
}

// applyMargins anchors a layer-shell window to the edges in m.
func applyMargins(window *gtk.Window, m placement.Margins) {
	layershell.SetAnchor(window, layershell.LayerShellEdgeTop, m.AnchorTop)
	layershell.SetAnchor(window, layershell.LayerShellEdgeBottom, m.AnchorBottom)
	layershell.SetAnchor(window, layershell.LayerShellEdgeLeft, m.AnchorLeft)
	layershell.SetAnchor(window, layershell.LayerShellEdgeRight, m.AnchorRight)

	layershell.SetMargin(window, layershell.LayerShellEdgeTop, m.Top)
	layershell.SetMargin(window, layershell.LayerShellEdgeBottom, m.Bottom)
	layershell.SetMargin(window, layershell.LayerShellEdgeLeft, m.Left)
	layershell.SetMargin(window, layershell.LayerShellEdgeRight, m.Right)
}
