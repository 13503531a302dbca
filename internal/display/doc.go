// Package display shows the clock panel as a GTK4 window, anchored with
// layer-shell on Wayland compositors that support it.
package display
