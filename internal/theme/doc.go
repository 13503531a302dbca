// Package theme builds the CSS used by the tzclockd panel.
// Themes are loaded from ~/.config/tzclock/themes/ or from the bundled set,
// and per-clock color rules are appended from the clock configuration.
package theme
