// Package daemon provides the background services used by tzclockd:
// config hot-reload and desktop notifications.
package daemon
