// Package dbus sends desktop notifications over the freedesktop.org
// org.freedesktop.Notifications session bus interface.
package dbus
