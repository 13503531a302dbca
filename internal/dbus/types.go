package dbus

import (
	"github.com/godbus/dbus/v5"
)

// D-Bus constants for the notification service.
const (
	DBusBusName   = "org.freedesktop.Notifications"
	DBusPath      = "/org/freedesktop/Notifications"
	DBusInterface = "org.freedesktop.Notifications"
)

// Urgency is the freedesktop.org urgency hint.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// String returns the string representation of the urgency.
func (u Urgency) String() string {
	switch u {
	case UrgencyLow:
		return "low"
	case UrgencyNormal:
		return "normal"
	case UrgencyCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Icon returns the standard icon name for the urgency.
func (u Urgency) Icon() string {
	switch u {
	case UrgencyLow:
		return "dialog-information"
	case UrgencyCritical:
		return "dialog-error"
	default:
		return "dialog-warning"
	}
}

// CloseReason represents the reason for closing a notification.
type CloseReason uint32

const (
	CloseReasonExpired   CloseReason = 1
	CloseReasonDismissed CloseReason = 2
	CloseReasonClosed    CloseReason = 3
	CloseReasonUndefined CloseReason = 4
)

// String returns the string representation of the close reason.
func (r CloseReason) String() string {
	switch r {
	case CloseReasonExpired:
		return "expired"
	case CloseReasonDismissed:
		return "dismissed"
	case CloseReasonClosed:
		return "closed"
	case CloseReasonUndefined:
		return "undefined"
	default:
		return "unknown"
	}
}

// Notification holds the parameters of an outgoing Notify call.
type Notification struct {
	AppName       string
	ReplacesID    uint32
	AppIcon       string
	Summary       string
	Body          string
	Urgency       Urgency
	Category      string
	DesktopEntry  string
	Transient     bool
	ExpireTimeout int32 // -1 = server default, 0 = never expire
}

// Hints builds the hint dictionary for the Notify call.
func (n *Notification) Hints() map[string]dbus.Variant {
	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(byte(n.Urgency)),
	}
	if n.Category != "" {
		hints["category"] = dbus.MakeVariant(n.Category)
	}
	if n.DesktopEntry != "" {
		hints["desktop-entry"] = dbus.MakeVariant(n.DesktopEntry)
	}
	if n.Transient {
		hints["transient"] = dbus.MakeVariant(true)
	}
	return hints
}

// ServerInfo describes the notification daemon on the bus.
type ServerInfo struct {
	Name        string
	Vendor      string
	Version     string
	SpecVersion string
}
