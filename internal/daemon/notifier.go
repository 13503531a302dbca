package daemon

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jmylchreest/tzclock/internal/clock"
	"github.com/jmylchreest/tzclock/internal/dbus"
)

// Sender delivers a desktop notification.
type Sender interface {
	Notify(n *dbus.Notification) (uint32, error)
}

// Notifier sends notifications about tzclockd's own events. Repeats of the
// same event are suppressed for minInterval.
type Notifier struct {
	mu     sync.Mutex
	logger *slog.Logger
	sender Sender

	lastNotifyTime map[string]time.Time
	minInterval    time.Duration

	enabled bool
	now     func() time.Time
}

// NewNotifier creates a notifier. A nil sender disables delivery.
func NewNotifier(sender Sender, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		logger:         logger,
		sender:         sender,
		lastNotifyTime: make(map[string]time.Time),
		minInterval:    5 * time.Second,
		enabled:        true,
		now:            time.Now,
	}
}

// SetEnabled enables or disables notifications.
func (n *Notifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
}

// SetMinInterval sets the minimum interval between duplicate notifications.
func (n *Notifier) SetMinInterval(interval time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.minInterval = interval
}

// Notify sends a notification unless the key was used within minInterval.
// It reports whether a notification was handed to the sender.
func (n *Notifier) Notify(key, summary, body string, urgency dbus.Urgency) bool {
	n.mu.Lock()
	if !n.enabled {
		n.mu.Unlock()
		return false
	}
	sender := n.sender
	if sender == nil {
		n.mu.Unlock()
		n.logger.Debug("notification skipped: no sender", "summary", summary)
		return false
	}

	now := n.now()
	if last, ok := n.lastNotifyTime[key]; ok && now.Sub(last) < n.minInterval {
		n.mu.Unlock()
		n.logger.Debug("notification rate-limited", "key", key, "summary", summary)
		return false
	}
	n.lastNotifyTime[key] = now
	n.mu.Unlock()

	// Sent without the lock so a slow bus never blocks other callers.
	_, err := sender.Notify(&dbus.Notification{
		AppName:       "tzclockd",
		Summary:       summary,
		Body:          body,
		Urgency:       urgency,
		DesktopEntry:  "tzclockd",
		Transient:     true,
		ExpireTimeout: 5000,
	})
	if err != nil {
		n.logger.Warn("failed to send notification", "key", key, "error", err)
		return false
	}
	return true
}

// NotifyConfigReloaded reports a successful config reload.
func (n *Notifier) NotifyConfigReloaded() bool {
	return n.Notify(
		"config-reload",
		"Configuration Reloaded",
		"tzclock configuration has been reloaded.",
		dbus.UrgencyLow,
	)
}

// NotifyConfigError reports a config that failed to load. The previous
// configuration remains active.
func (n *Notifier) NotifyConfigError(err error) bool {
	return n.Notify(
		"config-error",
		"Configuration Error",
		fmt.Sprintf("Keeping previous configuration: %v", err),
		dbus.UrgencyNormal,
	)
}

// NotifyClockError reports a clock that rendered as Error.
func (n *Notifier) NotifyClockError(label, timezone string) bool {
	return n.Notify(
		"clock-error:"+timezone,
		"Clock Error",
		fmt.Sprintf("%s (%s) could not be updated.", label, timezone),
		dbus.UrgencyCritical,
	)
}

// ReportClockErrors notifies about every clock rendered as Error. Sends run
// in the background; it returns without waiting for the bus.
func (n *Notifier) ReportClockErrors(states []clock.State) {
	for _, s := range states {
		if s.Text == clock.ErrorText {
			go n.NotifyClockError(s.Config.Label, s.Config.TimezoneID)
		}
	}
}
