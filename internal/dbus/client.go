package dbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
)

// DefaultCallTimeout bounds every method call on the notification server.
const DefaultCallTimeout = 2 * time.Second

// Client sends notifications to whichever daemon owns
// org.freedesktop.Notifications. It connects lazily on first use.
type Client struct {
	mu     sync.Mutex
	logger *slog.Logger
	conn   *dbus.Conn

	timeout time.Duration

	// connect is replaced in tests.
	connect func() (*dbus.Conn, error)
}

// NewClient creates a session bus notification client.
func NewClient(logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		logger:  logger,
		timeout: DefaultCallTimeout,
		connect: func() (*dbus.Conn, error) {
			return dbus.ConnectSessionBus()
		},
	}
}

func (c *Client) object() (dbus.BusObject, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil || !c.conn.Connected() {
		conn, err := c.connect()
		if err != nil {
			return nil, fmt.Errorf("failed to connect to session bus: %w", err)
		}
		c.conn = conn
	}
	return c.conn.Object(DBusBusName, DBusPath), nil
}

// SetTimeout sets the per-call timeout.
func (c *Client) SetTimeout(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeout = d
}

// call invokes a method with the configured timeout.
func (c *Client) call(obj dbus.BusObject, method string, args ...any) *dbus.Call {
	c.mu.Lock()
	timeout := c.timeout
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return obj.CallWithContext(ctx, DBusInterface+"."+method, 0, args...)
}

// Notify sends a notification and returns the id assigned by the server.
func (c *Client) Notify(n *Notification) (uint32, error) {
	obj, err := c.object()
	if err != nil {
		return 0, err
	}

	icon := n.AppIcon
	if icon == "" {
		icon = n.Urgency.Icon()
	}

	var id uint32
	call := c.call(obj, "Notify",
		n.AppName,
		n.ReplacesID,
		icon,
		n.Summary,
		n.Body,
		[]string{},
		n.Hints(),
		n.ExpireTimeout,
	)
	if call.Err != nil {
		return 0, fmt.Errorf("notify call failed: %w", call.Err)
	}
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("failed to read notification id: %w", err)
	}

	c.logger.Debug("notification sent", "id", id, "summary", n.Summary, "urgency", n.Urgency)
	return id, nil
}

// CloseNotification asks the server to close a notification.
func (c *Client) CloseNotification(id uint32) error {
	obj, err := c.object()
	if err != nil {
		return err
	}
	if call := c.call(obj, "CloseNotification", id); call.Err != nil {
		return fmt.Errorf("close call failed: %w", call.Err)
	}
	return nil
}

// ServerInformation queries the running notification daemon.
func (c *Client) ServerInformation() (ServerInfo, error) {
	obj, err := c.object()
	if err != nil {
		return ServerInfo{}, err
	}
	var info ServerInfo
	call := c.call(obj, "GetServerInformation")
	if call.Err != nil {
		return ServerInfo{}, fmt.Errorf("server information call failed: %w", call.Err)
	}
	if err := call.Store(&info.Name, &info.Vendor, &info.Version, &info.SpecVersion); err != nil {
		return ServerInfo{}, fmt.Errorf("failed to read server information: %w", err)
	}
	return info, nil
}

// Close closes the bus connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}
