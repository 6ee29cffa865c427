package nats

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/nats-io/nats.go"
)

// Event subjects
const (
	EventTenantRegistered = "taskhub.tenant.registered"
	EventUserCreated      = "taskhub.user.created"
	EventProjectCreated   = "taskhub.project.created"
	EventTaskCreated      = "taskhub.task.created"
	EventTaskUpdated      = "taskhub.task.updated"
)

// TenantRegisteredEvent is published when a tenant registers
type TenantRegisteredEvent struct {
	EventType string    `json:"event_type"`
	TenantID  string    `json:"tenant_id"`
	Name      string    `json:"name"`
	Subdomain string    `json:"subdomain"`
	Plan      string    `json:"plan"`
	Timestamp time.Time `json:"timestamp"`
}

// UserCreatedEvent is published when a tenant admin adds a member
type UserCreatedEvent struct {
	EventType string    `json:"event_type"`
	TenantID  string    `json:"tenant_id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	Timestamp time.Time `json:"timestamp"`
}

// ProjectCreatedEvent is published when a project is created
type ProjectCreatedEvent struct {
	EventType string    `json:"event_type"`
	TenantID  string    `json:"tenant_id"`
	ProjectID string    `json:"project_id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

// TaskEvent is published when a task is created or updated
type TaskEvent struct {
	EventType string    `json:"event_type"`
	TenantID  string    `json:"tenant_id"`
	ProjectID string    `json:"project_id"`
	TaskID    string    `json:"task_id"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Client wraps the NATS connection. Event publishing is telemetry: the
// server runs without NATS and a nil *Client is safe to publish on.
type Client struct {
	conn *nats.Conn
}

// Config holds NATS connection configuration
type Config struct {
	URL string
}

// DefaultConfig returns the default NATS configuration
func DefaultConfig() *Config {
	url := os.Getenv("NATS_URL")
	if url == "" {
		url = nats.DefaultURL
	}
	return &Config{
		URL: url,
	}
}

// NewClient creates a new NATS client
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	opts := []nats.Option{
		nats.Name("taskhub-service"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Printf("[NATS] Disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("[NATS] Reconnected to %s", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Printf("[NATS] Connection closed")
		}),
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	log.Printf("[NATS] Connected to %s", cfg.URL)

	return &Client{
		conn: conn,
	}, nil
}

// Publish marshals an event and publishes it on the given subject. A nil or
// disconnected client drops the event silently; domain events are
// best-effort and never block the request path.
func (c *Client) Publish(subject string, event interface{}) error {
	if c == nil || c.conn == nil {
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := c.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}

	return nil
}

// IsConnected reports whether the underlying connection is up
func (c *Client) IsConnected() bool {
	return c != nil && c.conn != nil && c.conn.IsConnected()
}

// Close drains and closes the connection
func (c *Client) Close() {
	if c != nil && c.conn != nil {
		c.conn.Close()
	}
}
