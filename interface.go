package brokerlog

// Logger is the structured logging capability handed to the broker instance and
// attached to each connected client. Every method returns a no-op event when the
// level is disabled, so callers never need to check.
type Logger interface {
	DebugWith() LogEvent
	InfoWith() LogEvent
	WarnWith() LogEvent
	ErrorWith() LogEvent

	// With creates a child logger with pre-populated fields.
	// Example: l := logger.With().Str("listener", "ws").Logger()
	With() LogContext
}

// Instance is the broker whose lifecycle events are logged. Each On* method
// registers a handler; the instance calls handlers synchronously in
// registration order.
type Instance interface {
	// SetLogger hands the root logger to the instance for its own use.
	SetLogger(l Logger)

	OnClient(fn func(c *Client))
	OnClientDisconnect(fn func(c *Client))
	OnSubscribe(fn func(subs Subscriptions, c *Client))
	OnUnsubscribe(fn func(subs Subscriptions, c *Client))
	OnClientError(fn func(c *Client, err error))
	// OnPublish handlers receive a nil client for messages the broker
	// publishes itself. A non-nil client is expected to have been passed to
	// the OnClient handlers first; otherwise its publishes produce no record.
	OnPublish(fn func(p *Publish, c *Client))
}

// Listener is a network endpoint the broker accepts clients on.
type Listener interface {
	// Address returns the currently bound address.
	Address() Address
	// OnListening registers fn to run each time the listener starts listening.
	OnListening(fn func())
}

// TLSCapable is implemented by listeners that may hold a TLS key and certificate.
type TLSCapable interface {
	HasTLSKeyAndCert() bool
}

// HTTPCapable is implemented by listeners that may serve HTTP (for example
// MQTT over WebSocket).
type HTTPCapable interface {
	HasHTTPUpgrade() bool
}
