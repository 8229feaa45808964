package brokerlog

import (
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

// Client is a connection as seen by the broker instance.
//
// The client logger is attached by the connect handler. A broker must emit
// connect for a client before anything else about it: disconnect, subscribe,
// unsubscribe and errors fall back to the root logger, but a publish from a
// client that never connected is not logged at all.
type Client struct {
	ID         string
	RemoteAddr string

	// logger is written once per connect event and read by every later handler.
	logger atomic.Pointer[zlogger]
}

func NewClient(id, remoteAddr string) *Client {
	return &Client{ID: id, RemoteAddr: remoteAddr}
}

// Logger returns the client-scoped logger attached on connect, if any.
func (c *Client) Logger() (Logger, bool) {
	if c == nil {
		return nil, false
	}
	l := c.logger.Load()
	if l == nil {
		return nil, false
	}
	return l, true
}

func (c *Client) attachLogger(l *zlogger) {
	c.logger.Store(l)
}

// MarshalZerologObject logs the client's identity, used when no client logger
// exists to carry it.
func (c *Client) MarshalZerologObject(e *zerolog.Event) {
	if c == nil {
		return
	}
	e.Str("id", c.ID)
	if c.RemoteAddr != emptyString {
		e.Str("remote_addr", c.RemoteAddr)
	}
}

// Subscription is one topic filter requested by a client.
type Subscription struct {
	Topic string
	QoS   byte
}

func (s Subscription) MarshalZerologObject(e *zerolog.Event) {
	e.Str("topic", s.Topic).Uint8("qos", s.QoS)
}

// Subscriptions is the payload of subscribe and unsubscribe events.
type Subscriptions []Subscription

func (s Subscriptions) MarshalZerologArray(a *zerolog.Array) {
	for _, sub := range s {
		a.Object(sub)
	}
}

// Publish is an application message passing through the broker.
type Publish struct {
	Topic   string
	Payload []byte
	QoS     byte
	Retain  bool
	Dup     bool
}

// MarshalZerologObject logs the routing metadata only; the payload is never
// written.
func (p *Publish) MarshalZerologObject(e *zerolog.Event) {
	if p == nil {
		return
	}
	e.Str("topic", p.Topic).Uint8("qos", p.QoS).Bool("retain", p.Retain)
}
