package brokerlog

import "sync"

// Hub is a synchronous Instance. A broker embeds it and calls the Emit methods
// from its connection handling; every registered handler runs on the caller's
// goroutine, in registration order, before Emit returns. Handlers only ever
// get appended, so an Emit works on the slice header it read under the lock.
type Hub struct {
	mu     sync.RWMutex
	logger Logger

	onClient           []func(*Client)
	onClientDisconnect []func(*Client)
	onSubscribe        []func(Subscriptions, *Client)
	onUnsubscribe      []func(Subscriptions, *Client)
	onClientError      []func(*Client, error)
	onPublish          []func(*Publish, *Client)
}

func NewHub() *Hub {
	return &Hub{}
}

// Logger returns the logger set by SetLogger, or a no-op logger before that.
func (h *Hub) Logger() Logger {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.logger == nil {
		return noopLogger{}
	}
	return h.logger
}

func (h *Hub) SetLogger(l Logger) {
	h.mu.Lock()
	h.logger = l
	h.mu.Unlock()
}

func (h *Hub) OnClient(fn func(c *Client)) {
	h.mu.Lock()
	h.onClient = append(h.onClient, fn)
	h.mu.Unlock()
}

func (h *Hub) OnClientDisconnect(fn func(c *Client)) {
	h.mu.Lock()
	h.onClientDisconnect = append(h.onClientDisconnect, fn)
	h.mu.Unlock()
}

func (h *Hub) OnSubscribe(fn func(subs Subscriptions, c *Client)) {
	h.mu.Lock()
	h.onSubscribe = append(h.onSubscribe, fn)
	h.mu.Unlock()
}

func (h *Hub) OnUnsubscribe(fn func(subs Subscriptions, c *Client)) {
	h.mu.Lock()
	h.onUnsubscribe = append(h.onUnsubscribe, fn)
	h.mu.Unlock()
}

func (h *Hub) OnClientError(fn func(c *Client, err error)) {
	h.mu.Lock()
	h.onClientError = append(h.onClientError, fn)
	h.mu.Unlock()
}

func (h *Hub) OnPublish(fn func(p *Publish, c *Client)) {
	h.mu.Lock()
	h.onPublish = append(h.onPublish, fn)
	h.mu.Unlock()
}

// EmitClient signals that c has connected.
func (h *Hub) EmitClient(c *Client) {
	h.mu.RLock()
	handlers := h.onClient
	h.mu.RUnlock()

	for _, fn := range handlers {
		fn(c)
	}
}

func (h *Hub) EmitClientDisconnect(c *Client) {
	h.mu.RLock()
	handlers := h.onClientDisconnect
	h.mu.RUnlock()

	for _, fn := range handlers {
		fn(c)
	}
}

func (h *Hub) EmitSubscribe(subs Subscriptions, c *Client) {
	h.mu.RLock()
	handlers := h.onSubscribe
	h.mu.RUnlock()

	for _, fn := range handlers {
		fn(subs, c)
	}
}

func (h *Hub) EmitUnsubscribe(subs Subscriptions, c *Client) {
	h.mu.RLock()
	handlers := h.onUnsubscribe
	h.mu.RUnlock()

	for _, fn := range handlers {
		fn(subs, c)
	}
}

func (h *Hub) EmitClientError(c *Client, err error) {
	h.mu.RLock()
	handlers := h.onClientError
	h.mu.RUnlock()

	for _, fn := range handlers {
		fn(c, err)
	}
}

// EmitPublish signals a routed message; c is nil for messages the broker
// publishes itself.
func (h *Hub) EmitPublish(p *Publish, c *Client) {
	h.mu.RLock()
	handlers := h.onPublish
	h.mu.RUnlock()

	for _, fn := range handlers {
		fn(p, c)
	}
}
