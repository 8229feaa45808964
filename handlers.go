package brokerlog

// loggerFor resolves the client logger, falling back to the root logger for
// clients that never went through connect.
func (b *Binder) loggerFor(c *Client) Logger {
	if l, ok := c.Logger(); ok {
		return l
	}
	return b.root
}

// onClient is the only place a client logger is created.
func (b *Binder) onClient(c *Client) {
	if c == nil {
		return
	}
	l := b.root.withClient(c.ID)
	c.attachLogger(l)
	l.InfoWith().Msg(msgConnected)
}

func (b *Binder) onClientDisconnect(c *Client) {
	if l, ok := c.Logger(); ok {
		l.InfoWith().Msg(msgDisconnected)
		return
	}
	b.root.WarnWith().Msg(msgDisconnectWithoutConnect)
}

func (b *Binder) onSubscribe(subs Subscriptions, c *Client) {
	b.loggerFor(c).InfoWith().Array(fieldSubscriptions, subs).Msg(msgSubscribed)
}

func (b *Binder) onUnsubscribe(subs Subscriptions, c *Client) {
	b.loggerFor(c).InfoWith().Array(fieldTopics, subs).Msg(msgUnsubscribed)
}

func (b *Binder) onClientError(c *Client, err error) {
	msg := msgClientError
	if err != nil {
		msg = err.Error()
	}

	if l, ok := c.Logger(); ok {
		l.WarnWith().Err(err).Msg(msg)
		return
	}
	b.root.WarnWith().Object(fieldClient, c).Err(err).Msg(msg)
}

// onPublish logs broker-originated messages (nil client) at debug on the root
// logger and client messages at info on the client logger. A client is assumed
// to have connected before it publishes, so there is no root fallback here; a
// client without a logger produces no record.
func (b *Binder) onPublish(p *Publish, c *Client) {
	var event LogEvent
	if c == nil {
		event = b.root.DebugWith()
	} else {
		l, ok := c.Logger()
		if !ok {
			l = noopLogger{}
		}
		event = l.InfoWith()
	}
	event.Object(fieldMessage, p).Msg(msgPublished)
}
