package brokerlog

import (
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

// LogEvent provides a fluent interface for structured logging with type-safe field methods.
// It wraps zerolog.Event; a LogEvent for a disabled level silently drops everything.
type LogEvent interface {
	Str(key, val string) LogEvent
	Int(key string, val int) LogEvent
	Uint8(key string, val uint8) LogEvent
	Bool(key string, val bool) LogEvent
	Dur(key string, val time.Duration) LogEvent
	Err(err error) LogEvent
	AnErr(key string, err error) LogEvent
	Interface(key string, val interface{}) LogEvent
	Object(key string, obj zerolog.LogObjectMarshaler) LogEvent
	EmbedObject(obj zerolog.LogObjectMarshaler) LogEvent
	Array(key string, arr zerolog.LogArrayMarshaler) LogEvent
	Dict(key string, dict func(LogEvent)) LogEvent
	Msg(msg string)
	Send()
}

// LogContext builds a child logger. Fields added here appear on every record
// the child logger emits.
type LogContext interface {
	Str(key, val string) LogContext
	Object(key string, obj zerolog.LogObjectMarshaler) LogContext
	Dict(key string, dict func(LogEvent)) LogContext
	// Logger creates and returns the new context logger
	Logger() Logger
}

// logEvent implements LogEvent by wrapping zerolog.Event
type logEvent struct {
	event *zerolog.Event
}

func newLogEvent(e *zerolog.Event) LogEvent {
	return &logEvent{event: e}
}

func (e *logEvent) Str(key, val string) LogEvent {
	if e.event != nil {
		e.event.Str(key, val)
	}
	return e
}

func (e *logEvent) Int(key string, val int) LogEvent {
	if e.event != nil {
		e.event.Int(key, val)
	}
	return e
}

func (e *logEvent) Uint8(key string, val uint8) LogEvent {
	if e.event != nil {
		e.event.Uint8(key, val)
	}
	return e
}

func (e *logEvent) Bool(key string, val bool) LogEvent {
	if e.event != nil {
		e.event.Bool(key, val)
	}
	return e
}

func (e *logEvent) Dur(key string, val time.Duration) LogEvent {
	if e.event != nil {
		e.event.Dur(key, val)
	}
	return e
}

// Err records err under zerolog.ErrorFieldName together with its cause chain.
func (e *logEvent) Err(err error) LogEvent {
	return e.AnErr(zerolog.ErrorFieldName, err)
}

func (e *logEvent) AnErr(key string, err error) LogEvent {
	if e.event == nil {
		return e
	}
	e.event.AnErr(key, err)
	if err == nil {
		return e
	}
	chain, ops, root, rootOp := buildErrorChain(err)
	if len(chain) > 0 {
		e.event.Strs(key+"_chain", chain)
		e.event.Str(key+"_root", root)
		e.event.Str(key+"_history", joinChain(chain))
		e.event.Strs(key+"_ops", ops)
		if rootOp != emptyString {
			e.event.Str(key+"_root_op", rootOp)
		}
	}
	return e
}

func (e *logEvent) Interface(key string, val interface{}) LogEvent {
	if e.event != nil {
		e.event.Interface(key, val)
	}
	return e
}

func (e *logEvent) Object(key string, obj zerolog.LogObjectMarshaler) LogEvent {
	if e.event != nil {
		e.event.Object(key, obj)
	}
	return e
}

// EmbedObject merges obj's fields into the top level of the record.
func (e *logEvent) EmbedObject(obj zerolog.LogObjectMarshaler) LogEvent {
	if e.event != nil {
		e.event.EmbedObject(obj)
	}
	return e
}

func (e *logEvent) Array(key string, arr zerolog.LogArrayMarshaler) LogEvent {
	if e.event != nil {
		e.event.Array(key, arr)
	}
	return e
}

// Dict for nested objects
func (e *logEvent) Dict(key string, dict func(LogEvent)) LogEvent {
	if e.event != nil {
		dictEvent := zerolog.Dict()
		dict(newLogEvent(dictEvent))
		e.event.Dict(key, dictEvent)
	}
	return e
}

func (e *logEvent) Msg(msg string) {
	if e.event != nil {
		e.event.Msg(msg)
	}
}

func (e *logEvent) Send() {
	if e.event != nil {
		e.event.Send()
	}
}

// zlogger is the zerolog-backed Logger used for both the root and client loggers.
type zlogger struct {
	logger zerolog.Logger
	// closed is shared by a root logger and every logger derived from it.
	closed *atomic.Bool
}

func newZLogger(l zerolog.Logger) *zlogger {
	return &zlogger{logger: l, closed: atomic.NewBool(false)}
}

func (l *zlogger) isClosed() bool {
	return l.closed != nil && l.closed.Load()
}

func (l *zlogger) DebugWith() LogEvent { return logEventBuilder(l, zerolog.DebugLevel) }
func (l *zlogger) InfoWith() LogEvent  { return logEventBuilder(l, zerolog.InfoLevel) }
func (l *zlogger) WarnWith() LogEvent  { return logEventBuilder(l, zerolog.WarnLevel) }
func (l *zlogger) ErrorWith() LogEvent { return logEventBuilder(l, zerolog.ErrorLevel) }

func (l *zlogger) With() LogContext {
	if l == nil {
		return &noopLogContext{}
	}
	return &logContext{context: l.logger.With(), closed: l.closed}
}

// withClient derives the client-scoped child logger: {"client":{"id":...}}.
func (l *zlogger) withClient(id string) *zlogger {
	return &zlogger{
		logger: l.logger.With().Dict(fieldClient, zerolog.Dict().Str(fieldClientID, id)).Logger(),
		closed: l.closed,
	}
}

// logContext implements LogContext by wrapping zerolog.Context
type logContext struct {
	context zerolog.Context
	closed  *atomic.Bool
}

func (c *logContext) Str(key, val string) LogContext {
	c.context = c.context.Str(key, val)
	return c
}

func (c *logContext) Object(key string, obj zerolog.LogObjectMarshaler) LogContext {
	c.context = c.context.Object(key, obj)
	return c
}

func (c *logContext) Dict(key string, dict func(LogEvent)) LogContext {
	dictEvent := zerolog.Dict()
	dict(newLogEvent(dictEvent))
	c.context = c.context.Dict(key, dictEvent)
	return c
}

func (c *logContext) Logger() Logger {
	return &zlogger{logger: c.context.Logger(), closed: c.closed}
}

// noopLogContext is a no-op implementation of LogContext
type noopLogContext struct{}

func (n *noopLogContext) Str(key, val string) LogContext                               { return n }
func (n *noopLogContext) Object(key string, obj zerolog.LogObjectMarshaler) LogContext { return n }
func (n *noopLogContext) Dict(key string, dict func(LogEvent)) LogContext              { return n }
func (n *noopLogContext) Logger() Logger                                               { return noopLogger{} }

// noopLogger is a no-op implementation of Logger
type noopLogger struct{}

func (noopLogger) DebugWith() LogEvent { return newLogEvent(nil) }
func (noopLogger) InfoWith() LogEvent  { return newLogEvent(nil) }
func (noopLogger) WarnWith() LogEvent  { return newLogEvent(nil) }
func (noopLogger) ErrorWith() LogEvent { return newLogEvent(nil) }
func (noopLogger) With() LogContext    { return &noopLogContext{} }
