package brokerlog

import (
	stderrs "errors"
	"strings"

	smerrors "github.com/Station-Manager/errors"
	"github.com/rs/zerolog"
)

// parseLevel parses a string log level into a zerolog.Level.
// An empty level means info.
func parseLevel(level string) (zerolog.Level, error) {
	if level == emptyString {
		level = defaultLevel
	}
	l, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.NoLevel, err
	}
	return l, nil
}

// buildErrorChain walks an error's cause chain and returns:
//   - chain: outermost -> innermost error messages
//   - ops: operation identifiers for DetailedError links ("" if not available)
//   - root: the innermost error message
//   - rootOp: the innermost operation identifier if available
//
// The traversal prefers Station-Manager DetailedError.Cause() and then
// falls back to stdlib errors.Unwrap. It guards against excessive depth
// and repeated messages to avoid cycles.
func buildErrorChain(err error) (chain []string, ops []string, root string, rootOp string) {
	const maxDepth = 50
	visited := 0
	seen := map[string]bool{}

	for err != nil && visited < maxDepth {
		visited++

		if dErr, ok := smerrors.AsDetailedError(err); ok && dErr != nil {
			chain = append(chain, dErr.Error())
			ops = append(ops, string(dErr.Op()))
			err = dErr.Cause()
			continue
		}

		msg := err.Error()
		if seen[msg] {
			break
		}
		seen[msg] = true
		chain = append(chain, msg)
		ops = append(ops, emptyString)
		err = stderrs.Unwrap(err)
	}

	if len(chain) > 0 {
		root = chain[len(chain)-1]
	}
	if len(ops) > 0 {
		rootOp = ops[len(ops)-1]
	}
	return
}

// joinChain returns a single string for the error chain separated by " -> ".
func joinChain(chain []string) string {
	if len(chain) == 0 {
		return emptyString
	}
	return strings.Join(chain, " -> ")
}

// logEventBuilder creates a log event for the given level.
// If the level is disabled on the logger, or the logger has been closed, it
// returns a no-op LogEvent.
func logEventBuilder(l *zlogger, level zerolog.Level) LogEvent {
	if l == nil || level == zerolog.NoLevel || l.isClosed() {
		return newLogEvent(nil)
	}
	if l.logger.GetLevel() > level {
		return newLogEvent(nil)
	}

	var event *zerolog.Event
	switch level {
	case zerolog.TraceLevel:
		event = l.logger.Trace()
	case zerolog.DebugLevel:
		event = l.logger.Debug()
	case zerolog.InfoLevel:
		event = l.logger.Info()
	case zerolog.WarnLevel:
		event = l.logger.Warn()
	case zerolog.ErrorLevel:
		event = l.logger.Error()
	default:
		return newLogEvent(nil)
	}
	return newLogEvent(event)
}
