package brokerlog

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/utils"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Binder owns the root logger of one broker instance and the handlers that
// log the instance's events through it.
type Binder struct {
	cfg        Config
	root       *zlogger
	fileWriter *lumberjack.Logger
	bound      atomic.Bool
}

var fieldNamesOnce sync.Once

// configureFieldNames keeps the record message out of the way of the
// "message" field carried by publish records.
func configureFieldNames() {
	fieldNamesOnce.Do(func() {
		zerolog.MessageFieldName = "msg"
		zerolog.ErrorFieldName = "err"
	})
}

// New validates cfg and builds the root logger. Nothing is registered on the
// instance until Bind is called.
//
// The first call sets zerolog.MessageFieldName to "msg" and
// zerolog.ErrorFieldName to "err". These are process-wide, so every other
// zerolog logger in the program uses the same keys from then on.
func New(cfg Config) (*Binder, error) {
	const op errors.Op = "brokerlog.New"
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	configureFieldNames()

	opts := cfg.loggerOptions()
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, errors.New(op).Err(err).Msg(errMsgInvalidLevel)
	}

	var exeName string
	if opts.FileLogging {
		dir := filepath.Join(cfg.WorkingDir, opts.RelLogFileDir)
		if err = os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, errors.New(op).Err(err).Msg(errMsgLogDir)
		}
		if exeName, err = utils.ExecName(true); err != nil {
			return nil, errors.New(op).Err(err).Msg(errMsgExecName)
		}
	}

	b := &Binder{cfg: cfg}
	writers := b.initializeWriters(cfg.stream(), opts, exeName)

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level)
	if opts.WithTimestamp {
		logger = logger.With().Timestamp().Logger()
	}
	if opts.SkipFrameCount > 0 {
		logger = logger.With().CallerWithSkipFrameCount(opts.SkipFrameCount).Logger()
	}
	for _, h := range cfg.Hooks {
		if h != nil {
			logger = logger.Hook(h)
		}
	}
	b.root = newZLogger(logger)

	return b, nil
}

// Bind decorates cfg.Instance and returns it. It is the one-call form of
// New followed by (*Binder).Bind.
func Bind(cfg Config) (Instance, error) {
	b, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return b.Bind(), nil
}

// Root returns the instance-wide logger.
func (b *Binder) Root() Logger {
	if b == nil || b.root == nil {
		return noopLogger{}
	}
	return b.root
}

// Bind hands the root logger to the instance, registers the listener and
// client handlers and returns the same instance. Only the first call registers
// anything.
func (b *Binder) Bind() Instance {
	if b == nil {
		return nil
	}
	inst := b.cfg.Instance
	if !b.bound.CompareAndSwap(false, true) {
		return inst
	}

	inst.SetLogger(b.root)

	for _, l := range b.cfg.listeners() {
		b.bindListener(l)
	}

	inst.OnClient(b.onClient)
	inst.OnClientDisconnect(b.onClientDisconnect)
	inst.OnSubscribe(b.onSubscribe)
	inst.OnUnsubscribe(b.onUnsubscribe)
	inst.OnClientError(b.onClientError)

	if !b.cfg.DisableMessages {
		inst.OnPublish(b.onPublish)
	}

	return inst
}

// Close silences the root logger and every client logger derived from it, then
// releases the rolling log file, if one was opened. Events the instance emits
// after Close produce no records. It's safe to call Close multiple times.
func (b *Binder) Close() error {
	if b == nil || b.root == nil || !b.root.closed.CompareAndSwap(false, true) {
		return nil
	}
	if b.fileWriter != nil {
		return b.fileWriter.Close()
	}
	return nil
}
