package brokerlog

import (
	"io"
	"path/filepath"

	"github.com/Station-Manager/types"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

func initializeRollingFileLogger(workingDir, exeName string, opts *types.LoggingConfig) *lumberjack.Logger {
	if exeName == emptyString {
		exeName = "broker"
	}

	path := filepath.Join(workingDir, opts.RelLogFileDir, exeName+".log")

	return &lumberjack.Logger{
		Filename:   path,
		MaxBackups: opts.LogFileMaxBackups,
		MaxAge:     opts.LogFileMaxAgeDays,
		MaxSize:    opts.LogFileMaxSizeMB,
		Compress:   opts.LogFileCompress,
	}
}

// initializeWriters returns the stream writer, formatted for humans when
// console logging is on, plus the rolling file when file logging is on.
func (b *Binder) initializeWriters(stream io.Writer, opts *types.LoggingConfig, exeName string) []io.Writer {
	writers := make([]io.Writer, 0, 2)

	if opts.ConsoleLogging {
		cw := zerolog.ConsoleWriter{Out: stream, NoColor: opts.ConsoleNoColor}
		if opts.ConsoleTimeFormat != emptyString {
			cw.TimeFormat = opts.ConsoleTimeFormat
		}
		writers = append(writers, cw)
	} else {
		writers = append(writers, stream)
	}
	if opts.FileLogging {
		b.fileWriter = initializeRollingFileLogger(b.cfg.WorkingDir, exeName, opts)
		writers = append(writers, b.fileWriter)
	}

	return writers
}
