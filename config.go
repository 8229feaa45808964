package brokerlog

import (
	"io"
	"os"

	"github.com/Station-Manager/types"
	"github.com/rs/zerolog"
)

// Config is the single entry point for decorating a broker instance.
// The zero value of every optional field is a usable default.
//
// Records use "msg" for the message and "err" for errors; New sets these
// zerolog keys globally, see New.
type Config struct {
	// Stream receives every record. Default: os.Stdout.
	Stream io.Writer `validate:"-"`

	// LoggerOptions configures the zerolog backend (level, timestamps,
	// console formatting, rolling file). Default: level info with timestamps,
	// JSON to Stream only.
	LoggerOptions *types.LoggingConfig `validate:"-"`

	// WorkingDir is the base for LoggerOptions.RelLogFileDir. Required only
	// when file logging is enabled.
	WorkingDir string

	// Instance is the broker to decorate.
	Instance Instance `validate:"required"`

	// Server is a single listener; ignored when Servers is non-nil.
	Server Listener `validate:"-"`
	// Servers lists every listener whose "listening" signal is logged.
	Servers []Listener `validate:"-"`

	// DisableMessages stops publish events from being logged.
	DisableMessages bool

	// Hooks run for every record emitted by the root logger and its children.
	Hooks []zerolog.Hook `validate:"-"`
}

func (c *Config) stream() io.Writer {
	if c.Stream == nil {
		return os.Stdout
	}
	return c.Stream
}

func (c *Config) loggerOptions() *types.LoggingConfig {
	if c.LoggerOptions != nil {
		return c.LoggerOptions
	}
	return defaultLoggerOptions()
}

func (c *Config) listeners() []Listener {
	if c.Servers != nil {
		return c.Servers
	}
	if c.Server != nil {
		return []Listener{c.Server}
	}
	return nil
}

func defaultLoggerOptions() *types.LoggingConfig {
	return &types.LoggingConfig{
		Level:             defaultLevel,
		WithTimestamp:     true,
		RelLogFileDir:     "logs",
		LogFileMaxBackups: 3,
		LogFileMaxAgeDays: 7,
		LogFileMaxSizeMB:  10,
	}
}
