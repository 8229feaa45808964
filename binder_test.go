package brokerlog

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/Station-Manager/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logEntry map[string]any

// Helper function to create a valid logging config
func validLoggingConfig() *types.LoggingConfig {
	return &types.LoggingConfig{
		Level:             "debug",
		SkipFrameCount:    0,
		WithTimestamp:     false,
		ConsoleLogging:    false,
		FileLogging:       false,
		RelLogFileDir:     ".", // Use current dir to pass validation
		LogFileMaxBackups: 3,
		LogFileMaxAgeDays: 7,
		LogFileMaxSizeMB:  10,
	}
}

// newTestBinder binds a fresh Hub with JSON output captured in a buffer.
func newTestBinder(t testing.TB, mutate ...func(*Config)) (*Binder, *Hub, *bytes.Buffer) {
	t.Helper()
	hub := NewHub()
	buf := &bytes.Buffer{}
	cfg := Config{
		Stream:        buf,
		LoggerOptions: validLoggingConfig(),
		Instance:      hub,
	}
	for _, m := range mutate {
		m(&cfg)
	}

	b, err := New(cfg)
	require.NoError(t, err)
	b.Bind()
	t.Cleanup(func() { _ = b.Close() })
	return b, hub, buf
}

type threadSafeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *threadSafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *threadSafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func decodeEntries(t testing.TB, buf *bytes.Buffer) []logEntry {
	t.Helper()
	var entries []logEntry
	dec := json.NewDecoder(bytes.NewReader(buf.Bytes()))
	for dec.More() {
		var e logEntry
		require.NoError(t, dec.Decode(&e))
		entries = append(entries, e)
	}
	return entries
}

func singleEntry(t testing.TB, buf *bytes.Buffer) logEntry {
	t.Helper()
	entries := decodeEntries(t, buf)
	require.Len(t, entries, 1)
	return entries[0]
}

func TestNew(t *testing.T) {
	t.Run("nil instance", func(t *testing.T) {
		_, err := New(Config{Stream: &bytes.Buffer{}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), errMsgConfigInvalid)
	})

	t.Run("invalid level", func(t *testing.T) {
		opts := validLoggingConfig()
		opts.Level = "invalid_level"

		_, err := New(Config{Stream: &bytes.Buffer{}, LoggerOptions: opts, Instance: NewHub()})
		require.Error(t, err)
	})

	t.Run("file logging without working dir", func(t *testing.T) {
		opts := validLoggingConfig()
		opts.FileLogging = true

		_, err := New(Config{Stream: &bytes.Buffer{}, LoggerOptions: opts, Instance: NewHub()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), errMsgWorkingDirUnset)
	})

	t.Run("defaults", func(t *testing.T) {
		b, err := New(Config{Instance: NewHub()})
		require.NoError(t, err)
		assert.Equal(t, zerolog.InfoLevel, b.root.logger.GetLevel())
		assert.Nil(t, b.fileWriter)
		assert.NotEqual(t, noopLogger{}, b.Root())
	})

	t.Run("default level hides broker publishes", func(t *testing.T) {
		_, hub, buf := newTestBinder(t, func(c *Config) { c.LoggerOptions = nil })

		hub.EmitPublish(&Publish{Topic: "$SYS/uptime"}, nil)
		assert.Empty(t, buf.String())

		hub.EmitClient(NewClient("c1", ""))
		entry := singleEntry(t, buf)
		assert.Equal(t, "info", entry["level"])
		assert.Contains(t, entry, zerolog.TimestampFieldName)
	})
}

func TestBinder_Bind(t *testing.T) {
	t.Run("returns the same instance", func(t *testing.T) {
		hub := NewHub()
		inst, err := Bind(Config{Stream: &bytes.Buffer{}, Instance: hub})
		require.NoError(t, err)
		assert.Same(t, hub, inst)
	})

	t.Run("attaches root logger to instance", func(t *testing.T) {
		b, hub, buf := newTestBinder(t)
		assert.Same(t, b.root, hub.Logger())

		hub.Logger().InfoWith().Msg("from broker")
		entry := singleEntry(t, buf)
		assert.Equal(t, "from broker", entry["msg"])
	})

	t.Run("second bind registers nothing", func(t *testing.T) {
		b, hub, buf := newTestBinder(t)
		assert.Same(t, hub, b.Bind())

		hub.EmitClient(NewClient("c1", ""))
		assert.Len(t, decodeEntries(t, buf), 1)
	})

	t.Run("nil binder", func(t *testing.T) {
		var b *Binder
		assert.Nil(t, b.Bind())
		assert.Equal(t, noopLogger{}, b.Root())
	})
}

func TestBinder_Close(t *testing.T) {
	t.Run("close nil binder", func(t *testing.T) {
		var b *Binder
		assert.NoError(t, b.Close())
	})

	t.Run("multiple close calls", func(t *testing.T) {
		b, _, _ := newTestBinder(t)
		assert.NoError(t, b.Close())
		assert.NoError(t, b.Close())
	})

	t.Run("events after close are dropped", func(t *testing.T) {
		b, hub, buf := newTestBinder(t, func(c *Config) {
			c.WorkingDir = t.TempDir()
			c.LoggerOptions.FileLogging = true
			c.LoggerOptions.RelLogFileDir = "logs"
		})
		connected := NewClient("c1", "")
		hub.EmitClient(connected)

		require.NoError(t, b.Close())
		require.NoError(t, os.Remove(b.fileWriter.Filename))
		buf.Reset()

		hub.EmitClient(NewClient("c2", ""))
		hub.EmitSubscribe(Subscriptions{{Topic: "a/b"}}, connected)
		hub.EmitPublish(&Publish{Topic: "a/b"}, nil)
		b.Root().ErrorWith().Msg("late")

		assert.Empty(t, buf.String())
		_, err := os.Stat(b.fileWriter.Filename)
		assert.True(t, os.IsNotExist(err), "log file reopened after close")
	})
}

func TestBinder_FileLogging(t *testing.T) {
	wd := t.TempDir()
	b, hub, buf := newTestBinder(t, func(c *Config) {
		c.WorkingDir = wd
		c.LoggerOptions.FileLogging = true
		c.LoggerOptions.RelLogFileDir = "logs"
	})
	require.NotNil(t, b.fileWriter)
	assert.True(t, strings.HasPrefix(b.fileWriter.Filename, wd))

	hub.EmitClient(NewClient("c1", ""))
	require.NoError(t, b.Close())

	content, err := os.ReadFile(b.fileWriter.Filename)
	require.NoError(t, err)
	assert.Contains(t, string(content), msgConnected)
	// The stream still receives every record.
	assert.Contains(t, buf.String(), msgConnected)
}

func TestBinder_ConsoleLogging(t *testing.T) {
	_, hub, buf := newTestBinder(t, func(c *Config) {
		c.LoggerOptions.ConsoleLogging = true
		c.LoggerOptions.ConsoleNoColor = true
	})

	hub.EmitClient(NewClient("c1", ""))

	out := buf.String()
	assert.False(t, strings.HasPrefix(out, "{"))
	assert.Contains(t, out, msgConnected)
	assert.Contains(t, out, "c1")
}

type countingHook struct {
	levels []zerolog.Level
}

func (h *countingHook) Run(_ *zerolog.Event, level zerolog.Level, _ string) {
	h.levels = append(h.levels, level)
}

func TestBinder_Hooks(t *testing.T) {
	hook := &countingHook{}
	_, hub, _ := newTestBinder(t, func(c *Config) { c.Hooks = []zerolog.Hook{hook, nil} })

	c := NewClient("c1", "")
	hub.EmitClient(c)
	hub.EmitClientDisconnect(NewClient("ghost", ""))

	assert.Equal(t, []zerolog.Level{zerolog.InfoLevel, zerolog.WarnLevel}, hook.levels)
}

func TestConfig_Listeners(t *testing.T) {
	a, b := NewEndpoint(nil, false), NewEndpoint(nil, true)

	t.Run("none", func(t *testing.T) {
		cfg := Config{}
		assert.Empty(t, cfg.listeners())
	})

	t.Run("single server", func(t *testing.T) {
		cfg := Config{Server: a}
		assert.Equal(t, []Listener{a}, cfg.listeners())
	})

	t.Run("servers win over server", func(t *testing.T) {
		cfg := Config{Server: a, Servers: []Listener{b}}
		assert.Equal(t, []Listener{b}, cfg.listeners())
	})

	t.Run("empty servers list", func(t *testing.T) {
		cfg := Config{Server: a, Servers: []Listener{}}
		assert.Empty(t, cfg.listeners())
	})
}
