package logger

import (
	"io"
	"log/slog"
	"sync"
	"time"
)

// Config selects where library diagnostics go. A nil Writer discards them.
type Config struct {
	Writer io.Writer
	Debug  bool
	JSON   bool
}

var (
	mu       sync.RWMutex
	global   = discard()
	initedAt time.Time
)

// Setup installs a process-wide logger and returns a function restoring the
// previous one.
func Setup(cfg Config) func() {
	if cfg.Writer == nil {
		cfg.Writer = io.Discard
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
			}
			return a
		},
	}

	var h slog.Handler
	if cfg.JSON {
		h = slog.NewJSONHandler(cfg.Writer, opts)
	} else {
		h = slog.NewTextHandler(cfg.Writer, opts)
	}

	mu.Lock()
	prev, prevAt := global, initedAt
	global = slog.New(h)
	initedAt = time.Now().UTC()
	mu.Unlock()

	return func() {
		mu.Lock()
		defer mu.Unlock()
		global, initedAt = prev, prevAt
	}
}

// L returns the current logger.
func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// InitTime reports when Setup last ran, or the zero time.
func InitTime() time.Time {
	mu.RLock()
	defer mu.RUnlock()
	return initedAt
}

func discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
