package telemetry

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"
)

var (
	mu  sync.RWMutex
	out io.Writer
)

// SetOutput redirects log lines to w. A nil writer restores stdout.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// Info writes an info-level log line with the given fields.
func Info(msg string, fields map[string]any) {
	write(slog.LevelInfo, msg, fields)
}

// Warn writes a warn-level log line with the given fields.
func Warn(msg string, fields map[string]any) {
	write(slog.LevelWarn, msg, fields)
}

// Error writes an error-level log line with the given fields.
func Error(msg string, fields map[string]any) {
	write(slog.LevelError, msg, fields)
}

func write(level slog.Level, msg string, fields map[string]any) {
	mu.RLock()
	w := out
	mu.RUnlock()
	if w == nil {
		w = os.Stdout
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{ReplaceAttr: replaceAttr}))

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	attrs := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, fields[k]))
	}
	logger.LogAttrs(context.Background(), level, msg, attrs...)
}

// replaceAttr keeps the ts/level/msg keys and lowercase levels.
func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.TimeKey:
		return slog.String("ts", a.Value.Time().UTC().Format(time.RFC3339))
	case slog.LevelKey:
		if lvl, ok := a.Value.Any().(slog.Level); ok {
			switch lvl {
			case slog.LevelError:
				return slog.String("level", "error")
			case slog.LevelWarn:
				return slog.String("level", "warn")
			case slog.LevelDebug:
				return slog.String("level", "debug")
			}
		}
		return slog.String("level", "info")
	}
	if err, ok := a.Value.Any().(error); ok {
		return slog.String(a.Key, err.Error())
	}
	return a
}
