package telemetry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var logger *slog.Logger

// Init configures the process logger: the console shows consoleLevel and
// above, and when logDir is non-empty a dated log file under it captures
// everything from DEBUG up. Called once per process from main.
func Init(consoleLevel slog.Level, logDir string) {
	h := &prettyHandler{console: os.Stderr, consoleLevel: consoleLevel}
	if logDir != "" {
		if f, err := openLogFile(logDir); err == nil {
			h.file = f
		} else {
			fmt.Fprintf(os.Stderr, "telemetry: log file disabled: %v\n", err)
		}
	}
	logger = slog.New(h)
	slog.SetDefault(logger)
}

func openLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	name := filepath.Join(dir, "tradebot_"+time.Now().Format("20060102")+".log")
	return os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

func L() *slog.Logger {
	if logger == nil {
		Init(slog.LevelInfo, "")
	}
	return logger
}

func Infof(format string, args ...any)  { L().Info(fmt.Sprintf(format, args...)) }
func Warnf(format string, args ...any)  { L().Warn(fmt.Sprintf(format, args...)) }
func Errorf(format string, args ...any) { L().Error(fmt.Sprintf(format, args...)) }
func Debugf(format string, args ...any) { L().Debug(fmt.Sprintf(format, args...)) }

// ParseLogLevel converts a string level name to slog.Level.
func ParseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// prettyHandler outputs: [2026-02-21 5:10:39 PM PST] message
// The console only sees consoleLevel and above; the file, when set,
// receives every record.
type prettyHandler struct {
	console      io.Writer
	consoleLevel slog.Level
	file         io.Writer
	mu           sync.Mutex
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	if h.file != nil {
		return true
	}
	return level >= h.consoleLevel
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time.Format("2006-01-02 3:04:05 PM MST")

	var prefix string
	switch {
	case r.Level >= slog.LevelError:
		prefix = "ERROR: "
	case r.Level >= slog.LevelWarn:
		prefix = "WARN: "
	case r.Level < slog.LevelInfo:
		prefix = "DEBUG: "
	}

	line := fmt.Sprintf("[%s] %s%s\n", ts, prefix, r.Message)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.file != nil {
		if _, err := io.WriteString(h.file, line); err != nil {
			return err
		}
	}
	if r.Level >= h.consoleLevel {
		_, err := io.WriteString(h.console, line)
		return err
	}
	return nil
}

func (h *prettyHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *prettyHandler) WithGroup(_ string) slog.Handler      { return h }
