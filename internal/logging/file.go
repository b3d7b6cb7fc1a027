package logging

import (
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileOptions controls the rotating log file used by the CLI, whose
// terminal output is reserved for the user.
type FileOptions struct {
	Path       string
	Level      string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// ParseLevel maps debug|info|warn|error to a slog level. Unknown values
// fall back to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewFileLogger returns a JSON slog logger writing into a lumberjack-rotated
// file. The returned closer flushes and closes the current file.
func NewFileLogger(o FileOptions) (*SlogLogger, io.Closer) {
	w := &lumberjack.Logger{
		Filename:   o.Path,
		MaxSize:    orDefault(o.MaxSizeMB, 10),
		MaxBackups: orDefault(o.MaxBackups, 5),
		MaxAge:     orDefault(o.MaxAgeDays, 14),
		Compress:   true,
	}
	return NewWriterLogger(w, o.Level), w
}

// NewWriterLogger returns a JSON slog logger writing into w.
func NewWriterLogger(w io.Writer, level string) *SlogLogger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	return NewSlogLogger(slog.New(h))
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
