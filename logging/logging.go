package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFileName is the rotated log file written under the configured directory.
const LogFileName = "saferoute.slog"

// New returns a logger at level. With a dir it writes JSON records to a
// rotating file there; otherwise it writes text to stderr.
func New(level, dir string) *slog.Logger {
	lvl, err := ParseLevel(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v, using info\n", err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	if dir == "" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(NewRotatingWriter(dir, lvl == slog.LevelDebug), opts))
}

// NewRotatingWriter returns the lumberjack file writer used by New.
func NewRotatingWriter(dir string, debug bool) io.WriteCloser {
	w := &lumberjack.Logger{
		Filename:   filepath.Join(dir, LogFileName),
		MaxSize:    32, // MB
		MaxBackups: 3,
		MaxAge:     14,
		Compress:   true,
	}
	if debug {
		w.MaxSize = 256
	}
	return w
}

func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%s: invalid log level", level)
	}
}
