// Package logger wraps a global zerolog logger. The TUI owns the
// terminal, so interactive runs log to a file and plain commands log
// to stderr.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

func init() {
	// default before Init is called: stderr, warnings and up
	log = zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger()
}

// Init points the global logger at stderr with the given level.
// Unknown levels fall back to info.
func Init(level string) {
	log = zerolog.New(os.Stderr).Level(parseLevel(level)).With().Timestamp().Logger()
}

// InitFile points the global logger at a file, creating parent
// directories as needed. Used by the TUI so log output never touches
// the screen. An empty path silences logging entirely.
func InitFile(path, level string) error {
	if path == "" {
		log = zerolog.New(io.Discard)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	log = zerolog.New(f).Level(parseLevel(level)).With().Timestamp().Logger()
	return nil
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

func Debug() *zerolog.Event { return log.Debug() }
func Info() *zerolog.Event  { return log.Info() }
func Warn() *zerolog.Event  { return log.Warn() }
func Error() *zerolog.Event { return log.Error() }

// Errorf provides printf-style logging at error level.
func Errorf(format string, v ...any) {
	log.Error().Msgf(format, v...)
}

// Warnf provides printf-style logging at warn level.
func Warnf(format string, v ...any) {
	log.Warn().Msgf(format, v...)
}

// Get returns the underlying zerolog.Logger for advanced usage.
func Get() zerolog.Logger {
	return log
}
