// Package logging provides structured logging using Go's slog package.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelTrace is a level below debug for per-card detail such as quiz steps.
const LevelTrace = slog.Level(-8)

// Config holds logging configuration.
type Config struct {
	Level   string     // trace, debug, info, warn, error
	Format  string     // json, text, pretty
	Service string     // service name for default attrs
	Version string     // service version for default attrs
	File    FileConfig // optional rolling log file
}

// FileConfig configures an additional JSON log file with rotation.
type FileConfig struct {
	Enabled    bool
	Path       string
	Level      string // empty uses the console level
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// New creates a logger writing to stderr, so stdout stays free for CLI output.
func New(cfg *Config) *slog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter creates a logger writing to w, and to the rolling file when
// one is configured. Secret redaction is applied to json and text output.
func NewWithWriter(cfg *Config, w io.Writer) *slog.Logger {
	level := parseLevel(cfg.Level)

	var handler slog.Handler = consoleHandler(cfg.Format, level, w)

	if cfg.File.Enabled && cfg.File.Path != "" {
		fileLevel := level
		if cfg.File.Level != "" {
			fileLevel = parseLevel(cfg.File.Level)
		}

		rotator := &lumberjack.Logger{
			Filename:   cfg.File.Path,
			MaxSize:    cfg.File.MaxSizeMB,
			MaxBackups: cfg.File.MaxBackups,
			MaxAge:     cfg.File.MaxAgeDays,
			Compress:   cfg.File.Compress,
		}

		fileHandler := slog.NewJSONHandler(rotator, &slog.HandlerOptions{
			Level:       fileLevel,
			ReplaceAttr: NewReplaceAttr(),
		})

		handler = NewMultiHandler(
			Sink{Handler: handler, MinLevel: level},
			Sink{Handler: fileHandler, MinLevel: fileLevel},
		)
	}

	return slog.New(handler).With(
		slog.String("service_name", cfg.Service),
		slog.String("service_version", cfg.Version),
	)
}

func consoleHandler(format string, level slog.Level, w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: NewReplaceAttr(),
	}

	switch strings.ToLower(format) {
	case "text":
		return slog.NewTextHandler(w, opts)
	case "pretty":
		return log.NewWithOptions(w, log.Options{
			Level:           slogToCharmLevel(level),
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
		})
	default:
		return slog.NewJSONHandler(w, opts)
	}
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// slogToCharmLevel maps slog levels onto the charm logger's coarser scale.
func slogToCharmLevel(level slog.Level) log.Level {
	switch {
	case level < slog.LevelInfo:
		return log.DebugLevel
	case level < slog.LevelWarn:
		return log.InfoLevel
	case level < slog.LevelError:
		return log.WarnLevel
	default:
		return log.ErrorLevel
	}
}
