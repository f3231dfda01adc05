// ============================================================================
// taletekst - Danish TTS text corpus builder
// ============================================================================
//
// Package:     logging
// Description: Factory functions for run loggers with optional file rotation
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Component name of the root logger
	Name string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format ("json" or "text")
	Format string

	// Optional log file, rotated by size. Empty disables file logging.
	File       string
	MaxSizeMB  int
	MaxBackups int
	Compress   bool

	// Console output, defaults to stderr so stdout stays free for data
	Console io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(name string) LoggerConfig {
	return LoggerConfig{
		Name:       name,
		Level:      "info",
		Format:     "text",
		MaxSizeMB:  10,
		MaxBackups: 3,
	}
}

// NewLogger creates a run logger tagged with a fresh correlation id. The
// returned closer releases the log file and must be called on shutdown.
func NewLogger(cfg LoggerConfig) (*Logger, io.Closer) {
	var console io.Writer = os.Stderr
	if cfg.Console != nil {
		console = cfg.Console
	}

	output := console
	var closer io.Closer = nopCloser{}

	if cfg.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			Compress:   cfg.Compress,
		}
		output = io.MultiWriter(console, rotating)
		closer = rotating
	}

	logger := NewWithConfig(Config{
		Level:         ParseLevel(cfg.Level),
		Format:        ParseFormat(cfg.Format),
		Output:        output,
		Name:          cfg.Name,
		CorrelationID: uuid.NewString(),
	})
	return logger, closer
}

// New creates a simple text logger on stderr (info level) for a component
func New(name string) *Logger {
	return NewWithConfig(Config{
		Level:  LevelInfo,
		Format: FormatText,
		Output: os.Stderr,
		Name:   name,
	})
}

// Discard returns a logger that drops everything, for tests
func Discard() *Logger {
	return NewWithConfig(Config{Level: LevelFatal + 1, Output: io.Discard})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
