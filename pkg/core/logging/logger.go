// ============================================================================
// taletekst - Danish TTS text corpus builder
// ============================================================================
//
// Package:     logging
// Description: Structured logger with named components and key/value fields
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package logging

import (
	"errors"
	"io"
	"os"
	"sync"
	"time"

	tterr "github.com/msto63/taletekst/pkg/core/error"
)

// Logger represents a structured logger with contextual information
type Logger struct {
	level         Level
	formatter     Formatter
	output        io.Writer
	name          string
	correlationID string
	contextFields Fields

	// shared by clones so writes to the same output never interleave
	writeMu *sync.Mutex
}

// Config represents logger configuration
type Config struct {
	Level         Level
	Format        Format
	Output        io.Writer
	Name          string
	CorrelationID string
}

// NewWithConfig creates a new logger with the specified configuration
func NewWithConfig(cfg Config) *Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	return &Logger{
		level:         cfg.Level,
		formatter:     GetFormatter(cfg.Format),
		output:        output,
		name:          cfg.Name,
		correlationID: cfg.CorrelationID,
		contextFields: make(Fields),
		writeMu:       &sync.Mutex{},
	}
}

// Named returns a child logger for a component, e.g. "source.crawl"
func (l *Logger) Named(name string) *Logger {
	clone := l.clone()
	if clone.name != "" && name != "" {
		clone.name = clone.name + "." + name
	} else if name != "" {
		clone.name = name
	}
	return clone
}

// WithField adds a persistent field to all log entries
func (l *Logger) WithField(key string, value interface{}) *Logger {
	clone := l.clone()
	clone.contextFields[key] = value
	return clone
}

// WithFields adds persistent fields to all log entries
func (l *Logger) WithFields(fields Fields) *Logger {
	clone := l.clone()
	for k, v := range fields {
		clone.contextFields[k] = v
	}
	return clone
}

// WithCorrelationID sets the run correlation id
func (l *Logger) WithCorrelationID(id string) *Logger {
	clone := l.clone()
	clone.correlationID = id
	return clone
}

// WithLevel returns a logger with a different minimum level
func (l *Logger) WithLevel(level Level) *Logger {
	clone := l.clone()
	clone.level = level
	return clone
}

// Level returns the minimum level
func (l *Logger) Level() Level { return l.level }

// Name returns the component name
func (l *Logger) Name() string { return l.name }

// Trace logs a trace message with key-value pairs
func (l *Logger) Trace(msg string, keysAndValues ...interface{}) {
	l.log(LevelTrace, msg, nil, toFields(keysAndValues...))
}

// Debug logs a debug message with key-value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.log(LevelDebug, msg, nil, toFields(keysAndValues...))
}

// Info logs an info message with key-value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.log(LevelInfo, msg, nil, toFields(keysAndValues...))
}

// Warn logs a warning message with key-value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.log(LevelWarn, msg, nil, toFields(keysAndValues...))
}

// Error logs an error message with key-value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.log(LevelError, msg, nil, toFields(keysAndValues...))
}

// ErrorWithErr logs an error together with an error object
func (l *Logger) ErrorWithErr(msg string, err error, keysAndValues ...interface{}) {
	l.log(LevelError, msg, err, toFields(keysAndValues...))
}

// LogError logs err at a level derived from its severity
func (l *Logger) LogError(err error) {
	if err == nil {
		return
	}

	var e *tterr.Error
	if !errors.As(err, &e) {
		l.log(LevelError, err.Error(), nil, nil)
		return
	}

	fields := Fields{
		"error_code":     e.Code().String(),
		"error_severity": e.Severity().String(),
	}
	if op := e.Operation(); op != "" {
		fields["error_operation"] = op
	}
	for k, v := range e.Details() {
		fields["error_"+k] = v
	}

	level := LevelError
	switch e.Severity() {
	case tterr.SeverityLow:
		level = LevelInfo
	case tterr.SeverityMedium:
		level = LevelWarn
	}
	l.log(level, err.Error(), nil, fields)
}

// StartTimer creates and starts a timer for an operation
func (l *Logger) StartTimer(operation string) *Timer {
	return NewTimer(l, operation)
}

func (l *Logger) log(level Level, msg string, err error, fields Fields) {
	l.logTimed(level, msg, err, fields, 0)
}

func (l *Logger) logTimed(level Level, msg string, err error, fields Fields, d time.Duration) {
	if !level.ShouldLog(l.level) {
		return
	}

	entry := NewEntry(level, msg)
	entry.Logger = l.name
	entry.CorrelationID = l.correlationID
	entry.Error = err
	entry.Duration = d
	for k, v := range l.contextFields {
		entry.Fields[k] = v
	}
	for k, v := range fields {
		entry.Fields[k] = v
	}

	formatted, formatErr := l.formatter.Format(entry)
	if formatErr != nil {
		return
	}

	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	_, _ = l.output.Write(formatted)
}

func (l *Logger) clone() *Logger {
	clone := &Logger{
		level:         l.level,
		formatter:     l.formatter,
		output:        l.output,
		name:          l.name,
		correlationID: l.correlationID,
		contextFields: make(Fields, len(l.contextFields)),
		writeMu:       l.writeMu,
	}
	for k, v := range l.contextFields {
		clone.contextFields[k] = v
	}
	return clone
}

// toFields converts key-value pairs to Fields; non-string keys are skipped
func toFields(keysAndValues ...interface{}) Fields {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make(Fields, len(keysAndValues)/2)
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
