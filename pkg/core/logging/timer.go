// ============================================================================
// taletekst - Danish TTS text corpus builder
// ============================================================================
//
// Package:     logging
// Description: Operation timer that logs elapsed time on completion
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package logging

import "time"

// Timer measures an operation and logs its duration when stopped
type Timer struct {
	logger    *Logger
	operation string
	startTime time.Time
	fields    Fields
	level     Level
	stopped   bool
}

// NewTimer creates a new timer for the given operation
func NewTimer(logger *Logger, operation string) *Timer {
	return &Timer{
		logger:    logger,
		operation: operation,
		startTime: time.Now(),
		fields:    make(Fields),
		level:     LevelInfo,
	}
}

// WithLevel sets the log level of the completion message
func (t *Timer) WithLevel(level Level) *Timer {
	t.level = level
	return t
}

// WithField adds a field to the completion message
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Elapsed returns the time since the timer was started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.startTime)
}

// Stop logs "<operation> completed" with the elapsed time. Only the first call logs.
func (t *Timer) Stop() time.Duration {
	if t.stopped {
		return 0
	}
	t.stopped = true

	elapsed := t.Elapsed()
	fields := make(Fields, len(t.fields)+1)
	for k, v := range t.fields {
		fields[k] = v
	}
	fields["operation"] = t.operation

	if t.logger != nil {
		t.logger.logTimed(t.level, t.operation+" completed", nil, fields, elapsed)
	}
	return elapsed
}

// StopWithError logs "<operation> failed" at error level
func (t *Timer) StopWithError(err error) time.Duration {
	if t.stopped {
		return 0
	}
	t.stopped = true

	elapsed := t.Elapsed()
	fields := Fields{"operation": t.operation}
	for k, v := range t.fields {
		fields[k] = v
	}
	if t.logger != nil {
		t.logger.logTimed(LevelError, t.operation+" failed", err, fields, elapsed)
	}
	return elapsed
}
