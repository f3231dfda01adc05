// ============================================================================
// taletekst - Danish TTS text corpus builder
// ============================================================================
//
// Package:     logging
// Description: Log entry structure and field helpers
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package logging

import "time"

// Fields represents custom key-value pairs for structured logging
type Fields map[string]interface{}

// Entry represents a single log entry
type Entry struct {
	Timestamp     time.Time
	Level         Level
	Message       string
	Logger        string
	CorrelationID string
	Fields        Fields
	Error         error
	Duration      time.Duration
}

// NewEntry creates an entry stamped with the current time
func NewEntry(level Level, message string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Fields:    make(Fields),
	}
}

// Field creates a single field
func Field(key string, value interface{}) Fields {
	return Fields{key: value}
}

// Err creates an error field
func Err(err error) Fields {
	return Fields{"error": err}
}
