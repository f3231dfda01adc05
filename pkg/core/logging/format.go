// ============================================================================
// taletekst - Danish TTS text corpus builder
// ============================================================================
//
// Package:     logging
// Description: JSON and text formatters
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package logging

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Format represents the output format for log messages
type Format int

const (
	FormatJSON Format = iota
	FormatText
)

// ParseFormat parses a format name, defaulting to text
func ParseFormat(format string) Format {
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		return FormatJSON
	}
	return FormatText
}

// Formatter turns an entry into one output line
type Formatter interface {
	Format(entry *Entry) ([]byte, error)
}

// GetFormatter returns the formatter for a format
func GetFormatter(format Format) Formatter {
	if format == FormatJSON {
		return &JSONFormatter{TimestampFormat: time.RFC3339}
	}
	return &TextFormatter{TimestampFormat: "15:04:05"}
}

// JSONFormatter formats log entries as single-line JSON
type JSONFormatter struct {
	TimestampFormat string
}

// Format formats a log entry as JSON
func (f *JSONFormatter) Format(entry *Entry) ([]byte, error) {
	data := make(map[string]interface{}, len(entry.Fields)+6)
	for k, v := range entry.Fields {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		data[k] = v
	}

	data["timestamp"] = entry.Timestamp.Format(f.TimestampFormat)
	data["level"] = entry.Level.String()
	data["message"] = entry.Message
	if entry.Logger != "" {
		data["logger"] = entry.Logger
	}
	if entry.CorrelationID != "" {
		data["correlation_id"] = entry.CorrelationID
	}
	if entry.Error != nil {
		data["error"] = entry.Error.Error()
	}
	if entry.Duration > 0 {
		data["duration_ms"] = float64(entry.Duration.Nanoseconds()) / 1e6
	}

	b, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// TextFormatter formats log entries as human-readable text
type TextFormatter struct {
	TimestampFormat string
}

// Format formats a log entry as text. Fields are sorted for stable output.
func (f *TextFormatter) Format(entry *Entry) ([]byte, error) {
	var b strings.Builder

	b.WriteString(entry.Timestamp.Format(f.TimestampFormat))
	b.WriteString(" [")
	b.WriteString(entry.Level.ShortString())
	b.WriteString("]")
	if entry.Logger != "" {
		b.WriteString(" {")
		b.WriteString(entry.Logger)
		b.WriteString("}")
	}
	b.WriteString(" ")
	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Fields))
	for k := range entry.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Fields[k])
	}

	if entry.Duration > 0 {
		fmt.Fprintf(&b, " duration=%s", entry.Duration.Round(time.Millisecond))
	}
	if entry.Error != nil {
		fmt.Fprintf(&b, " error=%q", entry.Error.Error())
	}
	if entry.CorrelationID != "" {
		fmt.Fprintf(&b, " run=%s", entry.CorrelationID)
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}
