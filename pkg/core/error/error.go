// ============================================================================
// taletekst - Danish TTS text corpus builder
// ============================================================================
//
// Package:     error
// Description: Structured error type with code, severity and context
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package error

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error represents a structured error with code, operation and details
type Error struct {
	message   string
	cause     error
	code      Code
	severity  Severity
	operation string
	details   map[string]interface{}
}

// New creates a new Error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		message:  message,
		code:     code,
		severity: defaultSeverity(code),
		details:  make(map[string]interface{}),
	}
}

// Newf creates a new Error with a formatted message
func Newf(code Code, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error. Code and severity of a wrapped *Error are kept.
func Wrap(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := New(code, message)
	wrapped.cause = err

	var inner *Error
	if errors.As(err, &inner) {
		if code == CodeUnknown {
			wrapped.code = inner.code
		}
		if inner.severity > wrapped.severity {
			wrapped.severity = inner.severity
		}
		for k, v := range inner.details {
			wrapped.details[k] = v
		}
	}
	return wrapped
}

// Error implements the standard error interface
func (e *Error) Error() string {
	var b strings.Builder
	if e.operation != "" {
		b.WriteString(e.operation)
		b.WriteString(": ")
	}
	b.WriteString(e.message)
	if e.cause != nil {
		b.WriteString(": ")
		b.WriteString(e.cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches errors carrying the same code, so sentinel-style checks work
// with errors.Is(err, New(CodeSamplingPlan, "")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.code == e.code && (t.message == "" || t.message == e.message)
}

// Code returns the error code
func (e *Error) Code() Code { return e.code }

// Severity returns the error severity
func (e *Error) Severity() Severity { return e.severity }

// Operation returns the operation during which the error occurred
func (e *Error) Operation() string { return e.operation }

// Message returns the message without cause or operation
func (e *Error) Message() string { return e.message }

// Details returns a copy of the error details
func (e *Error) Details() map[string]interface{} {
	out := make(map[string]interface{}, len(e.details))
	for k, v := range e.details {
		out[k] = v
	}
	return out
}

// WithOperation sets the operation context
func (e *Error) WithOperation(op string) *Error {
	e.operation = op
	return e
}

// WithSeverity overrides the severity
func (e *Error) WithSeverity(s Severity) *Error {
	e.severity = s
	return e
}

// WithDetail adds a detail key/value
func (e *Error) WithDetail(key string, value interface{}) *Error {
	e.details[key] = value
	return e
}

// WithCode overrides the code
func (e *Error) WithCode(code Code) *Error {
	e.code = code
	return e
}

// DetailString renders details as sorted key=value pairs
func (e *Error) DetailString() string {
	keys := make([]string, 0, len(e.details))
	for k := range e.details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, e.details[k]))
	}
	return strings.Join(parts, " ")
}

// GetCode returns the code of the first *Error in the chain, or CodeUnknown
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return CodeUnknown
}

// HasCode reports whether any *Error in the chain carries code
func HasCode(err error, code Code) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.code == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
