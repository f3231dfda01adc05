// ============================================================================
// taletekst - Danish TTS text corpus builder
// ============================================================================
//
// Package:     error
// Description: Error codes and severities for corpus building
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	CodeUnknown  Code = "UNKNOWN"
	CodeInternal Code = "INTERNAL"
	CodeNotFound Code = "NOT_FOUND"
	CodeIO       Code = "IO_ERROR"

	// Configuration
	CodeInvalidConfig Code = "INVALID_CONFIG"
	CodeMissingConfig Code = "MISSING_CONFIG"

	// Corpus assembly
	CodeSamplingPlan   Code = "SAMPLING_PLAN"
	CodeWeightMismatch Code = "WEIGHT_MISMATCH"
	CodeSourceFailed   Code = "SOURCE_FAILED"
	CodeUnknownKind    Code = "UNKNOWN_KIND"

	// Collaborators
	CodeFetchFailed    Code = "FETCH_FAILED"
	CodeStoreError     Code = "STORE_ERROR"
	CodeInventoryError Code = "INVENTORY_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// Severity represents how serious an error is for the current run
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// String returns the string representation of the severity
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// defaultSeverity maps codes to the severity a fresh error gets
func defaultSeverity(code Code) Severity {
	switch code {
	case CodeInvalidConfig, CodeMissingConfig, CodeSamplingPlan, CodeWeightMismatch:
		return SeverityCritical
	case CodeSourceFailed, CodeStoreError, CodeInventoryError, CodeInternal:
		return SeverityHigh
	case CodeNotFound:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
