// ============================================================================
// taletekst - Danish TTS text corpus builder
// ============================================================================
//
// Package:     version
// Description: Central version management
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package version

import "fmt"

// Version constants
const (
	// Application version
	App = "0.3.0"

	// DatasetFormat is bumped whenever the layout of the written corpus changes
	DatasetFormat = "1.0.0"

	// StoreSchema is the schema version of the ranked corpus store
	StoreSchema = "1.0.0"
)

// Set at build time via -ldflags
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Component returns the version for a given component name
func Component(name string) string {
	switch name {
	case "dataset":
		return DatasetFormat
	case "store":
		return StoreSchema
	default:
		return App
	}
}

// String returns the human readable version line
func String() string {
	return fmt.Sprintf("taletekst %s (dataset %s, store %s, commit %s, built %s)",
		App, DatasetFormat, StoreSchema, Commit, BuildDate)
}
