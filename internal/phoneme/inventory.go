// ============================================================================
// taletekst - Danish TTS text corpus builder
// ============================================================================
//
// Package:     phoneme
// Description: Phoneme inventory, occurrence counting and covering sets
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package phoneme selects documents that together cover every phoneme of an
// inventory a given number of times.
package phoneme

import (
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	tterr "github.com/msto63/taletekst/pkg/core/error"
)

// Unit is a phoneme with example word forms that witness it
type Unit struct {
	Name     string   `yaml:"name" json:"name"`
	Examples []string `yaml:"examples" json:"examples"`
}

// Inventory maps a language tag to its phoneme units
type Inventory map[string][]Unit

// LoadInventory reads a phoneme definition file. JSON and YAML are both
// accepted.
func LoadInventory(path string) (Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, tterr.Wrap(err, tterr.CodeInventoryError, "failed to read phoneme file").
			WithDetail("path", path)
	}
	return ParseInventory(data)
}

// ParseInventory parses phoneme definitions
func ParseInventory(data []byte) (Inventory, error) {
	var inv Inventory
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return nil, tterr.Wrap(err, tterr.CodeInventoryError, "failed to parse phoneme file")
	}
	if len(inv) == 0 {
		return nil, tterr.New(tterr.CodeInventoryError, "phoneme file defines no languages")
	}
	for lang, units := range inv {
		for i, u := range units {
			if u.Name == "" {
				return nil, tterr.Newf(tterr.CodeInventoryError,
					"phoneme %d of language %q has no name", i, lang)
			}
		}
	}
	return inv, nil
}

// Languages returns the language tags in sorted order
func (inv Inventory) Languages() []string {
	langs := make([]string, 0, len(inv))
	for lang := range inv {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// UnitNames returns every distinct unit name across all languages, sorted
func (inv Inventory) UnitNames() []string {
	seen := make(map[string]bool)
	for _, units := range inv {
		for _, u := range units {
			seen[u.Name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
