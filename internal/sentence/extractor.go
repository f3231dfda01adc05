// ============================================================================
// taletekst - Danish TTS text corpus builder
// ============================================================================
//
// Package:     sentence
// Description: Sentence extraction and cleanup of raw text blocks
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package sentence turns raw text blocks into clean sentences.
package sentence

import "strings"

// Extractor splits and filters raw text blocks
type Extractor struct {
	splitter  Splitter
	minLength int
}

// NewExtractor creates a new extractor. A nil splitter selects the
// bundled Danish Punkt model.
func NewExtractor(splitter Splitter, minLength int) *Extractor {
	if splitter == nil {
		splitter = DefaultSplitter()
	}
	return &Extractor{splitter: splitter, minLength: minLength}
}

// Splitter returns the boundary splitter in use
func (e *Extractor) Splitter() Splitter {
	return e.splitter
}

// Extract returns the cleaned sentences of corpus in input order. Every
// block is split on line breaks before sentence splitting, since a sentence
// never spans lines.
func (e *Extractor) Extract(corpus []string) []string {
	var result []string
	for _, block := range corpus {
		for _, line := range strings.Split(block, "\n") {
			for _, s := range e.splitter.Split(line) {
				s = Normalize(s)
				if Keep(s, e.minLength) {
					result = append(result, s)
				}
			}
		}
	}
	return result
}

// ExtractSentences extracts sentences with the Danish Punkt model
func ExtractSentences(corpus []string, minSentenceLength int) []string {
	return NewExtractor(nil, minSentenceLength).Extract(corpus)
}
