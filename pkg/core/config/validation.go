// ============================================================================
// taletekst - Danish TTS text corpus builder
// ============================================================================
//
// Package:     config
// Description: Fail-fast validation of the configuration
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package config

import (
	"slices"
	"sort"
	"strings"

	tterr "github.com/msto63/taletekst/pkg/core/error"
)

// Exhaustion policies for the interleaver
const (
	ExhaustionStop = "stop"
	ExhaustionSkip = "skip"
)

// SortStrategies lists the accepted phoneme ranking strategies
var SortStrategies = []string{"da", "en", "all"}

// Validate checks the configuration before any work starts
func (c *Config) Validate() error {
	if c.Sentences.MinSentenceLength <= 0 {
		return tterr.Newf(tterr.CodeInvalidConfig,
			"min_sentence_length must be positive, got %d", c.Sentences.MinSentenceLength)
	}

	switch c.Interleave.Exhaustion {
	case ExhaustionStop, ExhaustionSkip:
	default:
		return tterr.Newf(tterr.CodeInvalidConfig,
			"exhaustion must be %q or %q, got %q", ExhaustionStop, ExhaustionSkip, c.Interleave.Exhaustion)
	}

	if c.Interleave.MaxSamples < 0 {
		return tterr.New(tterr.CodeInvalidConfig, "max_samples must not be negative")
	}

	if !slices.Contains(SortStrategies, c.Phoneme.SortStrategy) {
		return tterr.Newf(tterr.CodeInvalidConfig, "unknown sort_strategy %q", c.Phoneme.SortStrategy).
			WithDetail("allowed", strings.Join(SortStrategies, ","))
	}

	if c.Phoneme.MinDocsPerPhoneme <= 0 {
		return tterr.New(tterr.CodeInvalidConfig, "min_docs_per_phoneme must be positive")
	}

	for _, name := range c.SourceNames() {
		if strings.TrimSpace(c.Sources[name].Kind) == "" {
			return tterr.Newf(tterr.CodeInvalidConfig, "source %q has no kind", name).
				WithDetail("source", name)
		}
	}

	return c.ValidatePlan()
}

// ValidatePlan checks that every source has exactly one disposition: either
// a sampling weight or inclusion in full. Configured names without a source
// are rejected as well.
func (c *Config) ValidatePlan() error {
	full := make(map[string]bool, len(c.Interleave.IncludeEntireDataset))
	for _, name := range c.Interleave.IncludeEntireDataset {
		full[name] = true
	}

	var inBoth, missing, unknown []string
	for _, name := range c.SourceNames() {
		_, sampled := c.Interleave.SamplingProbabilities[name]
		switch {
		case sampled && full[name]:
			inBoth = append(inBoth, name)
		case !sampled && !full[name]:
			missing = append(missing, name)
		}
	}
	for name := range c.Interleave.SamplingProbabilities {
		if _, ok := c.Sources[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	for name := range full {
		if _, ok := c.Sources[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)

	for name, w := range c.Interleave.SamplingProbabilities {
		if w < 0 {
			return tterr.Newf(tterr.CodeInvalidConfig, "sampling probability of %q is negative", name).
				WithDetail("source", name)
		}
	}

	switch {
	case len(inBoth) > 0:
		return tterr.New(tterr.CodeSamplingPlan,
			"datasets appear both in sampling_probabilities and include_entire_dataset").
			WithDetail("datasets", strings.Join(inBoth, ","))
	case len(missing) > 0:
		return tterr.New(tterr.CodeSamplingPlan,
			"all datasets must appear either in sampling_probabilities or in include_entire_dataset").
			WithDetail("datasets", strings.Join(missing, ","))
	case len(unknown) > 0:
		return tterr.New(tterr.CodeSamplingPlan, "sampling plan names unknown datasets").
			WithDetail("datasets", strings.Join(unknown, ","))
	}
	return nil
}
