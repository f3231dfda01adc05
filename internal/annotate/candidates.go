// ============================================================================
// taletekst - Danish TTS text corpus builder
// ============================================================================
//
// Package:     annotate
// Description: Manual keep/drop filtering of social media sentences
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package annotate implements the interactive tool used to hand-filter
// comment sentences before they enter the corpus.
package annotate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/msto63/taletekst/internal/sentence"
)

// MinCandidateLength is the number of characters a candidate must exceed
const MinCandidateLength = 10

var urlPattern = regexp.MustCompile(`https?://[^\s]+`)

// Candidates splits comments into sentences worth showing to an annotator.
// Short sentences, trailing ellipses, abbreviation tails and sentences with
// URLs are dropped.
func Candidates(comments []string, splitter sentence.Splitter) []string {
	if splitter == nil {
		splitter = sentence.DefaultSplitter()
	}

	var out []string
	for _, comment := range comments {
		for _, s := range splitter.Split(comment) {
			s = strings.ReplaceAll(s, "\n", " ")
			switch {
			case utf8.RuneCountInString(s) <= MinCandidateLength:
			case strings.HasSuffix(s, "..."):
			case sentence.HasAbbreviationTail(s):
			case urlPattern.MatchString(s):
			default:
				out = append(out, s)
			}
		}
	}
	return out
}

// Window returns at most n items starting at start
func Window(items []string, start, n int) []string {
	if start < 0 {
		start = 0
	}
	if start >= len(items) {
		return nil
	}
	end := len(items)
	if n > 0 && start+n < end {
		end = start + n
	}
	return items[start:end]
}
