package phoneme

import (
	"regexp"
	"sort"
	"strings"
)

// AllLanguages is the annotation key aggregating every language
const AllLanguages = "all"

var spaceRun = regexp.MustCompile(` +`)

// LanguageCount holds the occurrences found for one language
type LanguageCount struct {
	PhonemeCount      int      `json:"phoneme_count"`
	Phonemes          []string `json:"phonemes"`
	FoundExampleWords []string `json:"found_example_words"`
	UniquePhonemes    []string `json:"unique_phonemes"`
	UniqueCount       int      `json:"unique_phonemes_count"`
}

// Annotation maps a language tag, or AllLanguages, to its counts
type Annotation map[string]LanguageCount

// CountOptions tunes token matching
type CountOptions struct {
	// FoldCase lower-cases both tokens and example words
	FoldCase bool
}

// Counter counts phoneme occurrences in documents
type Counter struct {
	inv   Inventory
	langs []string
	opts  CountOptions
}

// NewCounter creates a counter for an inventory
func NewCounter(inv Inventory, opts CountOptions) *Counter {
	return &Counter{inv: inv, langs: inv.Languages(), opts: opts}
}

// CountOccurrences counts phonemes with exact, case sensitive token matching
func CountOccurrences(text string, inv Inventory) Annotation {
	return NewCounter(inv, CountOptions{}).Count(text)
}

// Count tokenizes text on single spaces after collapsing space runs and looks
// up every example word in the resulting frequency table. A phoneme is
// present when at least one of its example words occurs.
func (c *Counter) Count(text string) Annotation {
	text = strings.TrimSpace(spaceRun.ReplaceAllString(text, " "))
	if c.opts.FoldCase {
		text = strings.ToLower(text)
	}

	freq := make(map[string]int)
	for _, word := range strings.Split(text, " ") {
		freq[word]++
	}

	ann := make(Annotation, len(c.langs)+1)
	var all LanguageCount
	for _, lang := range c.langs {
		var lc LanguageCount
		for _, unit := range c.inv[lang] {
			for _, example := range unit.Examples {
				if c.opts.FoldCase {
					example = strings.ToLower(example)
				}
				n := freq[example]
				lc.PhonemeCount += n
				if n > 0 {
					lc.Phonemes = append(lc.Phonemes, unit.Name)
					lc.FoundExampleWords = append(lc.FoundExampleWords, example)
				}
			}
		}
		lc.UniquePhonemes = unique(lc.Phonemes)
		lc.UniqueCount = len(lc.UniquePhonemes)
		ann[lang] = lc

		all.PhonemeCount += lc.PhonemeCount
		all.Phonemes = append(all.Phonemes, lc.Phonemes...)
		all.FoundExampleWords = append(all.FoundExampleWords, lc.FoundExampleWords...)
	}
	all.UniquePhonemes = unique(all.Phonemes)
	all.UniqueCount = len(all.UniquePhonemes)
	ann[AllLanguages] = all

	return ann
}

// Annotate builds a ranked document from text
func (c *Counter) Annotate(text string) RankedDocument {
	ann := c.Count(text)
	return RankedDocument{
		Text:       text,
		Phonemes:   ann[AllLanguages].UniquePhonemes,
		Annotation: ann,
	}
}

func unique(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}
