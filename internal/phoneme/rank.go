package phoneme

import (
	"slices"
	"strings"

	tterr "github.com/msto63/taletekst/pkg/core/error"
)

// Strategies accepted by Rank
var Strategies = []string{"da", "en", AllLanguages}

// Rank sorts docs in place by descending number of unique phonemes for the
// given language tag. Equal documents keep their order.
func Rank(docs []RankedDocument, strategy string) error {
	if !slices.Contains(Strategies, strategy) {
		return tterr.Newf(tterr.CodeInvalidConfig,
			"sort strategy must be one of %s, got %q", strings.Join(Strategies, ", "), strategy)
	}

	slices.SortStableFunc(docs, func(a, b RankedDocument) int {
		return b.Annotation[strategy].UniqueCount - a.Annotation[strategy].UniqueCount
	})
	return nil
}

// CleanWikiMarkers replaces the structural markers of wiki40b dumps with
// line breaks
func CleanWikiMarkers(text string, markers []string) string {
	if len(markers) == 0 {
		return text
	}
	pairs := make([]string, 0, 2*len(markers))
	for _, m := range markers {
		pairs = append(pairs, m, "\n")
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
