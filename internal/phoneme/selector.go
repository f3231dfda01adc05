package phoneme

import (
	"iter"
	"sort"
	"strconv"
	"strings"
)

// RankedDocument is a text annotated with the phoneme units it contains
type RankedDocument struct {
	Text       string
	Phonemes   []string
	Annotation Annotation
}

// Target maps a unit name to the number of documents still required
type Target map[string]int

// NewTarget requires n documents for every unit of the inventory
func NewTarget(inv Inventory, n int) Target {
	t := make(Target)
	for _, name := range inv.UnitNames() {
		t[name] = n
	}
	return t
}

// Clone returns a copy of the target
func (t Target) Clone() Target {
	c := make(Target, len(t))
	for k, v := range t {
		c[k] = v
	}
	return c
}

// Names returns the outstanding unit names in sorted order
func (t Target) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String renders the target as "name=count" pairs
func (t Target) String() string {
	parts := make([]string, 0, len(t))
	for _, name := range t.Names() {
		parts = append(parts, name+"="+strconv.Itoa(t[name]))
	}
	return strings.Join(parts, ", ")
}

// Selection is the result of a covering run
type Selection struct {
	Selected    []RankedDocument
	Unsatisfied Target
	Consumed    int
}

// Complete reports whether every unit was covered
func (s *Selection) Complete() bool {
	return len(s.Unsatisfied) == 0
}

// BuildCoveringSet walks docs in order and keeps every document that makes
// progress on a still required unit. A unit is credited to the first
// documents containing it; once a unit reaches zero it is removed and no
// longer causes inclusion. The walk stops before the next document once the
// target is empty. Running out of documents first is reported through
// Selection.Unsatisfied. target itself is not modified.
func BuildCoveringSet(docs iter.Seq2[RankedDocument, error], target Target) (*Selection, error) {
	remaining := target.Clone()
	sel := &Selection{}

	if len(remaining) == 0 {
		sel.Unsatisfied = remaining
		return sel, nil
	}

	for doc, err := range docs {
		if err != nil {
			sel.Unsatisfied = remaining
			return sel, err
		}
		sel.Consumed++

		progress := false
		for _, name := range uniqueNames(doc.Phonemes) {
			count, ok := remaining[name]
			if !ok {
				continue
			}
			progress = true
			if count <= 1 {
				delete(remaining, name)
			} else {
				remaining[name] = count - 1
			}
		}

		if progress {
			sel.Selected = append(sel.Selected, doc)
		}
		if len(remaining) == 0 {
			break
		}
	}

	sel.Unsatisfied = remaining
	return sel, nil
}

// Documents adapts a slice to the document stream consumed by
// BuildCoveringSet
func Documents(docs []RankedDocument) iter.Seq2[RankedDocument, error] {
	return func(yield func(RankedDocument, error) bool) {
		for _, d := range docs {
			if !yield(d, nil) {
				return
			}
		}
	}
}

func uniqueNames(names []string) []string {
	if len(names) < 2 {
		return names
	}
	seen := make(map[string]bool, len(names))
	out := names[:0:0]
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
