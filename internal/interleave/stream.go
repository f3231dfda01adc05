// ============================================================================
// taletekst - Danish TTS text corpus builder
// ============================================================================
//
// Package:     interleave
// Description: Weighted interleaving of text collections
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package interleave combines named text collections into one stream.
//
// Non-sampling collections are shuffled together and emitted first. Sampling
// collections are then drawn from by weight, one item at a time and without
// replacement inside a collection.
package interleave

import (
	"iter"
	"math/rand/v2"

	tterr "github.com/msto63/taletekst/pkg/core/error"
)

// Exhaustion decides what happens when a drawn collection has no items left
type Exhaustion int

const (
	// StopOnEmptyDraw ends the stream as soon as an empty collection is drawn
	StopOnEmptyDraw Exhaustion = iota
	// SkipExhausted removes empty collections from the draw and continues
	// until every sampling collection is empty
	SkipExhausted
)

// Option configures a Stream
type Option func(*Stream)

// WithExhaustion sets the exhaustion policy
func WithExhaustion(e Exhaustion) Option {
	return func(s *Stream) {
		s.exhaustion = e
	}
}

// Stream lazily produces the interleaved sequence. A Stream is single use
// and not safe for concurrent use.
type Stream struct {
	rng        *rand.Rand
	exhaustion Exhaustion

	fixed []string
	pos   int

	pools   [][]string
	weights []float64
	total   float64

	done bool
}

// Interleave prepares a stream over private copies of the collections.
// weights must have one entry per sampling collection; negative weights are
// treated as zero.
func Interleave(nonSampling, sampling [][]string, weights []float64, seed int64, opts ...Option) (*Stream, error) {
	if len(weights) != len(sampling) {
		return nil, tterr.Newf(tterr.CodeWeightMismatch,
			"got %d weights for %d sampling collections", len(weights), len(sampling))
	}

	s := &Stream{
		rng: rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)),
	}
	for _, opt := range opts {
		opt(s)
	}

	size := 0
	for _, c := range nonSampling {
		size += len(c)
	}
	s.fixed = make([]string, 0, size)
	for _, c := range nonSampling {
		s.fixed = append(s.fixed, c...)
	}
	s.rng.Shuffle(len(s.fixed), func(i, j int) {
		s.fixed[i], s.fixed[j] = s.fixed[j], s.fixed[i]
	})

	s.pools = make([][]string, len(sampling))
	s.weights = make([]float64, len(weights))
	for i, c := range sampling {
		s.pools[i] = append([]string(nil), c...)
		if weights[i] > 0 {
			s.weights[i] = weights[i]
			s.total += weights[i]
		}
	}

	return s, nil
}

// Next returns the next item. ok is false once the stream has ended.
func (s *Stream) Next() (item string, ok bool) {
	if s.pos < len(s.fixed) {
		item = s.fixed[s.pos]
		s.pos++
		return item, true
	}

	for !s.done {
		if s.total <= 0 {
			s.done = true
			break
		}

		idx := s.pick()
		pool := s.pools[idx]
		if len(pool) == 0 {
			if s.exhaustion == StopOnEmptyDraw {
				s.done = true
				break
			}
			s.weights[idx] = 0
			s.total = 0
			for _, w := range s.weights {
				s.total += w
			}
			continue
		}

		k := s.rng.IntN(len(pool))
		item = pool[k]
		last := len(pool) - 1
		pool[k] = pool[last]
		pool[last] = ""
		s.pools[idx] = pool[:last]
		return item, true
	}

	return "", false
}

// All returns the remaining items as an iterator. Breaking out of the loop
// leaves the stream where it stopped.
func (s *Stream) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			item, ok := s.Next()
			if !ok || !yield(item) {
				return
			}
		}
	}
}

// pick draws a collection index with probability proportional to its weight
func (s *Stream) pick() int {
	r := s.rng.Float64() * s.total
	last := 0
	for i, w := range s.weights {
		if w <= 0 {
			continue
		}
		if r < w {
			return i
		}
		r -= w
		last = i
	}
	// Floating point rest lands on the last positive weight
	return last
}
