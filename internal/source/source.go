// ============================================================================
// taletekst - Danish TTS text corpus builder
// ============================================================================
//
// Package:     source
// Description: Builders for the named sub-datasets of the corpus
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package source builds the text collections that make up the corpus.
package source

import (
	"context"
	"sort"
	"sync"

	"github.com/msto63/taletekst/internal/fetch"
	"github.com/msto63/taletekst/internal/sentence"
	"github.com/msto63/taletekst/internal/textio"
	"github.com/msto63/taletekst/pkg/core/config"
	tterr "github.com/msto63/taletekst/pkg/core/error"
	"github.com/msto63/taletekst/pkg/core/logging"
)

// Source kinds
const (
	KindDates       = "dates"
	KindTimes       = "times"
	KindArticles    = "articles"
	KindLines       = "lines"
	KindAnnotations = "annotations"
	KindHTMLTable   = "html_table"
	KindCrawl       = "crawl"
)

// Builder produces the sentences of one collection
type Builder interface {
	Build(ctx context.Context) ([]string, error)
}

// BuilderFunc adapts a function to Builder
type BuilderFunc func(ctx context.Context) ([]string, error)

// Build calls f
func (f BuilderFunc) Build(ctx context.Context) ([]string, error) {
	return f(ctx)
}

// PageFetcher retrieves parsed web pages
type PageFetcher interface {
	Page(ctx context.Context, url string) (*fetch.Page, error)
}

// Deps are the collaborators shared by all builders
type Deps struct {
	Config    *config.Config
	Fetcher   PageFetcher
	Extractor *sentence.Extractor
	Logger    *logging.Logger
}

// Factory creates a builder for a configured source
type Factory func(name string, sc config.SourceConfig, deps Deps) (Builder, error)

// Registry maps source kinds to factories
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a registry with every built-in kind
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.Register(KindDates, newDates)
	r.Register(KindTimes, newTimes)
	r.Register(KindArticles, newArticles)
	r.Register(KindLines, newLines)
	r.Register(KindAnnotations, newAnnotations)
	r.Register(KindHTMLTable, cached(newHTMLTable))
	r.Register(KindCrawl, cached(newCrawl))
	return r
}

// Register adds or replaces the factory of a kind
func (r *Registry) Register(kind string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[kind] = f
}

// Kinds returns the registered kinds in sorted order
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// New creates the builder of a configured source
func (r *Registry) New(name string, sc config.SourceConfig, deps Deps) (Builder, error) {
	r.mu.RLock()
	f, ok := r.factories[sc.Kind]
	r.mu.RUnlock()

	if !ok {
		return nil, tterr.Newf(tterr.CodeUnknownKind, "unknown source kind %q", sc.Kind).
			WithDetail("source", name)
	}
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}
	if deps.Extractor == nil {
		deps.Extractor = sentence.NewExtractor(nil, deps.Config.Sentences.MinSentenceLength)
	}

	b, err := f(name, sc, deps)
	if err != nil {
		return nil, tterr.Wrap(err, tterr.CodeUnknown, "invalid source").WithDetail("source", name)
	}
	return b, nil
}

// cached wraps a factory so that a previous result in the raw directory is
// reused unless the source asks for a refresh
func cached(f Factory) Factory {
	return func(name string, sc config.SourceConfig, deps Deps) (Builder, error) {
		inner, err := f(name, sc, deps)
		if err != nil {
			return nil, err
		}
		path := deps.Config.RawPath(name + ".txt")
		return BuilderFunc(func(ctx context.Context) ([]string, error) {
			if !sc.Refresh && textio.Exists(path) {
				deps.Logger.Info("Reusing cached source", "source", name, "path", path)
				return textio.ReadLines(path)
			}
			return inner.Build(ctx)
		}), nil
	}
}

func require(name, field, value string) error {
	if value == "" {
		return tterr.Newf(tterr.CodeInvalidConfig, "source %q requires %s", name, field)
	}
	return nil
}
